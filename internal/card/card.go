// Package card renders the final Valentine's card as markdown and saves it.
package card

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/mark3labs/lovewizard/internal/logger"
)

// Photo is a captioned picture on the card.
type Photo struct {
	Path    string
	Caption string
}

// Card is everything shown on the final screen.
type Card struct {
	PartnerName string
	AuthorName  string
	Message     string
	Photos      []Photo
	CreatedAt   time.Time
}

// DefaultPhotos returns the three collage photos with their captions.
func DefaultPhotos(selfie, camera, coffee string) []Photo {
	return []Photo{
		{Path: selfie, Caption: "My World 🌎"},
		{Path: camera, Caption: "Cutest Bebie 📸"},
		{Path: coffee, Caption: "Matcha & Coffee ☕"},
	}
}

// Title is the card heading.
func (c Card) Title() string {
	return "Happy Valentine's!"
}

// Signature is the closing line.
func (c Card) Signature() string {
	return "— Forever yours, " + c.AuthorName
}

// Markdown renders the card.
func (c Card) Markdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", c.Title())
	fmt.Fprintf(&b, "*To my %s 🌹*\n\n", c.PartnerName)

	if len(c.Photos) > 0 {
		for _, p := range c.Photos {
			fmt.Fprintf(&b, "- ![%s](%s) %s\n", p.Caption, p.Path, p.Caption)
		}
		b.WriteString("\n")
	}

	for _, line := range strings.Split(strings.TrimSpace(c.Message), "\n") {
		if line == "" {
			b.WriteString(">\n")
			continue
		}
		fmt.Fprintf(&b, "> %s\n", line)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "**%s**\n\n", c.Signature())
	b.WriteString(strings.Repeat("⭐", 5))

	if !c.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "\n\n_%s_", c.CreatedAt.Format("January 2, 2006"))
	}
	b.WriteString("\n")
	return b.String()
}

// FileName is the slugified file name for the card.
func (c Card) FileName() string {
	name := slug.Make("valentine for " + c.PartnerName)
	if name == "" || name == "valentine-for" {
		name = "valentine"
	}
	return name + ".md"
}

// Save writes the card's markdown into dir and returns the file path.
func (c Card) Save(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create card directory: %w", err)
	}

	path := filepath.Join(dir, c.FileName())
	logger.Debug("Writing card to %s", path)
	if err := os.WriteFile(path, []byte(c.Markdown()), 0644); err != nil {
		return "", fmt.Errorf("failed to write card: %w", err)
	}
	return path, nil
}
