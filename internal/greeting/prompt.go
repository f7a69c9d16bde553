package greeting

import "fmt"

const promptTemplate = `Write a very short, sweet, and cute Valentine's day message from %s to %s.
Use romantic emojis like ❤️, ✨, and 🌹. Keep it under 50 words. Focus on being cheesy but adorable.`

// Prompt builds the model prompt for a greeting from authorName to partnerName.
func Prompt(partnerName, authorName string) string {
	return fmt.Sprintf(promptTemplate, authorName, partnerName)
}
