package testfixtures

import (
	"time"

	"github.com/mark3labs/lovewizard/internal/config"
)

// Fixed test values for consistent rendering
const (
	FixedPartner = "Sam"
	FixedAuthor  = "Alex"
	FixedMessage = "You make every day feel like the fourteenth."
	FixedSeed    = 14
)

var (
	FixedTime = time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC)
)

// FixedPhotos returns the photo file names used across tests.
func FixedPhotos() config.Photos {
	return config.Photos{
		Selfie: "selfie.png",
		Camera: "camera.png",
		Coffee: "coffee.png",
	}
}

// FixedNow returns FixedTime; use it as a clock for card timestamps.
func FixedNow() time.Time {
	return FixedTime
}
