package game

import "fmt"

const shareTemplate = "🎮 Face Tap 🎮\n\n📊 Final score: %d\n\nWant to play together?\n\n#FaceTap #OneMinuteGame"

// ShareMessage formats the result message posted by sharing integrations.
func ShareMessage(score int) string {
	return fmt.Sprintf(shareTemplate, score)
}
