package cmd

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// counts formats numbers with thousands separators.
var counts = message.NewPrinter(language.English)

// padToWidth pads or truncates text to exactly width display columns.
// Text that is too long gets a "..." suffix. A width of zero or less
// returns text unchanged.
func padToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}

	currentWidth := runewidth.StringWidth(text)

	if currentWidth > width {
		ellipsis := "..."
		ellipsisWidth := runewidth.StringWidth(ellipsis)

		if width <= ellipsisWidth {
			return runewidth.Truncate(ellipsis, width, "")
		}

		// Truncate can stop short of the target around wide runes
		truncated := runewidth.Truncate(text, width-ellipsisWidth, "") + ellipsis
		return runewidth.FillRight(truncated, width)
	}

	return text + strings.Repeat(" ", width-currentWidth)
}
