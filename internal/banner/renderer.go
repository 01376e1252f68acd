package banner

import (
	"strings"
	"unicode/utf8"
)

const (
	ellipsisConstant       = "..."
	fillCharacterConstant  = " "
	lineTerminatorConstant = "\n"
)

// Render returns the banner lines for the options without line terminators.
// The result holds one line without a title and three lines with one.
func Render(options Options) []string {
	normalized := options.Normalized()
	borderLine := strings.Repeat(normalized.BorderCharacter, normalized.Width)

	if normalized.Title == nil {
		return []string{borderLine}
	}

	availableWidth := normalized.Width - 2*normalized.Padding
	fittedTitle := truncateTitle(*normalized.Title, availableWidth)
	paddingText := strings.Repeat(fillCharacterConstant, normalized.Padding)
	paddedTitle := paddingText + fittedTitle + paddingText

	return []string{borderLine, centerText(paddedTitle, normalized.Width), borderLine}
}

// truncateTitle shortens titles longer than availableWidth so they end with an ellipsis.
// Below three available columns only the leading part of the ellipsis survives.
func truncateTitle(title string, availableWidth int) string {
	if utf8.RuneCountInString(title) <= availableWidth {
		return title
	}

	if availableWidth < len(ellipsisConstant) {
		return ellipsisConstant[:max(availableWidth, 0)]
	}

	return leadingCharacters(title, availableWidth-len(ellipsisConstant)) + ellipsisConstant
}

// leadingCharacters returns the first count characters of text without re-encoding them.
// Each invalid UTF-8 byte counts as one character.
func leadingCharacters(text string, count int) string {
	byteOffset := 0
	for characterIndex := 0; characterIndex < count && byteOffset < len(text); characterIndex++ {
		_, characterSize := utf8.DecodeRuneInString(text[byteOffset:])
		byteOffset += characterSize
	}
	return text[:byteOffset]
}

// centerText places text in a field of width columns; odd remainders go to the right.
func centerText(text string, width int) string {
	remainingWidth := width - utf8.RuneCountInString(text)
	if remainingWidth <= 0 {
		return text
	}

	leftWidth := remainingWidth / 2
	rightWidth := remainingWidth - leftWidth
	return strings.Repeat(fillCharacterConstant, leftWidth) + text + strings.Repeat(fillCharacterConstant, rightWidth)
}

func joinLines(lines []string) string {
	var builder strings.Builder
	for _, line := range lines {
		builder.WriteString(line)
		builder.WriteString(lineTerminatorConstant)
	}
	return builder.String()
}
