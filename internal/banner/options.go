package banner

import "unicode/utf8"

const (
	// DefaultWidth is the banner width used when none is supplied.
	DefaultWidth = 80
	// DefaultBorderCharacter is the border symbol used when none is supplied.
	DefaultBorderCharacter = "="
	// DefaultPadding is the number of spaces placed around the title by default.
	DefaultPadding = 0

	minimumWidthConstant   = 1
	minimumPaddingConstant = 0
)

// Options describes a normalized banner request.
type Options struct {
	Width           int
	BorderCharacter string
	Title           *string
	Padding         int
}

// RawOptions describes a banner request whose numeric and border values have not been coerced yet.
// Nil Width, BorderCharacter, or Padding values select the defaults.
type RawOptions struct {
	Width           any
	BorderCharacter any
	Title           *string
	Padding         any
}

// DefaultOptions returns the options of a title-less 80 column "=" banner.
func DefaultOptions() Options {
	return Options{
		Width:           DefaultWidth,
		BorderCharacter: DefaultBorderCharacter,
		Padding:         DefaultPadding,
	}
}

// Normalized floors the width and padding and reduces the border to its first character.
func (options Options) Normalized() Options {
	normalized := options
	normalized.Width = max(minimumWidthConstant, options.Width)
	normalized.Padding = max(minimumPaddingConstant, options.Padding)
	normalized.BorderCharacter = firstCharacter(options.BorderCharacter)
	return normalized
}

// firstCharacter keeps the original bytes of the leading character, so an invalid UTF-8 byte stays as is.
func firstCharacter(value string) string {
	if len(value) == 0 {
		return DefaultBorderCharacter
	}
	_, characterSize := utf8.DecodeRuneInString(value)
	return value[:characterSize]
}
