package banner

import (
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

const (
	widthParameterNameConstant           = "width"
	paddingParameterNameConstant         = "padding"
	borderCharacterParameterNameConstant = "border_char"
)

// NormalizeOptions coerces loosely typed values into normalized Options.
// Numeric kinds and numeric strings are accepted for width and padding; floats truncate toward zero.
func NormalizeOptions(rawOptions RawOptions) (Options, error) {
	width, widthError := coerceInteger(widthParameterNameConstant, rawOptions.Width, DefaultWidth)
	if widthError != nil {
		return Options{}, widthError
	}

	padding, paddingError := coerceInteger(paddingParameterNameConstant, rawOptions.Padding, DefaultPadding)
	if paddingError != nil {
		return Options{}, paddingError
	}

	borderCharacter, borderError := coerceText(borderCharacterParameterNameConstant, rawOptions.BorderCharacter, DefaultBorderCharacter)
	if borderError != nil {
		return Options{}, borderError
	}

	options := Options{
		Width:           width,
		BorderCharacter: borderCharacter,
		Title:           rawOptions.Title,
		Padding:         padding,
	}

	return options.Normalized(), nil
}

func coerceInteger(parameterName string, value any, defaultValue int) (int, error) {
	if value == nil {
		return defaultValue, nil
	}

	if textValue, isText := value.(string); isText {
		return parseDecimalInteger(parameterName, textValue)
	}

	integerValue, conversionError := cast.ToIntE(value)
	if conversionError != nil {
		return 0, &ConversionError{Parameter: parameterName, Value: value, Cause: conversionError}
	}

	return integerValue, nil
}

// parseDecimalInteger reads base 10 only: leading zeros are insignificant and
// prefixes such as 0x or fractional parts are rejected.
func parseDecimalInteger(parameterName string, textValue string) (int, error) {
	trimmedValue := strings.TrimSpace(textValue)
	integerValue, parseError := strconv.ParseInt(trimmedValue, 10, 0)
	if parseError != nil {
		return 0, &ConversionError{Parameter: parameterName, Value: trimmedValue, Cause: parseError}
	}
	return int(integerValue), nil
}

func coerceText(parameterName string, value any, defaultValue string) (string, error) {
	if value == nil {
		return defaultValue, nil
	}

	textValue, conversionError := cast.ToStringE(value)
	if conversionError != nil {
		return "", &ConversionError{Parameter: parameterName, Value: value, Cause: conversionError}
	}

	return textValue, nil
}
