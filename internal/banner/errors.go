package banner

import (
	"errors"
	"fmt"
)

const (
	conversionErrorTemplateConstant = "cannot convert %s value %q: %v"
)

// ErrTypeConversion is matched by every ConversionError through errors.Is.
var ErrTypeConversion = errors.New("type conversion failed")

// ConversionError reports a banner parameter that could not be coerced to its expected type.
type ConversionError struct {
	Parameter string
	Value     any
	Cause     error
}

// Error describes the failed conversion.
func (conversionError *ConversionError) Error() string {
	return fmt.Sprintf(conversionErrorTemplateConstant, conversionError.Parameter, fmt.Sprint(conversionError.Value), conversionError.Cause)
}

// Unwrap exposes the underlying parse failure.
func (conversionError *ConversionError) Unwrap() error {
	return conversionError.Cause
}

// Is reports whether the target is ErrTypeConversion.
func (conversionError *ConversionError) Is(target error) bool {
	return target == ErrTypeConversion
}
