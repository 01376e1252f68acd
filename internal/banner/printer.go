package banner

import (
	"fmt"
	"io"
	"os"

	"github.com/temirov/banner/internal/utils"
)

const (
	writeErrorTemplateConstant = "failed to write banner: %w"
)

// Printer writes banners to a single output sink.
type Printer struct {
	writer io.Writer
}

// NewPrinter wraps the writer so every banner is flushed as soon as it is written.
// A nil writer selects standard output.
func NewPrinter(writer io.Writer) *Printer {
	if writer == nil {
		writer = os.Stdout
	}
	return &Printer{writer: utils.NewFlushingWriter(writer)}
}

// Print renders the banner and delivers all of its lines in one write.
func (printer *Printer) Print(options Options) error {
	content := joinLines(Render(options))
	if _, writeError := io.WriteString(printer.writer, content); writeError != nil {
		return fmt.Errorf(writeErrorTemplateConstant, writeError)
	}
	return nil
}

// PrintRaw coerces the raw options and prints the result. Nothing is written when coercion fails.
func (printer *Printer) PrintRaw(rawOptions RawOptions) error {
	options, normalizationError := NormalizeOptions(rawOptions)
	if normalizationError != nil {
		return normalizationError
	}
	return printer.Print(options)
}

// Print writes the banner to standard output.
func Print(options Options) error {
	return NewPrinter(os.Stdout).Print(options)
}
