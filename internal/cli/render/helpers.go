package render

import (
	"errors"
	"strings"

	"github.com/fatih/color"
	"github.com/trebuchet-org/solart/internal/domain"
)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", message)
}

// FormatError formats an error with the error icon. Parse and compiler errors
// are kept whole, other chains are cut to the last message.
func FormatError(err error) string {
	msg := err.Error()

	var formatErr *domain.FormatError
	var schemaErr *domain.SchemaError
	var processErr *domain.ProcessError
	if !errors.As(err, &formatErr) && !errors.As(err, &schemaErr) && !errors.As(err, &processErr) {
		parts := strings.Split(msg, ": ")
		msg = parts[len(parts)-1]
	}

	if len(msg) > 0 {
		msg = strings.ToUpper(msg[:1]) + msg[1:]
	}

	return color.New(color.FgRed).Sprintf("❌ %s", msg)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}
