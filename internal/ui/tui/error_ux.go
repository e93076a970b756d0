package tui

import (
	"errors"

	"github.com/aalvaropc/memoform/internal/domain"
)

// userMessage turns a derived-value error into a short hint for the form.
// Empty input is not an error from the user's point of view.
func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var oe *domain.OpError
	if errors.As(err, &oe) {
		switch oe.Kind {
		case domain.KindEmptyInput:
			return ""
		case domain.KindInvalidInput:
			return "Enter a whole number ≥ 1"
		case domain.KindOutOfRange:
			return "Number is too large"
		case domain.KindInvalidConfig:
			return "Invalid config"
		default:
			return "Unexpected error (see logs)"
		}
	}

	return "Unexpected error (see logs)"
}
