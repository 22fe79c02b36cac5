package cli

import (
	"langjs/internal/domain"
	"langjs/internal/ports/output"
)

// errorKey maps a domain error code to its message id in active.*.toml.
func errorKey(code string) string {
	switch code {
	case "source_not_found":
		return "error_source_not_found"
	case "invalid_input":
		return "error_invalid_input"
	case "execution_failure":
		return "error_execution_failure"
	case "write_failure":
		return "error_write_failure"
	default:
		return "error_unknown"
	}
}

// ErrorMessage resolves err to a localized, user-facing message. source is
// the lang directory that was read, quoted by the not-found message.
func ErrorMessage(tr output.T, locale string, err error, source string) string {
	if err == nil {
		return ""
	}
	return tr.T(locale, errorKey(domain.Code(err)), map[string]any{
		"Path":   source,
		"Detail": err.Error(),
	})
}
