package inventory

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound marks a missing item or staging file.
	ErrNotFound = errors.New("not found")
	// ErrMalformed marks ledger content that could not be interpreted.
	// Rows with missing columns are tolerated and never produce this.
	ErrMalformed = errors.New("malformed ledger data")
	// ErrIO marks a failed filesystem operation. Not retried.
	ErrIO = errors.New("io failure")
)

// Wrap builds an error message that includes operation context while
// tagging it with the provided marker for later classification. The marker
// should be one of the exported sentinel errors above.
func Wrap(marker error, operation, message string, err error) error {
	detail := buildDetail(operation, message)
	if marker == nil {
		marker = ErrIO
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// wrapLedgerError classifies a store failure: a CSV parse error means the
// ledger content itself is uninterpretable, anything else is an IO failure.
func wrapLedgerError(operation, message string, err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return Wrap(ErrMalformed, operation, message, err)
	}
	return Wrap(ErrIO, operation, message, err)
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "inventory failure"
	}
	return strings.Join(parts, ": ")
}
