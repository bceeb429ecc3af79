package shared

import (
	"errors"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ValidationMessages flattens an ozzo-validation error into the list of
// field messages the error envelope batches together. Field order is
// made deterministic for clients (and tests).
func ValidationMessages(err error) []string {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for field, ferr := range verrs {
			msgs = append(msgs, field+": "+ferr.Error())
		}
		sort.Strings(msgs)
		return msgs
	}

	return []string{err.Error()}
}
