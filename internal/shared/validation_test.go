package shared

import (
	"errors"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
)

func TestValidationMessagesSortsFields(t *testing.T) {
	err := validation.Errors{
		"title":  errors.New("cannot be blank"),
		"author": errors.New("cannot be blank"),
	}

	msgs := ValidationMessages(err)

	assert.Equal(t, []string{
		"author: cannot be blank",
		"title: cannot be blank",
	}, msgs)
}

func TestValidationMessagesPlainError(t *testing.T) {
	msgs := ValidationMessages(errors.New("something broke"))

	assert.Equal(t, []string{"something broke"}, msgs)
}
