package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	CurrencyCode string `json:"currency_code" validate:"required,len=3"`
	Amount       int64  `json:"amount" validate:"gte=0"`
}

type batch struct {
	Items []item `json:"items" validate:"required,min=1,dive"`
	Kind  string `json:"kind" validate:"omitempty,oneof=sale override"`
}

func TestStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		err := Struct(&batch{Items: []item{{CurrencyCode: "usd", Amount: 10}}})
		assert.NoError(t, err)
	})

	t.Run("nested fields use json names", func(t *testing.T) {
		err := Struct(&batch{
			Items: []item{{CurrencyCode: "usd"}, {CurrencyCode: "", Amount: -1}},
			Kind:  "clearance",
		})
		require.Error(t, err)

		var fieldErrs FieldErrors
		require.True(t, errors.As(err, &fieldErrs))
		assert.Equal(t, []string{"items[1].amount", "items[1].currency_code", "kind"}, fieldErrs.Fields())
		assert.Equal(t, "is required", fieldErrs["items[1].currency_code"])
		assert.Equal(t, "must be one of [sale override]", fieldErrs["kind"])
		assert.Contains(t, err.Error(), "items[1].amount must be greater than or equal to 0")
	})

	t.Run("empty batch", func(t *testing.T) {
		err := Struct(&batch{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "items is required")
	})
}
