package validation

import (
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errNegative = errors.New("negative")
	errOdd      = errors.New("odd")
)

func notNegative() Validator[int] {
	return ValidatorFunc[int](func(i int) error {
		if i < 0 {
			return errNegative
		}
		return nil
	})
}

func notOdd() Validator[int] {
	return ValidatorFunc[int](func(i int) error {
		if i%2 != 0 {
			return errOdd
		}
		return nil
	})
}

func TestCompoundValidator(t *testing.T) {
	tests := map[string]struct {
		value       int
		expectedErr error
	}{
		"valid":            {value: 4},
		"negative":         {value: -2, expectedErr: errNegative},
		"odd":              {value: 3, expectedErr: errOdd},
		"first error wins": {value: -3, expectedErr: errNegative},
	}
	v := NewCompoundValidator(notNegative(), notOdd())
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			err := v.Validate(tc.value)
			if tc.expectedErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.expectedErr)
			}
		})
	}
}

func TestCollectingValidator(t *testing.T) {
	v := NewCollectingValidator(notNegative(), notOdd())

	assert.NoError(t, v.Validate(2))

	err := v.Validate(-3)
	require.Error(t, err)
	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 2)
	assert.ErrorIs(t, err, errNegative)
	assert.ErrorIs(t, err, errOdd)
}
