package validator_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

func TestChain(t *testing.T) {
	t.Parallel()

	t.Run("feeds normalized output forward", func(t *testing.T) {
		v, err := validator.Chain(validator.Trim(), validator.Lower(), validator.MinLength(3)).Validate("  ANN ")
		require.NoError(t, err)
		assert.Equal(t, "ann", v)
	})

	t.Run("stops at the first failure", func(t *testing.T) {
		calls := 0
		counter := validator.Func(func(value any) (any, error) {
			calls++
			return value, nil
		})

		v, err := validator.Chain(validator.Trim(), validator.MinLength(5), counter).Validate(" ab ")
		require.Error(t, err)
		assert.Nil(t, v, "normalizations must be discarded on failure")
		assert.Equal(t, "must be at least 5 characters long", err.Error())
		assert.Zero(t, calls)
	})

	t.Run("empty chain is identity", func(t *testing.T) {
		v, err := validator.Chain().Validate(42)
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	})
}

func TestAll(t *testing.T) {
	t.Parallel()

	t.Run("reports every violation", func(t *testing.T) {
		_, err := validator.All(validator.MinLength(5), validator.Pattern(`^\d+$`)).Validate("abc")
		require.Error(t, err)

		violations := validator.ExtractValidationErrors(err)
		require.Len(t, violations, 2)
		assert.Equal(t, []string{
			"must be at least 5 characters long",
			`must match pattern ^\d+$`,
		}, violations.Messages())
	})

	t.Run("passes value through when valid", func(t *testing.T) {
		v, err := validator.All(validator.Trim(), validator.MinLength(2)).Validate(" ok ")
		require.NoError(t, err)
		assert.Equal(t, "ok", v)
	})

	t.Run("wraps foreign errors", func(t *testing.T) {
		boom := validator.Func(func(any) (any, error) { return nil, errors.New("boom") })
		_, err := validator.All(boom).Validate(1)
		assert.Equal(t, []string{"boom"}, validator.ExtractValidationErrors(err).Messages())
	})
}

func TestCheck(t *testing.T) {
	t.Parallel()

	even := validator.Check(func(v any) bool {
		n, ok := v.(int)
		return ok && n%2 == 0
	}, &validator.ValidationError{Message: "must be even", TranslationKey: "validation.even"})

	v, err := even.Validate(4)
	require.NoError(t, err)
	assert.Equal(t, 4, v)

	_, err = even.Validate(3)
	assert.EqualError(t, err, "must be even")
	assert.True(t, validator.IsValidationError(err))
}

func TestExtractValidationErrors(t *testing.T) {
	t.Parallel()

	assert.Nil(t, validator.ExtractValidationErrors(nil))
	assert.Nil(t, validator.ExtractValidationErrors(errors.New("plain")))
	assert.False(t, validator.IsValidationError(errors.New("plain")))

	_, err := validator.Min(0).Validate(-1)
	extracted := validator.ExtractValidationErrors(err)
	require.Len(t, extracted, 1)
	assert.Equal(t, "validation.min", extracted[0].TranslationKey)
}

func TestTypeMismatch(t *testing.T) {
	t.Parallel()

	_, err := validator.Min(0).Validate("5")
	require.Error(t, err)
	assert.ErrorIs(t, err, validator.ErrTypeMismatch)
	assert.Equal(t, "expected int, got string", err.Error())
}
