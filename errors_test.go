package nexus_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/nexus"
)

func TestNotFoundError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := nexus.NewNotFoundError("User")
		assert.Equal(t, "nexus: User not found", err.Error())
	})

	t.Run("ErrorWithID", func(t *testing.T) {
		err := nexus.NewNotFoundErrorWithID("User", 42)
		assert.Equal(t, "nexus: User not found (id=42)", err.Error())
		assert.Equal(t, "User", err.Label())
		assert.Equal(t, 42, err.ID())
	})

	t.Run("Is", func(t *testing.T) {
		err := nexus.NewNotFoundError("Post")
		assert.True(t, errors.Is(err, nexus.ErrNotFound))
	})

	t.Run("IsNotFound", func(t *testing.T) {
		err := nexus.NewNotFoundError("Comment")
		assert.True(t, nexus.IsNotFound(err))

		// Wrapped error
		wrapped := fmt.Errorf("wrapper: %w", err)
		assert.True(t, nexus.IsNotFound(wrapped))

		// Sentinel error
		assert.True(t, nexus.IsNotFound(nexus.ErrNotFound))

		// Non-matching error
		assert.False(t, nexus.IsNotFound(errors.New("other error")))
		assert.False(t, nexus.IsNotFound(nil))
	})
}

func TestConstraintError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := nexus.NewConstraintError("UNIQUE constraint failed", nil)
		assert.Equal(t, "nexus: constraint failed: UNIQUE constraint failed", err.Error())
	})

	t.Run("Unwrap", func(t *testing.T) {
		underlying := errors.New("db error")
		err := nexus.NewConstraintError("constraint violated", underlying)
		assert.True(t, errors.Is(err, underlying))
	})

	t.Run("IsConstraintError", func(t *testing.T) {
		err := nexus.NewConstraintError("check failed", nil)
		assert.True(t, nexus.IsConstraintError(err))

		// Wrapped error
		wrapped := fmt.Errorf("wrapper: %w", err)
		assert.True(t, nexus.IsConstraintError(wrapped))

		// Non-matching error
		assert.False(t, nexus.IsConstraintError(errors.New("other error")))
		assert.False(t, nexus.IsConstraintError(nil))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := nexus.NewValidationError("email", errors.New("unknown kind"))
		assert.Equal(t, `nexus: validation failed for "email": unknown kind`, err.Error())
	})

	t.Run("Unwrap", func(t *testing.T) {
		underlying := errors.New("unknown kind")
		err := nexus.NewValidationError("email", underlying)
		assert.True(t, errors.Is(err, underlying))
	})

	t.Run("IsValidationError", func(t *testing.T) {
		err := nexus.NewValidationError("age", errors.New("bad"))
		assert.True(t, nexus.IsValidationError(err))
		assert.False(t, nexus.IsValidationError(errors.New("other error")))
		assert.False(t, nexus.IsValidationError(nil))
	})
}

func TestAggregateError(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		require.NoError(t, nexus.NewAggregateError())
		require.NoError(t, nexus.NewAggregateError(nil, nil))
	})

	t.Run("Single", func(t *testing.T) {
		underlying := errors.New("only one")
		err := nexus.NewAggregateError(nil, underlying)
		require.Error(t, err)
		assert.Equal(t, underlying, err)
	})

	t.Run("Multiple", func(t *testing.T) {
		err := nexus.NewAggregateError(errors.New("first"), errors.New("second"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nexus: multiple errors:")
		assert.Contains(t, err.Error(), "[1] first")
		assert.Contains(t, err.Error(), "[2] second")
	})

	t.Run("Unwrap", func(t *testing.T) {
		inner := nexus.NewValidationError("title", errors.New("bad"))
		err := nexus.NewAggregateError(inner, errors.New("second"))

		// errors.As traverses into the bundle.
		var ve *nexus.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "title", ve.Name)
		assert.True(t, nexus.IsValidationError(err))
	})
}

func TestQueryError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := nexus.NewQueryError("User", "select", errors.New("timeout"))
		assert.Equal(t, "nexus: querying User (select): timeout", err.Error())

		err = nexus.NewQueryError("User", "", errors.New("timeout"))
		assert.Equal(t, "nexus: querying User: timeout", err.Error())
	})

	t.Run("Unwrap", func(t *testing.T) {
		underlying := errors.New("timeout")
		err := nexus.NewQueryError("User", "count", underlying)
		assert.True(t, errors.Is(err, underlying))
	})

	t.Run("IsQueryError", func(t *testing.T) {
		err := nexus.NewQueryError("User", "select", errors.New("boom"))
		assert.True(t, nexus.IsQueryError(err))
		assert.False(t, nexus.IsQueryError(errors.New("other")))
		assert.False(t, nexus.IsQueryError(nil))
	})
}
