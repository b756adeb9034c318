package workflowerrors

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestWorkflowErrors(t *testing.T) {
	t.Run(`kind survives wrapping`, func(t *testing.T) {
		err := errors.Wrap(Conflict("lost race"), "submit")
		kind, ok := KindOf(err)
		require.True(t, ok)
		require.Equal(t, KindConflict, kind)
		require.True(t, errors.Is(err, ErrConflict))
		require.False(t, errors.Is(err, ErrNotFound))
		require.True(t, IsRetryable(err))
	})

	t.Run(`internal errors have no kind`, func(t *testing.T) {
		_, ok := KindOf(errors.New("connection reset"))
		require.False(t, ok)
		require.False(t, IsRetryable(errors.New("connection reset")))
	})

	t.Run(`only conflict is retryable`, func(t *testing.T) {
		require.False(t, IsRetryable(ValidationFailed("comment is required")))
		require.False(t, IsRetryable(InvalidState("from %v", "approved")))
		require.False(t, IsRetryable(Unauthorized("not the creator")))
		require.False(t, IsRetryable(NotFound("document not found")))
	})

	t.Run(`message formatting`, func(t *testing.T) {
		err := InvalidState("action %v is not allowed from state %v", "reject", "approved")
		require.Equal(t, "INVALID_STATE: action reject is not allowed from state approved", err.Error())
	})
}
