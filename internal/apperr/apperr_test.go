package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindPredicates(t *testing.T) {
	assert.True(t, IsPrecondition(Precondition("missing id")))
	assert.True(t, IsStorage(Storage(errors.New("connection reset"))))
	assert.True(t, IsConflict(Conflict("ErrSystemBusy")))

	assert.False(t, IsPrecondition(Storage(errors.New("x"))))
	assert.False(t, IsStorage(nil))
	assert.False(t, IsConflict(errors.New("plain error")))
}

func TestStorageKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Storage(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("modify stock: %w", Precondition("missing id"))
	assert.True(t, IsPrecondition(err))
}
