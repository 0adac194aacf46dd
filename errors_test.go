package sqlstep

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnknownVersionError(t *testing.T) {
	err := NewUnknownVersionError(7)
	assert.EqualError(t, err, "sqlstep: unknown migration source version 7")
	assert.Equal(t, int64(7), err.Version())
	assert.True(t, errors.Is(err, ErrUnknownVersion))

	var uve *UnknownVersionError
	require.True(t, errors.As(err, &uve))
	assert.Equal(t, int64(7), uve.Version())
}

func TestIsUnknownVersion(t *testing.T) {
	assert.True(t, IsUnknownVersion(NewUnknownVersionError(1)))
	assert.True(t, IsUnknownVersion(fmt.Errorf("step: %w", NewUnknownVersionError(1))))
	assert.True(t, IsUnknownVersion(ErrUnknownVersion))
	assert.False(t, IsUnknownVersion(nil))
	assert.False(t, IsUnknownVersion(errors.New("other")))
	assert.False(t, IsUnknownVersion(ErrNoProgress))
}
