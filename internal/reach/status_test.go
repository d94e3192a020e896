package reach

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCellFirstSetWins(t *testing.T) {
	c := newStatusCell()
	assert.Equal(t, StatusUnknown, c.Get())

	assert.True(t, c.TrySet(StatusReachable))
	assert.Equal(t, StatusReachable, c.Get())

	// A second transition attempt loses the race; the cell keeps its
	// first verdict regardless of what's proposed next.
	assert.False(t, c.TrySet(StatusUnreachable))
	assert.Equal(t, StatusReachable, c.Get())
}

func TestStatusStrings(t *testing.T) {
	assert.Equal(t, "UNKNOWN", StatusUnknown.String())
	assert.Equal(t, "REACHABLE", StatusReachable.String())
	assert.Equal(t, "UNREACHABLE", StatusUnreachable.String())
	assert.Equal(t, "ERROR", StatusError.String())
}
