package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStackPushPopOrder(t *testing.T) {
	s := NewStack[int]()
	s.Push(1, 2, 3)
	assert.Equal(t, 3, s.Size())

	top, err := s.Pop()
	assert.NoError(t, err)
	assert.Equal(t, 3, top)
	assert.Equal(t, 2, s.Size())
}

func TestStackPopEmptyErrors(t *testing.T) {
	s := NewStack[string]()
	_, err := s.Pop()
	assert.Error(t, err)
}

func TestStackItemsDoesNotMutate(t *testing.T) {
	s := NewStack[int]()
	s.Push(1, 2, 3)
	items := s.Items()
	assert.Equal(t, []int{1, 2, 3}, items)
	assert.Equal(t, 3, s.Size())

	items[0] = 99
	again, _ := s.Peek()
	assert.Equal(t, 3, again)
}

func TestStackHasNext(t *testing.T) {
	s := NewStack[int]()
	assert.False(t, s.HasNext())
	s.Push(1)
	assert.True(t, s.HasNext())
}
