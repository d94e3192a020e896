package witness

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"reachcore/internal/literal"
)

func TestMgrStoreGetCurrent(t *testing.T) {
	m := NewMgr()
	w1 := &Witness{Frames: []Frame{{Time: 0, Values: map[string]literal.Value{}}}}
	w2 := &Witness{Frames: []Frame{{Time: 1, Values: map[string]literal.Value{}}}}

	id1 := m.Store(w1)
	id2 := m.Store(w2)
	assert.NotEqual(t, id1, id2)

	got, ok := m.Get(id1)
	assert.True(t, ok)
	assert.Same(t, w1, got)

	cur, ok := m.Current()
	assert.True(t, ok)
	assert.Same(t, w2, cur)
}

func TestMgrGetMissing(t *testing.T) {
	m := NewMgr()
	_, ok := m.Get(42)
	assert.False(t, ok)
}

func TestWitnessReverse(t *testing.T) {
	w := &Witness{Frames: []Frame{
		{Time: 2, Values: map[string]literal.Value{}},
		{Time: 1, Values: map[string]literal.Value{}},
		{Time: 0, Values: map[string]literal.Value{}},
	}}
	r := w.Reverse()
	assert.Equal(t, int64(0), r.Frames[0].Time)
	assert.Equal(t, int64(1), r.Frames[1].Time)
	assert.Equal(t, int64(2), r.Frames[2].Time)
	// original untouched
	assert.Equal(t, int64(2), w.Frames[0].Time)
}

func TestWitnessStringOrdersFieldNames(t *testing.T) {
	w := &Witness{Frames: []Frame{{Time: 0, Values: map[string]literal.Value{
		"zebra": literal.NewBool(true),
		"alpha": literal.NewBool(false),
	}}}}
	s := w.String()
	assert.True(t, indexOf(s, "alpha") < indexOf(s, "zebra"))
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
