package notes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boardOf(t *testing.T, n int) (*Manager, []int64) {
	t.Helper()
	m, _ := emptyBoard(t)
	var got []int64
	for i := 0; i < n; i++ {
		note, ok := m.Add(Draft{Type: VariantChecklist})
		require.True(t, ok)
		got = append(got, note.ID)
	}
	return m, got
}

func TestReorderSameIDIsNoop(t *testing.T) {
	m, order := boardOf(t, 4)
	r := NewReorderer(m)
	for _, id := range order {
		assert.False(t, r.Reorder(id, id))
	}
	assert.Equal(t, order, noteIDs(m.List()))
}

func TestReorderIsAMoveNotASwap(t *testing.T) {
	m, o := boardOf(t, 5)
	r := NewReorderer(m)

	require.True(t, r.Reorder(o[0], o[3]))
	assert.Equal(t, []int64{o[1], o[2], o[3], o[0], o[4]}, noteIDs(m.List()))

	require.True(t, r.Reorder(o[4], o[1]))
	assert.Equal(t, []int64{o[4], o[1], o[2], o[3], o[0]}, noteIDs(m.List()))
}

func TestReorderInverseRestoresOrder(t *testing.T) {
	m, o := boardOf(t, 4)
	r := NewReorderer(m)

	// o[0] lands at index 2; dropping it onto whatever now sits at its
	// old index 0 restores the original order.
	require.True(t, r.Reorder(o[0], o[2]))
	after := noteIDs(m.List())
	require.Equal(t, []int64{o[1], o[2], o[0], o[3]}, after)
	require.True(t, r.Reorder(o[0], after[0]))
	assert.Equal(t, o, noteIDs(m.List()))
}

func TestReorderRepeatedGestureIsIdempotent(t *testing.T) {
	m, o := boardOf(t, 4)
	r := NewReorderer(m)

	require.True(t, r.Reorder(o[0], o[2]))
	want := noteIDs(m.List())
	assert.False(t, r.Reorder(o[0], o[2]))
	assert.False(t, r.Reorder(o[0], o[2]))
	assert.Equal(t, want, noteIDs(m.List()))
}

func TestReorderAfterInterveningChangeAppliesAgain(t *testing.T) {
	m, o := boardOf(t, 3)
	r := NewReorderer(m)

	require.True(t, r.Reorder(o[0], o[2]))
	m.Update(o[1], SetTitle("touched"))
	assert.True(t, r.Reorder(o[0], o[2]))
}

func TestReorderUnknownIDs(t *testing.T) {
	m, o := boardOf(t, 3)
	r := NewReorderer(m)
	assert.False(t, r.Reorder(o[0], 999))
	assert.False(t, r.Reorder(999, o[0]))
	assert.Equal(t, o, noteIDs(m.List()))
}

func TestReorderPersists(t *testing.T) {
	m, b := emptyBoard(t)
	a, _ := m.Add(Draft{Type: VariantChecklist})
	c, _ := m.Add(Draft{Type: VariantHabit})
	NewReorderer(m).Reorder(c.ID, a.ID)

	reloaded := newTestManager(t, b)
	assert.Equal(t, []int64{c.ID, a.ID}, noteIDs(reloaded.List()))
}
