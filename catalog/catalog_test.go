package catalog

import (
	"math"
	"testing"

	"github.com/arloliu/profio/checksum"
	"github.com/arloliu/profio/errs"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	entries := []Entry{{"a", 3}, {"b", 5}, {"empty", 0}, {"c", 2}}
	cat, err := New(entries)
	require.NoError(t, err)

	require.Equal(t, 4, cat.Len())
	require.Equal(t, uint32(10), cat.TotalLength())
	require.Equal(t, []uint32{3, 5, 0, 2}, cat.Lengths())
	require.Equal(t, checksum.Compute([]uint32{3, 5, 0, 2}), cat.Checksum())
	require.Equal(t, entries, cat.Entries())
	require.Equal(t, Entry{"b", 5}, cat.Entry(1))

	offsets := []uint32{0, 3, 8, 8, 10}
	for i, want := range offsets {
		require.Equal(t, want, cat.Offset(i), "offset %d", i)
	}

	// The catalog owns its entries.
	entries[0].Length = 99
	require.Equal(t, uint32(3), cat.Entry(0).Length)
}

func TestNew_Empty(t *testing.T) {
	cat, err := New(nil)
	require.NoError(t, err)
	require.Equal(t, 0, cat.Len())
	require.Equal(t, uint32(0), cat.TotalLength())
	require.Equal(t, uint32(1), cat.Checksum())
}

func TestNew_Errors(t *testing.T) {
	t.Run("duplicate name", func(t *testing.T) {
		_, err := New([]Entry{{"a", 1}, {"b", 2}, {"a", 3}})
		require.ErrorIs(t, err, errs.ErrDuplicateFeature)
		require.Contains(t, err.Error(), `"a"`)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := New([]Entry{{"a", 1}, {"", 2}})
		require.ErrorIs(t, err, errs.ErrInvalidCatalog)
	})

	t.Run("total overflow", func(t *testing.T) {
		_, err := New([]Entry{{"a", math.MaxUint32}, {"b", 1}})
		require.ErrorIs(t, err, errs.ErrInvalidCatalog)
	})

	t.Run("total at limit", func(t *testing.T) {
		cat, err := New([]Entry{{"a", math.MaxUint32 - 1}, {"b", 1}})
		require.NoError(t, err)
		require.Equal(t, uint32(math.MaxUint32), cat.TotalLength())
	})
}

func TestCatalog_Lookup(t *testing.T) {
	cat, err := New([]Entry{{"ENST01", 3}, {"ENST02", 5}})
	require.NoError(t, err)

	i, ok := cat.Index("ENST02")
	require.True(t, ok)
	require.Equal(t, 1, i)

	e, ok := cat.Lookup("ENST01")
	require.True(t, ok)
	require.Equal(t, Entry{"ENST01", 3}, e)

	_, ok = cat.Lookup("ENST03")
	require.False(t, ok)
	require.False(t, cat.HashCollision())
}

func TestCatalog_All(t *testing.T) {
	cat, err := New([]Entry{{"a", 3}, {"b", 5}, {"c", 1}})
	require.NoError(t, err)

	var names []string
	for i, e := range cat.All() {
		require.Equal(t, cat.Entry(i), e)
		names = append(names, e.Name)
	}
	require.Equal(t, []string{"a", "b", "c"}, names)

	// Early break.
	count := 0
	for range cat.All() {
		count++
		break
	}
	require.Equal(t, 1, count)
}

func TestCatalog_LengthsCopy(t *testing.T) {
	cat, err := New([]Entry{{"a", 3}})
	require.NoError(t, err)

	lengths := cat.Lengths()
	lengths[0] = 7
	require.Equal(t, []uint32{3}, cat.Lengths())
}
