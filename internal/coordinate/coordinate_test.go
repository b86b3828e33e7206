package coordinate

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/opmodel/pomver/internal/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Coordinate
		wantErr bool
	}{
		{"org.jfrog.test:one", New("org.jfrog.test", "one"), false},
		{"  org.jfrog.test:one  ", New("org.jfrog.test", "one"), false},
		{"org.jfrog.test", Coordinate{}, true},
		{":one", Coordinate{}, true},
		{"org.jfrog.test:", Coordinate{}, true},
		{"a:b:c", Coordinate{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoordinate_String(t *testing.T) {
	c := New("org.jfrog.test.nested", "nestedX")
	assert.Equal(t, "org.jfrog.test.nested:nestedX", c.String())
	assert.Equal(t, "org.jfrog.test.nested:nestedX:2.0-SNAPSHOT", c.WithVersion("2.0-SNAPSHOT"))
}

func TestCoordinate_ValueEquality(t *testing.T) {
	m := map[Coordinate]string{New("g", "a"): "1"}
	assert.Equal(t, "1", m[New("g", "a")])
	assert.NotEqual(t, New("g", "a"), New("other", "a"))
}

func TestNewMap(t *testing.T) {
	m, err := NewMap([]Entry{
		{Coordinate: New("org.jfrog.test", "parent"), Version: "2.2"},
		{Coordinate: New("org.jfrog.test", "one"), Version: "2.2"},
	})
	require.NoError(t, err)

	v, ok := m.Get(New("org.jfrog.test", "one"))
	assert.True(t, ok)
	assert.Equal(t, "2.2", v)
	assert.Equal(t, 2, m.Len())

	_, ok = m.Get(New("org.jfrog.other", "one"))
	assert.False(t, ok, "same artifact in another group is external")
}

func TestNewMap_DuplicateSameVersion(t *testing.T) {
	m, err := NewMap([]Entry{
		{Coordinate: New("g", "a"), Version: "1.0"},
		{Coordinate: New("g", "a"), Version: "1.0"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, m.Len())
}

func TestNewMap_DuplicateDifferentVersion(t *testing.T) {
	_, err := NewMap([]Entry{
		{Coordinate: New("g", "a"), Version: "1.0"},
		{Coordinate: New("g", "a"), Version: "1.1"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrConfiguration))
	assert.Contains(t, err.Error(), "g:a")
}

func TestNewMap_InvalidEntries(t *testing.T) {
	_, err := NewMap([]Entry{{Coordinate: New("", "a"), Version: "1"}})
	assert.True(t, errors.Is(err, oerrors.ErrConfiguration))

	_, err = NewMap([]Entry{{Coordinate: New("g", "a"), Version: ""}})
	assert.True(t, errors.Is(err, oerrors.ErrConfiguration))
}

func TestMap_NilAndZero(t *testing.T) {
	var m *Map
	_, ok := m.Get(New("g", "a"))
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Coordinates())

	empty := MustMap()
	assert.False(t, empty.Contains(New("g", "a")))
}

func TestMap_CoordinatesSorted(t *testing.T) {
	m := MustMap(
		Entry{Coordinate: New("b", "x"), Version: "1"},
		Entry{Coordinate: New("a", "z"), Version: "1"},
		Entry{Coordinate: New("a", "y"), Version: "1"},
	)
	assert.Equal(t, []Coordinate{New("a", "y"), New("a", "z"), New("b", "x")}, m.Coordinates())
}

func TestMap_ConcurrentReads(t *testing.T) {
	m := MustMap(Entry{Coordinate: New("g", "a"), Version: "1"})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, ok := m.Get(New("g", "a"))
			assert.True(t, ok)
			assert.Equal(t, "1", v)
		}()
	}
	wg.Wait()
}
