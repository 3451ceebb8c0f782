package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 9, 14, hour, minute, 0, 0, time.UTC)
}

func iv(startHour, startMin, endHour, endMin int) Interval {
	return Interval{Start: at(startHour, startMin), End: at(endHour, endMin)}
}

func TestInterval_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a    Interval
		b    Interval
		want bool
	}{
		{
			name: "partial overlap",
			a:    iv(10, 0, 11, 0),
			b:    iv(10, 30, 11, 30),
			want: true,
		},
		{
			name: "containment",
			a:    iv(10, 0, 12, 0),
			b:    iv(10, 30, 11, 0),
			want: true,
		},
		{
			name: "identical",
			a:    iv(10, 0, 11, 0),
			b:    iv(10, 0, 11, 0),
			want: true,
		},
		{
			name: "touching end to start is not overlap",
			a:    iv(10, 0, 11, 0),
			b:    iv(11, 0, 12, 0),
			want: false,
		},
		{
			name: "touching start to end is not overlap",
			a:    iv(11, 0, 12, 0),
			b:    iv(10, 0, 11, 0),
			want: false,
		},
		{
			name: "disjoint",
			a:    iv(9, 0, 10, 0),
			b:    iv(14, 0, 15, 0),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// Пересечение симметрично
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestInterval_Contains(t *testing.T) {
	outer := iv(9, 0, 17, 0)

	assert.True(t, outer.Contains(iv(9, 0, 10, 0)))
	assert.True(t, outer.Contains(iv(16, 0, 17, 0)))
	assert.True(t, outer.Contains(outer))
	assert.False(t, outer.Contains(iv(8, 59, 10, 0)))
	assert.False(t, outer.Contains(iv(16, 30, 17, 1)))
}

func TestInterval_WithBufferAfter(t *testing.T) {
	base := iv(10, 0, 11, 0)

	buffered := base.WithBufferAfter(15)
	assert.Equal(t, at(10, 0), buffered.Start, "буфер не должен сдвигать начало")
	assert.Equal(t, at(11, 15), buffered.End)

	assert.Equal(t, base, base.WithBufferAfter(0))
	assert.Equal(t, base, base.WithBufferAfter(-5))
}

func TestInterval_Clip(t *testing.T) {
	bounds := iv(9, 0, 17, 0)

	assert.Equal(t, iv(9, 0, 10, 0), iv(8, 0, 10, 0).Clip(bounds))
	assert.Equal(t, iv(16, 0, 17, 0), iv(16, 0, 18, 0).Clip(bounds))
	assert.Equal(t, iv(10, 0, 11, 0), iv(10, 0, 11, 0).Clip(bounds))
	assert.True(t, iv(18, 0, 19, 0).Clip(bounds).IsEmpty())
}

func TestSubtractAll(t *testing.T) {
	day := iv(9, 0, 17, 0)

	t.Run("no exclusions returns base", func(t *testing.T) {
		got := SubtractAll(day, nil)
		require.Len(t, got, 1)
		assert.Equal(t, day, got[0])
	})

	t.Run("single exclusion splits base", func(t *testing.T) {
		got := SubtractAll(day, []Interval{iv(12, 0, 13, 0)})
		require.Len(t, got, 2)
		assert.Equal(t, iv(9, 0, 12, 0), got[0])
		assert.Equal(t, iv(13, 0, 17, 0), got[1])
	})

	t.Run("exclusion at the edge leaves one piece", func(t *testing.T) {
		got := SubtractAll(day, []Interval{iv(9, 0, 10, 0)})
		require.Len(t, got, 1)
		assert.Equal(t, iv(10, 0, 17, 0), got[0])
	})

	t.Run("overlapping exclusions", func(t *testing.T) {
		got := SubtractAll(day, []Interval{iv(10, 0, 12, 0), iv(11, 0, 13, 0)})
		require.Len(t, got, 2)
		assert.Equal(t, iv(9, 0, 10, 0), got[0])
		assert.Equal(t, iv(13, 0, 17, 0), got[1])
	})

	t.Run("exclusion covering base returns empty", func(t *testing.T) {
		got := SubtractAll(day, []Interval{iv(8, 0, 18, 0)})
		assert.Empty(t, got)
	})

	t.Run("exclusion outside base is ignored", func(t *testing.T) {
		got := SubtractAll(day, []Interval{iv(18, 0, 19, 0)})
		require.Len(t, got, 1)
		assert.Equal(t, day, got[0])
	})

	t.Run("touching exclusion does not clip", func(t *testing.T) {
		// Исключение, граничащее с base, не должно ничего отрезать
		got := SubtractAll(day, []Interval{iv(17, 0, 18, 0)})
		require.Len(t, got, 1)
		assert.Equal(t, day, got[0])
	})

	t.Run("empty base returns nil", func(t *testing.T) {
		assert.Nil(t, SubtractAll(Interval{}, []Interval{iv(10, 0, 11, 0)}))
	})
}
