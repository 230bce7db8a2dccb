package occupancy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(month, day int) time.Time {
	return time.Date(2024, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func newYear(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}

func newTestRoom(bookings ...[2]time.Time) *Room {
	list := make([]*Booking, 0, len(bookings))
	for i, b := range bookings {
		list = append(list, NewBooking("Booking"+string(rune('1'+i)), "admin@admin.com", b[0], b[1], 30, map[string]any{}))
	}

	return NewRoom("Room1", list, 1000, 10)
}

func TestIsOccupied_ZeroDate(t *testing.T) {
	room := newTestRoom([2]time.Time{date(7, 16), date(7, 18)}, [2]time.Time{date(7, 18), date(7, 20)})

	_, err := room.IsOccupied(time.Time{})
	require.Error(t, err)
	assert.EqualError(t, err, "Invalid parameter: date expected")
	assert.ErrorIs(t, err, ErrDateExpected)
	assert.NotNil(t, IsInvalidParameter(err))
}

func TestIsOccupied(t *testing.T) {
	room := newTestRoom([2]time.Time{date(7, 20), date(7, 22)}, [2]time.Time{date(7, 22), date(7, 24)})

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"before first booking", date(7, 19), false},
		{"first day", date(7, 20), true},
		{"inside", date(7, 21), true},
		{"shared boundary", date(7, 22), true},
		{"last day", date(7, 24), true},
		{"after last booking", date(7, 25), false},
		{"time of day ignored", time.Date(2024, 7, 24, 23, 59, 0, 0, time.UTC), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := room.IsOccupied(tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsOccupied_NoBookings(t *testing.T) {
	room := NewRoom("empty", nil, 0, 0)

	got, err := room.IsOccupied(date(7, 21))
	require.NoError(t, err)
	assert.False(t, got)
}

func TestOccupancyPercentage_InvalidDates(t *testing.T) {
	room := newTestRoom([2]time.Time{date(7, 16), date(7, 18)}, [2]time.Time{date(7, 18), date(7, 20)})

	tests := []struct {
		name       string
		start, end time.Time
	}{
		{"missing start", time.Time{}, date(7, 20)},
		{"missing end", date(7, 15), time.Time{}},
		{"missing both", time.Time{}, time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := room.OccupancyPercentage(tt.start, tt.end)
			assert.EqualError(t, err, "Invalid parameter: startDate and endDate expected to be dates")
		})
	}
}

func TestOccupancyPercentage_StartAfterEnd(t *testing.T) {
	room := newTestRoom([2]time.Time{date(7, 16), date(7, 18)})

	_, err := room.OccupancyPercentage(date(7, 20), date(7, 16))
	assert.ErrorIs(t, err, ErrDateOrder)
}

func TestOccupancyPercentage(t *testing.T) {
	tests := []struct {
		name       string
		bookings   [][2]time.Time
		start, end time.Time
		want       float64
	}{
		{
			name:     "no overlap",
			bookings: [][2]time.Time{{date(7, 16), date(7, 18)}, {date(7, 18), date(7, 20)}},
			start:    date(7, 23),
			end:      date(7, 30),
			want:     0,
		},
		{
			name:     "half of the range",
			bookings: [][2]time.Time{{date(7, 16), date(7, 18)}, {date(7, 18), date(7, 22)}},
			start:    date(7, 16),
			end:      date(7, 29),
			want:     50,
		},
		{
			name:     "whole range",
			bookings: [][2]time.Time{{date(7, 16), date(7, 18)}, {date(7, 18), date(7, 22)}},
			start:    date(7, 16),
			end:      date(7, 22),
			want:     100,
		},
		{
			name:     "overlapping bookings counted once",
			bookings: [][2]time.Time{{date(7, 1), date(7, 5)}, {date(7, 3), date(7, 5)}, {date(7, 1), date(7, 5)}},
			start:    date(7, 1),
			end:      date(7, 10),
			want:     50,
		},
		{
			name:     "bookings clipped to range",
			bookings: [][2]time.Time{{date(6, 20), date(7, 2)}, {date(7, 9), date(8, 15)}},
			start:    date(7, 1),
			end:      date(7, 10),
			want:     40,
		},
		{
			name:     "single day",
			bookings: [][2]time.Time{{date(7, 5), date(7, 5)}},
			start:    date(7, 5),
			end:      date(7, 5),
			want:     100,
		},
		{
			name:     "fraction rounded to two places",
			bookings: [][2]time.Time{{date(7, 1), date(7, 1)}},
			start:    date(7, 1),
			end:      date(7, 3),
			want:     33.33,
		},
		{
			name:     "range spanning centuries",
			bookings: [][2]time.Time{{newYear(1000), newYear(1400)}, {newYear(1600), newYear(2000)}},
			start:    newYear(1000),
			end:      newYear(2100),
			want:     72.73,
		},
		{
			name:     "single booking over centuries",
			bookings: [][2]time.Time{{newYear(1000), newYear(1400)}},
			start:    newYear(1000),
			end:      newYear(2100),
			want:     36.36,
		},
		{
			name:     "reversed booking ignored",
			bookings: [][2]time.Time{{date(7, 5), date(7, 1)}},
			start:    date(7, 1),
			end:      date(7, 5),
			want:     0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room := newTestRoom(tt.bookings...)

			got, err := room.OccupancyPercentage(tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, float64(0))
			assert.LessOrEqual(t, got, float64(100))
		})
	}
}

func TestOccupancyPercentage_MatchesDayByDayCount(t *testing.T) {
	room := newTestRoom(
		[2]time.Time{date(7, 2), date(7, 4)},
		[2]time.Time{date(7, 4), date(7, 9)},
		[2]time.Time{date(7, 12), date(7, 12)},
		[2]time.Time{date(7, 20), date(8, 2)},
	)
	start, end := date(7, 1), date(7, 25)

	var occupied, total int
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		total++

		ok, err := room.IsOccupied(d)
		require.NoError(t, err)

		if ok {
			occupied++
		}
	}

	got, err := room.OccupancyPercentage(start, end)
	require.NoError(t, err)
	assert.Equal(t, rounded(share(occupied, total)), got)
}

func TestOccupancyPercentage_Idempotent(t *testing.T) {
	room := newTestRoom([2]time.Time{date(7, 16), date(7, 18)}, [2]time.Time{date(7, 20), date(7, 22)})

	first, err := room.OccupancyPercentage(date(7, 15), date(7, 23))
	require.NoError(t, err)

	second, err := room.OccupancyPercentage(date(7, 15), date(7, 23))
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 66.67, first)
}

func TestTotalOccupancyPercentage_Validation(t *testing.T) {
	room := newTestRoom([2]time.Time{date(7, 16), date(7, 18)}, [2]time.Time{date(7, 18), date(7, 20)})

	t.Run("nil rooms", func(t *testing.T) {
		_, err := TotalOccupancyPercentage(nil, date(7, 16), date(7, 20))
		assert.EqualError(t, err, "Invalid parameter: rooms expected to be an array")
	})

	t.Run("nil room in slice", func(t *testing.T) {
		_, err := TotalOccupancyPercentage([]*Room{room, nil}, date(7, 16), date(7, 20))
		assert.ErrorIs(t, err, ErrRoomsExpected)
	})

	t.Run("rooms checked before dates", func(t *testing.T) {
		_, err := TotalOccupancyPercentage(nil, time.Time{}, date(7, 20))
		assert.ErrorIs(t, err, ErrRoomsExpected)
	})

	t.Run("missing start", func(t *testing.T) {
		_, err := TotalOccupancyPercentage([]*Room{room}, time.Time{}, date(7, 20))
		assert.EqualError(t, err, "Invalid parameter: startDate and endDate expected to be dates")
	})
}

func TestTotalOccupancyPercentage(t *testing.T) {
	full := newTestRoom([2]time.Time{date(7, 16), date(7, 18)}, [2]time.Time{date(7, 18), date(7, 22)})
	half := newTestRoom([2]time.Time{date(7, 16), date(7, 19)})
	empty := NewRoom("Room3", nil, 500, 2)

	tests := []struct {
		name  string
		rooms []*Room
		want  float64
	}{
		{"no rooms", []*Room{}, 0},
		{"single room", []*Room{full}, 100},
		{"mean of rooms", []*Room{full, empty}, 50},
		{"mean with fraction", []*Room{full, half, empty}, 52.38},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TotalOccupancyPercentage(tt.rooms, date(7, 16), date(7, 22))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTotalOccupancyPercentage_RoundsMeanOnce(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 799)

	oneDay := NewRoom("Room1", []*Booking{NewBooking("b1", "admin@admin.com", start, start, 30, nil)}, 1000, 1)
	fiveDays := NewRoom("Room2", []*Booking{NewBooking("b2", "admin@admin.com", start, start.AddDate(0, 0, 4), 30, nil)}, 1000, 1)

	first, err := oneDay.OccupancyPercentage(start, end)
	require.NoError(t, err)
	assert.Equal(t, 0.12, first)

	second, err := fiveDays.OccupancyPercentage(start, end)
	require.NoError(t, err)
	assert.Equal(t, 0.62, second)

	got, err := TotalOccupancyPercentage([]*Room{oneDay, fiveDays}, start, end)
	require.NoError(t, err)
	assert.Equal(t, 0.38, got)
}
