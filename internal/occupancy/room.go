package occupancy

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

type Room struct {
	Name      string     `json:"name"`
	Bookings  []*Booking `json:"bookings"`
	BasePrice float64    `json:"base_price"`
	Capacity  int        `json:"capacity"`
}

// NewRoom keeps a reference to bookings; later changes to the slice are visible to queries.
func NewRoom(name string, bookings []*Booking, basePrice float64, capacity int) *Room {
	return &Room{
		Name:      name,
		Bookings:  bookings,
		BasePrice: basePrice,
		Capacity:  capacity,
	}
}

// IsOccupied reports whether any booking covers date.
func (r *Room) IsOccupied(date time.Time) (bool, error) {
	if date.IsZero() {
		return false, ErrDateExpected
	}

	for _, b := range r.Bookings {
		if b != nil && b.Covers(date) {
			return true, nil
		}
	}

	return false, nil
}

// OccupancyPercentage returns the share of days in [startDate, endDate] covered by
// at least one booking, from 0 to 100.
func (r *Room) OccupancyPercentage(startDate, endDate time.Time) (float64, error) {
	if startDate.IsZero() || endDate.IsZero() {
		return 0, ErrDatesExpected
	}

	p, err := r.share(startDate, endDate)
	if err != nil {
		return 0, err
	}

	return rounded(p), nil
}

func (r *Room) share(startDate, endDate time.Time) (decimal.Decimal, error) {
	from, to := Day(startDate), Day(endDate)
	if from.After(to) {
		return decimal.Zero, ErrDateOrder
	}

	return share(r.occupiedDays(from, to), daysBetween(from, to)+1), nil
}

type span struct {
	from, to time.Time
}

// occupiedDays merges booking intervals clipped to [from, to] and counts the days of the union.
func (r *Room) occupiedDays(from, to time.Time) int {
	spans := make([]span, 0, len(r.Bookings))

	for _, b := range r.Bookings {
		if b == nil {
			continue
		}

		s, e := Day(b.StartDate), Day(b.EndDate)
		if s.Before(from) {
			s = from
		}

		if e.After(to) {
			e = to
		}

		if s.After(e) {
			continue
		}

		spans = append(spans, span{from: s, to: e})
	}

	slices.SortFunc(spans, func(a, b span) int {
		return a.from.Compare(b.from)
	})

	var (
		days int
		cur  *span
	)

	for i := range spans {
		next := spans[i]

		if cur != nil && !next.from.After(cur.to.AddDate(0, 0, 1)) {
			if next.to.After(cur.to) {
				cur.to = next.to
			}

			continue
		}

		if cur != nil {
			days += daysBetween(cur.from, cur.to) + 1
		}

		cur = &next
	}

	if cur != nil {
		days += daysBetween(cur.from, cur.to) + 1
	}

	return days
}

// TotalOccupancyPercentage averages the unrounded per-room shares and rounds the
// mean once. An empty slice yields 0; a nil slice is rejected.
func TotalOccupancyPercentage(rooms []*Room, startDate, endDate time.Time) (float64, error) {
	if rooms == nil {
		return 0, ErrRoomsExpected
	}

	for _, r := range rooms {
		if r == nil {
			return 0, ErrRoomsExpected
		}
	}

	if startDate.IsZero() || endDate.IsZero() {
		return 0, ErrDatesExpected
	}

	shares := make([]decimal.Decimal, 0, len(rooms))

	for _, r := range rooms {
		p, err := r.share(startDate, endDate)
		if err != nil {
			return 0, err
		}

		shares = append(shares, p)
	}

	return mean(shares), nil
}
