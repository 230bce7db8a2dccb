package occupancy

import "time"

type Booking struct {
	Name          string         `json:"name"`
	RenterContact string         `json:"renter_contact"`
	StartDate     time.Time      `json:"start_date"`
	EndDate       time.Time      `json:"end_date"`
	PricePerNight float64        `json:"price_per_night"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// NewBooking stores its arguments as given. Dates and price are not checked.
func NewBooking(
	name, renterContact string,
	startDate, endDate time.Time,
	pricePerNight float64,
	metadata map[string]any,
) *Booking {
	return &Booking{
		Name:          name,
		RenterContact: renterContact,
		StartDate:     startDate,
		EndDate:       endDate,
		PricePerNight: pricePerNight,
		Metadata:      metadata,
	}
}

// Covers reports whether day lies within [StartDate, EndDate], both ends included.
func (b *Booking) Covers(day time.Time) bool {
	d := Day(day)

	return !d.Before(Day(b.StartDate)) && !d.After(Day(b.EndDate))
}
