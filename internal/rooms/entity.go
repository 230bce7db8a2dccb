package rooms

type BookingInput struct {
	Name          string         `json:"name"`
	RenterContact string         `json:"renter_contact"`
	StartDate     string         `json:"start_date"`
	EndDate       string         `json:"end_date"`
	PricePerNight float64        `json:"price_per_night"`
	Metadata      map[string]any `json:"metadata"`
}

type RegisterInput struct {
	Name      string         `json:"name"`
	BasePrice float64        `json:"base_price"`
	Capacity  int            `json:"capacity"`
	Bookings  []BookingInput `json:"bookings"`
}
