package models

import "strings"

type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatBooked    SeatStatus = "booked"
)

// Seat is one bookable unit within a vehicle, keyed by Number. A null fare on
// the wire decodes as 0.
type Seat struct {
	Number      string     `json:"number"`
	Row         int        `json:"row"`
	Col         int        `json:"col"`
	Status      SeatStatus `json:"status"`
	Fare        float64    `json:"fare"`
	Destination string     `json:"destination,omitempty"`
}

// Selectable reports whether the seat can take part in a selection at all.
// Anything that is not explicitly available is treated as booked.
func (s Seat) Selectable() bool {
	return strings.EqualFold(string(s.Status), string(SeatAvailable))
}

// LayoutCell is one position of the vehicle grid template. A nil cell in the
// layout is an aisle or gap.
type LayoutCell struct {
	Label string `json:"label"`
	Type  string `json:"type,omitempty"`
}

// VehicleConfiguration is the physical seat grid template for a trip,
// independent of occupancy.
type VehicleConfiguration struct {
	ID     int64           `json:"id"`
	Layout [][]*LayoutCell `json:"layout"`
}

// Vehicle binds the grid template to the live seat records for one trip.
type Vehicle struct {
	Trip          TripSummary          `json:"trip"`
	Seats         []Seat               `json:"seats"`
	Configuration VehicleConfiguration `json:"vehicle_configuration"`
}

// SeatByNumber looks a seat up by its number. The boolean result is the only
// signal for a missing seat; callers must not treat the zero Seat as found.
// Duplicate numbers resolve to the first occurrence.
func (v Vehicle) SeatByNumber(number string) (Seat, bool) {
	for _, s := range v.Seats {
		if s.Number == number {
			return s, true
		}
	}
	return Seat{}, false
}
