package models

// Provider is the transport company the user picked from the search results,
// carried together with the chosen trip.
type Provider struct {
	Trip     Trip           `json:"trip"`
	Criteria SearchCriteria `json:"criteria"`
}

type CustomerDetails struct {
	FullName    string `json:"full_name"`
	IDNumber    string `json:"id_number"`
	MobilePhone string `json:"mobile_phone"`
}

type PaymentMethod string

const (
	PaymentMpesa  PaymentMethod = "mpesa"
	PaymentAirtel PaymentMethod = "airtel"
	PaymentCash   PaymentMethod = "cash"
)

type PaymentDetails struct {
	Method      PaymentMethod `json:"method"`
	PhoneNumber string        `json:"phone_number,omitempty"`
	Amount      float64       `json:"amount"`
}

// BookingData is the full in-progress-to-completed booking aggregate for one
// session. TotalAmount is always recomputed from SelectedSeats, never set
// independently. BookingReference is assigned exactly once, at completion.
type BookingData struct {
	Provider         *Provider       `json:"provider"`
	Vehicle          *Vehicle        `json:"vehicle"`
	SelectedSeats    []Seat          `json:"selected_seats"`
	CustomerDetails  CustomerDetails `json:"customer_details"`
	PaymentDetails   *PaymentDetails `json:"payment_details"`
	BookingReference string          `json:"booking_reference,omitempty"`
	TotalAmount      float64         `json:"total_amount"`
}

// EmptyBookingData returns the documented initial shape of the aggregate.
func EmptyBookingData() BookingData {
	return BookingData{SelectedSeats: []Seat{}}
}
