package models

// SearchCriteria is set once per search and cleared on a new search.
type SearchCriteria struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Date     string `json:"date"`
	TripType string `json:"trip_type,omitempty"`
}

// Trip is an immutable snapshot of one scheduled departure as returned by the
// trip-search API. One booking session selects exactly one Trip.
type Trip struct {
	TripID         int64   `json:"trip_id"`
	CompanyID      int64   `json:"company_id"`
	CompanyName    string  `json:"company_name"`
	RouteName      string  `json:"route_name"`
	VehicleType    string  `json:"vehicle_type"`
	DepartureTime  string  `json:"departure_time"`
	Fare           float64 `json:"fare"`
	AvailableSeats int     `json:"available_seats"`
}

// TripsData pairs a trip list with the criteria that produced it.
type TripsData struct {
	SearchCriteria SearchCriteria `json:"search_criteria"`
	Trips          []Trip         `json:"trips"`
}

// TripSummary is the trip header returned by the trip-detail endpoint.
type TripSummary struct {
	ID            int64  `json:"id"`
	RouteName     string `json:"route_name"`
	VehiclePlate  string `json:"vehicle_plate"`
	VehicleType   string `json:"vehicle_type"`
	DepartureTime string `json:"departure_time"`
	ArrivalTime   string `json:"arrival_time,omitempty"`
}
