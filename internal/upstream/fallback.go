package upstream

import (
	"fmt"

	"tiketi/internal/domain/models"
)

// Static demo data served when the upstream is unreachable and fallback mode is
// on, so the flow stays usable instead of dead-ending on a network error.

func fallbackTrips(criteria models.SearchCriteria) models.TripsData {
	route := criteria.From + " - " + criteria.To
	return models.TripsData{
		SearchCriteria: criteria,
		Trips: []models.Trip{
			{TripID: 1, CompanyID: 1, CompanyName: "Easy Coach", RouteName: route, VehicleType: "Bus", DepartureTime: "08:00:00", Fare: 1500, AvailableSeats: 45},
			{TripID: 2, CompanyID: 2, CompanyName: "Modern Coast", RouteName: route, VehicleType: "Bus", DepartureTime: "10:30:00", Fare: 1800, AvailableSeats: 32},
			{TripID: 3, CompanyID: 3, CompanyName: "Guardian Coach", RouteName: route, VehicleType: "Bus", DepartureTime: "14:15:00", Fare: 1650, AvailableSeats: 28},
		},
	}
}

const (
	fallbackRows = 13
	fallbackCols = 4
)

// fallbackVehicle generates a 13×4 coach with deterministic availability: every
// third seat is booked, everything else open at the base fare.
func fallbackVehicle(tripID int64) models.Vehicle {
	seats := make([]models.Seat, 0, fallbackRows*fallbackCols)
	layout := make([][]*models.LayoutCell, 0, fallbackRows)

	for row := 0; row < fallbackRows; row++ {
		layoutRow := make([]*models.LayoutCell, 0, fallbackCols)
		for col := 0; col < fallbackCols; col++ {
			number := fmt.Sprintf("%d%c", row+1, 'A'+col)
			layoutRow = append(layoutRow, &models.LayoutCell{Label: number, Type: "seat"})

			status := models.SeatAvailable
			if (row*fallbackCols+col)%3 == 2 {
				status = models.SeatBooked
			}
			seats = append(seats, models.Seat{
				Number:      number,
				Row:         row + 1,
				Col:         col,
				Status:      status,
				Fare:        1500,
				Destination: "Mombasa",
			})
		}
		layout = append(layout, layoutRow)
	}

	return models.Vehicle{
		Trip: models.TripSummary{
			ID:            tripID,
			RouteName:     "Nairobi - Mombasa",
			VehiclePlate:  "KCA 123A",
			VehicleType:   "Bus",
			DepartureTime: "08:00:00",
			ArrivalTime:   "14:00:00",
		},
		Seats:         seats,
		Configuration: models.VehicleConfiguration{ID: 1, Layout: layout},
	}
}
