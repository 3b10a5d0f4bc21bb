package services

import (
	"context"
	"fmt"

	"tiketi/internal/booking"
	"tiketi/internal/domain"
	"tiketi/internal/domain/models"
	"tiketi/internal/upstream"
	"tiketi/internal/utils"
)

// TripDetailService resolves a provider choice into a loaded vehicle: it
// validates the trip against the session's search results, fetches the seat
// list and layout, and advances the wizard to the seats stage. A failed fetch
// leaves the session at the providers stage with nothing partially applied.
type TripDetailService struct {
	Trips     *upstream.Client
	RequestID string
}

func (s TripDetailService) SelectProvider(ctx context.Context, sess *booking.Session, companyID, tripID int64) (*models.Vehicle, bool, error) {
	trips := sess.TripsData()
	if trips == nil {
		return nil, false, domain.ConflictError{Resource: "provider selection", Msg: "no search results in session"}
	}

	var chosen *models.Trip
	for i := range trips.Trips {
		t := trips.Trips[i]
		if t.TripID == tripID && t.CompanyID == companyID {
			chosen = &t
			break
		}
	}
	if chosen == nil {
		return nil, false, domain.NotFoundError{Resource: fmt.Sprintf("trip %d for company %d", tripID, companyID)}
	}

	gen, err := sess.Wizard.BeginFetch()
	if err != nil {
		return nil, false, err
	}

	vehicle, fallback, err := s.Trips.TripDetails(ctx, companyID, tripID)
	if err != nil {
		// wizard stays at providers; the client gets a retry affordance
		return nil, false, err
	}

	provider := &models.Provider{Trip: *chosen, Criteria: trips.SearchCriteria}
	if err := sess.Wizard.ApplyTripDetails(gen, provider, &vehicle); err != nil {
		// superseded by navigation; drop the payload
		return nil, false, err
	}

	utils.LogEvent(s.RequestID, "trips", "select_provider",
		fmt.Sprintf("session=%s company=%d trip=%d seats=%d fallback=%v", sess.ID, companyID, tripID, len(vehicle.Seats), fallback))

	return &vehicle, fallback, nil
}
