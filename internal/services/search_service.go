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

// SearchService validates search criteria, runs the upstream search, and moves
// the session's wizard accordingly.
type SearchService struct {
	Trips     *upstream.Client
	RequestID string
}

// SearchResult is what the handler renders: the trips (possibly fallback data)
// plus the explicit no-trips state with its retry affordances.
type SearchResult struct {
	Data     models.TripsData
	Fallback bool
	NoTrips  bool
}

func (s SearchService) Search(ctx context.Context, sess *booking.Session, criteria models.SearchCriteria) (SearchResult, error) {
	criteria.From = utils.NormalizeSpace(criteria.From)
	criteria.To = utils.NormalizeSpace(criteria.To)
	criteria.Date = utils.TrimOrEmpty(criteria.Date)
	criteria.TripType = utils.TrimOrEmpty(criteria.TripType)

	if criteria.From == "" {
		return SearchResult{}, domain.ValidationError{Field: "from", Msg: "departure location is required"}
	}
	if criteria.To == "" {
		return SearchResult{}, domain.ValidationError{Field: "to", Msg: "destination is required"}
	}
	if criteria.Date == "" {
		return SearchResult{}, domain.ValidationError{Field: "date", Msg: "travel date is required"}
	}
	if _, err := utils.ParseDate(criteria.Date); err != nil {
		return SearchResult{}, domain.ValidationError{Field: "date", Msg: "travel date must be YYYY-MM-DD"}
	}

	data, fallback, err := s.Trips.SearchTrips(ctx, criteria)
	if err != nil {
		return SearchResult{}, err
	}

	if err := sess.Wizard.ApplySearchResults(data.Trips); err != nil {
		return SearchResult{}, err
	}
	sess.SetTripsData(&data)

	utils.LogEvent(s.RequestID, "search", "trips",
		fmt.Sprintf("session=%s from=%s to=%s results=%d fallback=%v", sess.ID, criteria.From, criteria.To, len(data.Trips), fallback))

	return SearchResult{Data: data, Fallback: fallback, NoTrips: len(data.Trips) == 0}, nil
}
