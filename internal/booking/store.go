// Package booking owns the per-session booking aggregate: a small reducer-style
// store, the wizard stage machine, and the session registry that holds both.
package booking

import (
	"strconv"
	"sync"
	"time"

	"tiketi/internal/domain"
	"tiketi/internal/domain/models"
)

const referencePrefix = "TKT"

// Store holds the canonical BookingData for one session and exposes the update
// operations on it. It is an explicit object passed by reference; callers that
// need to react to changes register a subscriber. All mutations keep the
// derived total in sync with the selection in the same critical section.
type Store struct {
	mu   sync.Mutex
	data models.BookingData
	subs []func(models.BookingData)

	// now is an injection seam for reference generation in tests.
	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		data: models.EmptyBookingData(),
		now:  time.Now,
	}
}

// Subscribe registers fn to be called with a snapshot after every mutation.
func (s *Store) Subscribe(fn func(models.BookingData)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Snapshot returns a copy of the aggregate. The selection slice is cloned so
// callers cannot alias internal state.
func (s *Store) Snapshot() models.BookingData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() models.BookingData {
	out := s.data
	out.SelectedSeats = append([]models.Seat{}, s.data.SelectedSeats...)
	return out
}

func (s *Store) notifyLocked() {
	if len(s.subs) == 0 {
		return
	}
	snap := s.snapshotLocked()
	for _, fn := range s.subs {
		fn(snap)
	}
}

// SetProvider replaces the provider reference; no other field is touched.
func (s *Store) SetProvider(p *models.Provider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Provider = p
	s.notifyLocked()
}

// SetVehicle replaces the vehicle/seat-map reference.
func (s *Store) SetVehicle(v *models.Vehicle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Vehicle = v
	s.notifyLocked()
}

// SetSelectedSeats replaces the selection and recomputes the total in the same
// operation, so the two never observably diverge.
func (s *Store) SetSelectedSeats(seats []models.Seat) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setSelectedSeatsLocked(seats)
	s.notifyLocked()
}

func (s *Store) setSelectedSeatsLocked(seats []models.Seat) {
	s.data.SelectedSeats = append([]models.Seat{}, seats...)
	s.data.TotalAmount = totalFare(seats)
}

func totalFare(seats []models.Seat) float64 {
	var total float64
	for _, seat := range seats {
		// a null fare decodes as 0, so summing is safe
		total += seat.Fare
	}
	return total
}

// ToggleSeat applies one click on the seat map: an available unselected seat is
// added, an available selected seat is removed, a booked seat is a no-op, and a
// number the vehicle does not know is not found. The returned flag reports
// whether the seat is selected after the call.
func (s *Store) ToggleSeat(number string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data.Vehicle == nil {
		return false, domain.ConflictError{Resource: "seat selection", Msg: "no vehicle loaded"}
	}
	seat, ok := s.data.Vehicle.SeatByNumber(number)
	if !ok {
		return false, domain.NotFoundError{Resource: "seat " + number}
	}
	if !seat.Selectable() {
		// booked seats ignore clicks; repeated clicks stay a no-op
		return false, nil
	}

	for i, sel := range s.data.SelectedSeats {
		if sel.Number == seat.Number {
			next := append([]models.Seat{}, s.data.SelectedSeats[:i]...)
			next = append(next, s.data.SelectedSeats[i+1:]...)
			s.setSelectedSeatsLocked(next)
			s.notifyLocked()
			return false, nil
		}
	}

	s.setSelectedSeatsLocked(append(s.data.SelectedSeats, seat))
	s.notifyLocked()
	return true, nil
}

// SelectedNumbers returns the selected seat numbers as a set, in the form the
// seat-map builder consumes.
func (s *Store) SelectedNumbers() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]bool, len(s.data.SelectedSeats))
	for _, seat := range s.data.SelectedSeats {
		out[seat.Number] = true
	}
	return out
}

func (s *Store) SetCustomerDetails(d models.CustomerDetails) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.CustomerDetails = d
	s.notifyLocked()
}

func (s *Store) SetPaymentDetails(p *models.PaymentDetails) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.PaymentDetails = p
	s.notifyLocked()
}

// CompleteBooking assigns the booking reference. The reference is the session's
// identity once set, so a second completion is a conflict.
func (s *Store) CompleteBooking() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data.BookingReference != "" {
		return "", domain.ConflictError{Resource: "booking", Msg: "already completed"}
	}
	s.data.BookingReference = newReference(s.now())
	s.notifyLocked()
	return s.data.BookingReference, nil
}

// ClearBooking resets the aggregate to its initial empty shape.
func (s *Store) ClearBooking() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = models.EmptyBookingData()
	s.notifyLocked()
}

// newReference builds "TKT" + the last 8 digits of the epoch-millisecond
// timestamp. Two completions in the same millisecond can collide; acceptable
// for this flow's volume.
func newReference(now time.Time) string {
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	if len(ms) > 8 {
		ms = ms[len(ms)-8:]
	}
	return referencePrefix + ms
}
