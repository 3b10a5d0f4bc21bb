package booking

import (
	"errors"
	"sync"

	"tiketi/internal/domain"
	"tiketi/internal/domain/models"
)

// Stage is one step of the linear booking wizard.
type Stage string

const (
	StageSearch    Stage = "search"
	StageProviders Stage = "providers"
	StageSeats     Stage = "seats"
	StagePayment   Stage = "payment"
	StageReceipt   Stage = "receipt"
)

// ErrStaleFetch marks a trip-detail result that arrived after the user
// navigated away; the caller must drop the payload.
var ErrStaleFetch = errors.New("fetch superseded by navigation")

// Wizard sequences one session through search → providers → seats → payment →
// receipt. Forward transitions are guarded on the prerequisite step's side
// effect; every forward stage has an explicit back transition. The fetch
// generation counter guards against stale responses: any navigation bumps it,
// and results carrying an older generation are rejected.
type Wizard struct {
	mu          sync.Mutex
	stage       Stage
	gen         uint64
	emptySearch bool

	store *Store
}

func NewWizard(store *Store) *Wizard {
	return &Wizard{stage: StageSearch, store: store}
}

func (w *Wizard) Stage() Stage {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stage
}

// NoTripsFound reports whether the last search at the search stage came back
// empty, i.e. the distinct "no trips" state with its retry affordances.
func (w *Wizard) NoTripsFound() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stage == StageSearch && w.emptySearch
}

// ApplySearchResults records a finished trip search. A non-empty list moves the
// wizard to the providers stage; an empty one keeps the search stage and flags
// the no-trips state. A new search is allowed from search and providers (the
// "retry with different date" affordance), but not once a trip is committed.
// The criteria that produced the list live on the session, not here.
func (w *Wizard) ApplySearchResults(trips []models.Trip) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.stage {
	case StageSearch, StageProviders:
	default:
		return domain.ConflictError{Resource: "wizard", Msg: "cannot search at stage " + string(w.stage)}
	}

	w.gen++
	if len(trips) == 0 {
		w.stage = StageSearch
		w.emptySearch = true
		return nil
	}
	w.emptySearch = false
	w.stage = StageProviders
	return nil
}

// BeginFetch snapshots the current generation before a trip-detail fetch. The
// caller passes the snapshot back to ApplyTripDetails; if the user navigated in
// between, the snapshot is stale and the result is dropped.
func (w *Wizard) BeginFetch() (uint64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stage != StageProviders {
		return 0, domain.ConflictError{Resource: "wizard", Msg: "provider selection requires the providers stage"}
	}
	return w.gen, nil
}

// ApplyTripDetails installs the fetched vehicle and advances to the seats
// stage. Selection state stays empty on failure paths: this is only called on
// success, and stale results never mutate the store.
func (w *Wizard) ApplyTripDetails(gen uint64, provider *models.Provider, vehicle *models.Vehicle) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stage != StageProviders {
		return ErrStaleFetch
	}
	if gen != w.gen {
		return ErrStaleFetch
	}
	w.store.SetProvider(provider)
	w.store.SetVehicle(vehicle)
	w.store.SetSelectedSeats(nil)
	w.stage = StageSeats
	return nil
}

// BeginPayment moves seats → payment. It requires a loaded vehicle and a
// non-empty selection; paying for zero seats is refused outright.
func (w *Wizard) BeginPayment() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stage != StageSeats {
		return domain.ConflictError{Resource: "wizard", Msg: "payment requires the seats stage"}
	}
	snap := w.store.Snapshot()
	if snap.Vehicle == nil {
		return domain.ConflictError{Resource: "wizard", Msg: "no vehicle loaded"}
	}
	if len(snap.SelectedSeats) == 0 {
		return domain.ValidationError{Field: "selected_seats", Msg: "select at least one seat"}
	}
	w.gen++
	w.stage = StagePayment
	return nil
}

// FinishPayment moves payment → receipt once the booking is completed. The
// receipt stage is unreachable without a reference.
func (w *Wizard) FinishPayment() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stage != StagePayment {
		return domain.ConflictError{Resource: "wizard", Msg: "not at the payment stage"}
	}
	if w.store.Snapshot().BookingReference == "" {
		return domain.ConflictError{Resource: "wizard", Msg: "booking not completed"}
	}
	w.gen++
	w.stage = StageReceipt
	return nil
}

// Back performs the explicit backward transition of the current stage. The
// receipt stage has no back; the only way onward is a new booking.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch w.stage {
	case StageProviders:
		w.stage = StageSearch
	case StageSeats:
		w.stage = StageProviders
	case StagePayment:
		w.stage = StageSeats
	default:
		return domain.ConflictError{Resource: "wizard", Msg: "no back transition from stage " + string(w.stage)}
	}
	w.gen++
	return nil
}

// Reset returns to the search stage for a fresh booking, clearing the store.
func (w *Wizard) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.gen++
	w.stage = StageSearch
	w.emptySearch = false
	w.store.ClearBooking()
}
