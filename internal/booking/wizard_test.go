package booking

import (
	"testing"
	"time"

	"tiketi/internal/domain"
	"tiketi/internal/domain/models"
)

func nairobiMombasa() models.SearchCriteria {
	return models.SearchCriteria{From: "Nairobi", To: "Mombasa", Date: "2024-06-01"}
}

func sampleTrips() []models.Trip {
	return []models.Trip{
		{TripID: 1, CompanyID: 1, CompanyName: "Easy Coach", RouteName: "Nairobi - Mombasa", Fare: 1500, AvailableSeats: 45},
	}
}

func advanceToSeats(t *testing.T, w *Wizard) {
	t.Helper()
	if err := w.ApplySearchResults(sampleTrips()); err != nil {
		t.Fatalf("search: %v", err)
	}
	gen, err := w.BeginFetch()
	if err != nil {
		t.Fatalf("begin fetch: %v", err)
	}
	provider := &models.Provider{Trip: sampleTrips()[0], Criteria: nairobiMombasa()}
	if err := w.ApplyTripDetails(gen, provider, testVehicle()); err != nil {
		t.Fatalf("apply details: %v", err)
	}
}

func TestWizardHappyPath(t *testing.T) {
	store := NewStore()
	w := NewWizard(store)

	if w.Stage() != StageSearch {
		t.Fatalf("initial stage = %s", w.Stage())
	}

	advanceToSeats(t, w)
	if w.Stage() != StageSeats {
		t.Fatalf("stage after details = %s", w.Stage())
	}
	if snap := store.Snapshot(); snap.Vehicle == nil || snap.Provider == nil {
		t.Fatal("store not populated by trip details")
	}

	if _, err := store.ToggleSeat("1A"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := w.BeginPayment(); err != nil {
		t.Fatalf("begin payment: %v", err)
	}
	if _, err := store.CompleteBooking(); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if err := w.FinishPayment(); err != nil {
		t.Fatalf("finish payment: %v", err)
	}
	if w.Stage() != StageReceipt {
		t.Fatalf("final stage = %s", w.Stage())
	}
}

func TestEmptySearchKeepsSearchStage(t *testing.T) {
	w := NewWizard(NewStore())
	if err := w.ApplySearchResults(nil); err != nil {
		t.Fatalf("empty search: %v", err)
	}
	if w.Stage() != StageSearch {
		t.Fatalf("stage = %s, want search", w.Stage())
	}
	if !w.NoTripsFound() {
		t.Fatal("empty result must flag the no-trips state")
	}

	// retry with a different date clears the flag
	if err := w.ApplySearchResults(sampleTrips()); err != nil {
		t.Fatalf("retry search: %v", err)
	}
	if w.Stage() != StageProviders || w.NoTripsFound() {
		t.Fatalf("retry did not advance: stage=%s noTrips=%v", w.Stage(), w.NoTripsFound())
	}
}

func TestBeginPaymentRequiresSelection(t *testing.T) {
	store := NewStore()
	w := NewWizard(store)
	advanceToSeats(t, w)

	if err := w.BeginPayment(); !domain.IsValidation(err) {
		t.Fatalf("empty selection must be a validation error, got %v", err)
	}

	store.ToggleSeat("1A")
	if err := w.BeginPayment(); err != nil {
		t.Fatalf("begin payment with selection: %v", err)
	}
}

func TestFinishPaymentRequiresReference(t *testing.T) {
	store := NewStore()
	w := NewWizard(store)
	advanceToSeats(t, w)
	store.ToggleSeat("1A")
	if err := w.BeginPayment(); err != nil {
		t.Fatalf("begin payment: %v", err)
	}

	if err := w.FinishPayment(); !domain.IsConflict(err) {
		t.Fatalf("receipt must be unreachable without a reference, got %v", err)
	}
}

func TestStaleTripDetailsDropped(t *testing.T) {
	store := NewStore()
	w := NewWizard(store)
	if err := w.ApplySearchResults(sampleTrips()); err != nil {
		t.Fatalf("search: %v", err)
	}

	gen, err := w.BeginFetch()
	if err != nil {
		t.Fatalf("begin fetch: %v", err)
	}

	// user navigates back to search while the fetch is in flight
	if err := w.Back(); err != nil {
		t.Fatalf("back: %v", err)
	}

	provider := &models.Provider{Trip: sampleTrips()[0]}
	if err := w.ApplyTripDetails(gen, provider, testVehicle()); err != ErrStaleFetch {
		t.Fatalf("stale result must be dropped, got %v", err)
	}
	if snap := store.Snapshot(); snap.Vehicle != nil || snap.Provider != nil {
		t.Fatal("stale result mutated the store")
	}
}

func TestStaleAfterNewSearch(t *testing.T) {
	store := NewStore()
	w := NewWizard(store)
	if err := w.ApplySearchResults(sampleTrips()); err != nil {
		t.Fatalf("search: %v", err)
	}
	gen, _ := w.BeginFetch()

	// a second search from the providers stage supersedes the fetch
	if err := w.ApplySearchResults(sampleTrips()); err != nil {
		t.Fatalf("re-search: %v", err)
	}
	if err := w.ApplyTripDetails(gen, &models.Provider{}, testVehicle()); err != ErrStaleFetch {
		t.Fatalf("want ErrStaleFetch after re-search, got %v", err)
	}
}

func TestBackTransitions(t *testing.T) {
	store := NewStore()
	w := NewWizard(store)
	advanceToSeats(t, w)
	store.ToggleSeat("1A")
	if err := w.BeginPayment(); err != nil {
		t.Fatalf("begin payment: %v", err)
	}

	steps := []Stage{StageSeats, StageProviders, StageSearch}
	for _, want := range steps {
		if err := w.Back(); err != nil {
			t.Fatalf("back to %s: %v", want, err)
		}
		if w.Stage() != want {
			t.Fatalf("stage = %s, want %s", w.Stage(), want)
		}
	}
	if err := w.Back(); !domain.IsConflict(err) {
		t.Fatalf("back from search must fail, got %v", err)
	}
}

func TestSearchRefusedMidBooking(t *testing.T) {
	store := NewStore()
	w := NewWizard(store)
	advanceToSeats(t, w)
	if err := w.ApplySearchResults(sampleTrips()); !domain.IsConflict(err) {
		t.Fatalf("search from seats stage must conflict, got %v", err)
	}
}

func TestResetReturnsToSearch(t *testing.T) {
	store := NewStore()
	w := NewWizard(store)
	advanceToSeats(t, w)
	store.ToggleSeat("1A")

	w.Reset()

	if w.Stage() != StageSearch {
		t.Fatalf("stage after reset = %s", w.Stage())
	}
	if snap := store.Snapshot(); snap.Vehicle != nil || len(snap.SelectedSeats) != 0 || snap.TotalAmount != 0 {
		t.Fatalf("reset left state behind: %+v", snap)
	}
}

func TestRegistryLifecycle(t *testing.T) {
	reg := NewRegistry(0) // no sweep goroutine
	defer reg.Close()

	sess := reg.Create()
	if sess.ID == "" {
		t.Fatal("session id empty")
	}
	got, err := reg.Get(sess.ID)
	if err != nil || got != sess {
		t.Fatalf("get: %v", err)
	}

	reg.Delete(sess.ID)
	if _, err := reg.Get(sess.ID); !domain.IsNotFound(err) {
		t.Fatalf("deleted session must be not found, got %v", err)
	}
}

func TestRegistryEvictsIdleSessions(t *testing.T) {
	reg := NewRegistry(0)
	defer reg.Close()
	reg.ttl = time.Minute

	sess := reg.Create()
	reg.evictIdle(time.Now().Add(2 * time.Minute))

	if _, err := reg.Get(sess.ID); !domain.IsNotFound(err) {
		t.Fatalf("idle session must be evicted, got %v", err)
	}
	if reg.Len() != 0 {
		t.Fatalf("registry still holds %d sessions", reg.Len())
	}
}
