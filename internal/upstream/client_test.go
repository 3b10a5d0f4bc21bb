package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"tiketi/internal/domain"
	"tiketi/internal/domain/models"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, false)
}

func criteria() models.SearchCriteria {
	return models.SearchCriteria{From: "Nairobi", To: "Mombasa", Date: "2024-06-01"}
}

func TestSearchTripsSuccess(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("from"); got != "Nairobi" {
			t.Errorf("from = %q", got)
		}
		w.Write([]byte(`{"success":true,"data":{"search_criteria":{"from":"Nairobi","to":"Mombasa","date":"2024-06-01"},
			"trips":[{"trip_id":9,"company_id":2,"company_name":"Modern Coast","route_name":"Nairobi - Mombasa",
			"vehicle_type":"Bus","departure_time":"10:30:00","fare":1800,"available_seats":32},
			{"trip_id":10,"company_id":2,"company_name":"Modern Coast","route_name":"Nairobi - Mombasa",
			"vehicle_type":"Bus","departure_time":"21:00:00","fare":null,"available_seats":12}]}}`))
	})

	data, fallback, err := c.SearchTrips(context.Background(), criteria())
	if err != nil || fallback {
		t.Fatalf("search: fallback=%v err=%v", fallback, err)
	}
	if len(data.Trips) != 2 || data.Trips[0].TripID != 9 {
		t.Fatalf("trips = %+v", data.Trips)
	}
	if data.Trips[1].Fare != 0 {
		t.Fatalf("null fare must decode as 0, got %v", data.Trips[1].Fare)
	}
}

func TestSearchTripsCachesLiveResults(t *testing.T) {
	var calls int32
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`{"success":true,"data":{"trips":[{"trip_id":1,"company_id":1,"fare":1500}]}}`))
	})

	for i := 0; i < 3; i++ {
		if _, _, err := c.SearchTrips(context.Background(), criteria()); err != nil {
			t.Fatalf("search %d: %v", i, err)
		}
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("upstream called %d times, want 1 (cache)", got)
	}
}

func TestSearchTripsTimeoutWithoutFallback(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})
	c.SearchTimeout = 20 * time.Millisecond

	_, _, err := c.SearchTrips(context.Background(), criteria())
	if !domain.IsRetryableUpstream(err) {
		t.Fatalf("timeout must be a retryable upstream error, got %v", err)
	}
}

func TestSearchTripsTimeoutWithFallback(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})
	c.SearchTimeout = 20 * time.Millisecond
	c.AllowFallback = true

	data, fallback, err := c.SearchTrips(context.Background(), criteria())
	if err != nil {
		t.Fatalf("fallback mode must not error: %v", err)
	}
	if !fallback || len(data.Trips) != 3 {
		t.Fatalf("want 3 fallback trips, got fallback=%v trips=%d", fallback, len(data.Trips))
	}
	if data.Trips[0].RouteName != "Nairobi - Mombasa" {
		t.Fatalf("fallback route = %q", data.Trips[0].RouteName)
	}
}

func TestSearchTripsMalformedBody(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json`))
	})
	_, _, err := c.SearchTrips(context.Background(), criteria())
	if !domain.IsUpstream(err) {
		t.Fatalf("malformed body must be an upstream error, got %v", err)
	}
}

func TestSearchTripsServerError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	_, _, err := c.SearchTrips(context.Background(), criteria())
	if !domain.IsRetryableUpstream(err) {
		t.Fatalf("5xx must be retryable, got %v", err)
	}
}

func TestTripDetailsSuccess(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("trip_id"); got != "7" {
			t.Errorf("trip_id = %q", got)
		}
		w.Write([]byte(`{"success":true,"trip_details":{
			"trip":{"id":7,"route_name":"Nairobi - Mombasa","vehicle_plate":"KCA 123A","vehicle_type":"Bus","departure_time":"08:00:00"},
			"seats":[{"number":"1A","row":1,"col":0,"status":"Available","fare":1500,"destination":"Mombasa"},
			         {"number":"1B","row":1,"col":1,"status":"booked","fare":null}],
			"vehicle_configuration":{"id":1,"layout":[[{"label":"1A","type":"seat"},null,{"label":"1B","type":"seat"}]]}}}`))
	})

	v, fallback, err := c.TripDetails(context.Background(), 2, 7)
	if err != nil || fallback {
		t.Fatalf("details: fallback=%v err=%v", fallback, err)
	}
	if v.Trip.ID != 7 || len(v.Seats) != 2 {
		t.Fatalf("vehicle = %+v", v)
	}
	if !v.Seats[0].Selectable() {
		t.Fatal("mixed-case status must normalize to available")
	}
	if v.Seats[1].Fare != 0 || v.Seats[1].Selectable() {
		t.Fatalf("seat 1B = %+v", v.Seats[1])
	}
	if len(v.Configuration.Layout) != 1 || v.Configuration.Layout[0][1] != nil {
		t.Fatalf("layout = %+v", v.Configuration.Layout)
	}
}

func TestTripDetailsUpstreamRejection(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"error":"trip not found"}`))
	})
	_, _, err := c.TripDetails(context.Background(), 2, 7)
	if !domain.IsUpstream(err) || domain.IsRetryableUpstream(err) {
		t.Fatalf("success=false must be a non-retryable upstream error, got %v", err)
	}
}

func TestTripDetailsFallbackVehicle(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})
	c.DetailTimeout = 20 * time.Millisecond
	c.AllowFallback = true

	v, fallback, err := c.TripDetails(context.Background(), 2, 7)
	if err != nil || !fallback {
		t.Fatalf("fallback: %v %v", fallback, err)
	}
	if len(v.Seats) != 52 || len(v.Configuration.Layout) != 13 {
		t.Fatalf("fallback vehicle shape: %d seats, %d rows", len(v.Seats), len(v.Configuration.Layout))
	}
	if v.Trip.ID != 7 {
		t.Fatalf("fallback trip id = %d", v.Trip.ID)
	}
}
