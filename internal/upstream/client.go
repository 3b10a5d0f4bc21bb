// Package upstream wraps the remote booking API that owns trips, seats and
// vehicle layouts. The rest of the service treats it as an opaque data source;
// everything here is timeouts, decoding, and degraded-mode fallbacks.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bluele/gcache"

	"tiketi/internal/domain"
	"tiketi/internal/domain/models"
	"tiketi/internal/utils"
)

const (
	searchPath  = "online/search_trips.php"
	detailsPath = "online/available_and_booked.php"

	searchCacheSize = 256
	searchCacheTTL  = time.Minute
)

// Client calls the remote trip API. AllowFallback selects the degraded demo
// mode: on timeout or network failure the documented static data is returned
// instead of an error, flagged as fallback.
type Client struct {
	BaseURL       string
	HTTP          *http.Client
	SearchTimeout time.Duration
	DetailTimeout time.Duration
	AllowFallback bool

	searchCache gcache.Cache
}

func NewClient(baseURL string, allowFallback bool) *Client {
	return &Client{
		BaseURL:       strings.TrimRight(baseURL, "/") + "/",
		HTTP:          &http.Client{},
		SearchTimeout: 10 * time.Second,
		DetailTimeout: 15 * time.Second,
		AllowFallback: allowFallback,
		searchCache:   gcache.New(searchCacheSize).LRU().Expiration(searchCacheTTL).Build(),
	}
}

type searchResponse struct {
	Success bool       `json:"success"`
	Data    searchData `json:"data"`
	Error   string     `json:"error"`
	Message string     `json:"message"`
	Trips   []tripDTO  `json:"trips"` // degraded upstreams return a bare trip list
}

type searchData struct {
	SearchCriteria models.SearchCriteria `json:"search_criteria"`
	Trips          []tripDTO             `json:"trips"`
}

type tripDTO struct {
	TripID         int64    `json:"trip_id"`
	CompanyID      int64    `json:"company_id"`
	CompanyName    string   `json:"company_name"`
	RouteName      string   `json:"route_name"`
	VehicleType    string   `json:"vehicle_type"`
	DepartureTime  string   `json:"departure_time"`
	Fare           *float64 `json:"fare"`
	AvailableSeats int      `json:"available_seats"`
}

func (d tripDTO) toModel() models.Trip {
	t := models.Trip{
		TripID:         d.TripID,
		CompanyID:      d.CompanyID,
		CompanyName:    d.CompanyName,
		RouteName:      d.RouteName,
		VehicleType:    d.VehicleType,
		DepartureTime:  d.DepartureTime,
		AvailableSeats: d.AvailableSeats,
	}
	if d.Fare != nil {
		t.Fare = *d.Fare
	}
	return t
}

type detailsResponse struct {
	Success     bool        `json:"success"`
	TripDetails *detailsDTO `json:"trip_details"`
	Error       string      `json:"error"`
}

type detailsDTO struct {
	Trip                 models.TripSummary          `json:"trip"`
	Seats                []seatDTO                   `json:"seats"`
	VehicleConfiguration models.VehicleConfiguration `json:"vehicle_configuration"`
}

type seatDTO struct {
	Number      string   `json:"number"`
	Row         int      `json:"row"`
	Col         int      `json:"col"`
	Status      string   `json:"status"`
	Fare        *float64 `json:"fare"`
	Destination string   `json:"destination"`
}

func (d seatDTO) toModel() models.Seat {
	s := models.Seat{
		Number:      d.Number,
		Row:         d.Row,
		Col:         d.Col,
		Status:      models.SeatStatus(strings.ToLower(strings.TrimSpace(d.Status))),
		Destination: d.Destination,
	}
	if d.Fare != nil {
		s.Fare = *d.Fare
	}
	return s
}

// SearchTrips runs the remote trip search. The boolean result reports whether
// the data is the static fallback rather than a live answer. Live results are
// cached briefly so retry-happy clients do not hammer the upstream.
func (c *Client) SearchTrips(ctx context.Context, criteria models.SearchCriteria) (models.TripsData, bool, error) {
	key := strings.ToLower(criteria.From + "|" + criteria.To + "|" + criteria.Date)
	if cached, err := c.searchCache.Get(key); err == nil {
		if data, ok := cached.(models.TripsData); ok {
			return data, false, nil
		}
	}

	q := url.Values{}
	q.Set("from", criteria.From)
	q.Set("to", criteria.To)
	q.Set("date", criteria.Date)

	body, err := c.get(ctx, searchPath, q, c.SearchTimeout)
	if err != nil {
		if c.AllowFallback && domain.IsRetryableUpstream(err) {
			utils.LogEvent("", "upstream", "search_fallback", err.Error())
			return fallbackTrips(criteria), true, nil
		}
		return models.TripsData{}, false, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return models.TripsData{}, false, domain.UpstreamError{
			Op: "search_trips", Msg: "malformed response body", Err: err,
		}
	}

	var dtos []tripDTO
	switch {
	case resp.Success:
		dtos = resp.Data.Trips
	case len(resp.Trips) > 0:
		dtos = resp.Trips
	default:
		msg := resp.Error
		if msg == "" {
			msg = resp.Message
		}
		if msg == "" {
			msg = "search rejected by upstream"
		}
		return models.TripsData{}, false, domain.UpstreamError{Op: "search_trips", Msg: msg}
	}

	data := models.TripsData{SearchCriteria: criteria, Trips: make([]models.Trip, 0, len(dtos))}
	for _, d := range dtos {
		data.Trips = append(data.Trips, d.toModel())
	}
	_ = c.searchCache.Set(key, data)
	return data, false, nil
}

// TripDetails fetches the seat list and vehicle layout for one trip and
// normalizes them into a Vehicle.
func (c *Client) TripDetails(ctx context.Context, companyID, tripID int64) (models.Vehicle, bool, error) {
	q := url.Values{}
	q.Set("company_id", strconv.FormatInt(companyID, 10))
	q.Set("trip_id", strconv.FormatInt(tripID, 10))

	body, err := c.get(ctx, detailsPath, q, c.DetailTimeout)
	if err != nil {
		if c.AllowFallback && domain.IsRetryableUpstream(err) {
			utils.LogEvent("", "upstream", "details_fallback", err.Error())
			return fallbackVehicle(tripID), true, nil
		}
		return models.Vehicle{}, false, err
	}

	var resp detailsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return models.Vehicle{}, false, domain.UpstreamError{
			Op: "trip_details", Msg: "malformed response body", Err: err,
		}
	}
	if !resp.Success || resp.TripDetails == nil {
		msg := resp.Error
		if msg == "" {
			msg = "trip details rejected by upstream"
		}
		return models.Vehicle{}, false, domain.UpstreamError{Op: "trip_details", Msg: msg}
	}

	v := models.Vehicle{
		Trip:          resp.TripDetails.Trip,
		Seats:         make([]models.Seat, 0, len(resp.TripDetails.Seats)),
		Configuration: resp.TripDetails.VehicleConfiguration,
	}
	for _, d := range resp.TripDetails.Seats {
		v.Seats = append(v.Seats, d.toModel())
	}
	return v, false, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	reqURL := c.BaseURL + path + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, domain.InternalError{Msg: "build upstream request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		retryable := true
		if errors.Is(err, context.Canceled) {
			retryable = false
		}
		return nil, domain.UpstreamError{Op: path, Msg: "request failed", Retryable: retryable, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, domain.UpstreamError{Op: path, Msg: "read response body", Retryable: true, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.UpstreamError{
			Op:        path,
			Status:    resp.StatusCode,
			Msg:       fmt.Sprintf("unexpected status %s", resp.Status),
			Retryable: resp.StatusCode >= 500,
		}
	}
	return body, nil
}
