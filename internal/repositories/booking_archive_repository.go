package repositories

import (
	"database/sql"
	"strings"
	"time"

	"tiketi/internal/domain"
	"tiketi/internal/domain/models"
	"tiketi/internal/utils"
)

// ArchivedBooking is the flattened row written for every completed booking.
type ArchivedBooking struct {
	ID            int64
	Reference     string
	CompanyName   string
	RouteName     string
	TripDate      string
	DepartureTime string
	Seats         string
	CustomerName  string
	CustomerPhone string
	IDNumber      string
	PaymentMethod string
	TotalAmount   float64
	CreatedAt     time.Time
}

// ArchivedBookingFromData flattens the completed aggregate into its archive
// row. Callers must only pass completed bookings (reference assigned).
func ArchivedBookingFromData(d models.BookingData) ArchivedBooking {
	row := ArchivedBooking{
		Reference:     d.BookingReference,
		CustomerName:  d.CustomerDetails.FullName,
		CustomerPhone: d.CustomerDetails.MobilePhone,
		IDNumber:      d.CustomerDetails.IDNumber,
		TotalAmount:   d.TotalAmount,
	}
	if d.Provider != nil {
		row.CompanyName = d.Provider.Trip.CompanyName
		row.RouteName = d.Provider.Trip.RouteName
		row.TripDate = d.Provider.Criteria.Date
		row.DepartureTime = d.Provider.Trip.DepartureTime
	}
	if d.PaymentDetails != nil {
		row.PaymentMethod = string(d.PaymentDetails.Method)
	}
	numbers := make([]string, 0, len(d.SelectedSeats))
	for _, s := range d.SelectedSeats {
		numbers = append(numbers, s.Number)
	}
	row.Seats = utils.JoinSeatNumbers(numbers)
	return row
}

// BookingArchiveRepository persists completed bookings. With no DB configured
// the repository is disabled and every write is skipped by the caller.
type BookingArchiveRepository struct {
	DB *sql.DB
}

func (r BookingArchiveRepository) Enabled() bool {
	return r.DB != nil
}

// EnsureTable creates the archive table on startup.
func (r BookingArchiveRepository) EnsureTable() error {
	if r.DB == nil {
		return nil
	}
	ddl := `
CREATE TABLE IF NOT EXISTS booking_archive (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	reference VARCHAR(32) NOT NULL,
	company_name VARCHAR(255) NOT NULL DEFAULT '',
	route_name VARCHAR(255) NOT NULL DEFAULT '',
	trip_date VARCHAR(20) NOT NULL DEFAULT '',
	departure_time VARCHAR(20) NOT NULL DEFAULT '',
	seats VARCHAR(255) NOT NULL DEFAULT '',
	customer_name VARCHAR(255) NOT NULL DEFAULT '',
	customer_phone VARCHAR(100) NOT NULL DEFAULT '',
	id_number VARCHAR(100) NOT NULL DEFAULT '',
	payment_method VARCHAR(20) NOT NULL DEFAULT '',
	total_amount DECIMAL(12,2) NOT NULL DEFAULT 0,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_reference (reference),
	KEY idx_trip_date (trip_date)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
	_, err := r.DB.Exec(ddl)
	return err
}

func (r BookingArchiveRepository) Insert(b ArchivedBooking) error {
	if r.DB == nil {
		return domain.InternalError{Msg: "archive db not configured"}
	}
	if strings.TrimSpace(b.Reference) == "" {
		return domain.ValidationError{Field: "reference", Msg: "reference is required"}
	}
	_, err := r.DB.Exec(`
		INSERT INTO booking_archive
			(reference, company_name, route_name, trip_date, departure_time, seats,
			 customer_name, customer_phone, id_number, payment_method, total_amount)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		b.Reference, b.CompanyName, b.RouteName, b.TripDate, b.DepartureTime, b.Seats,
		b.CustomerName, b.CustomerPhone, b.IDNumber, b.PaymentMethod, b.TotalAmount,
	)
	if err != nil {
		return domain.InternalError{Msg: "insert archived booking", Err: err}
	}
	return nil
}

func (r BookingArchiveRepository) GetByReference(reference string) (ArchivedBooking, error) {
	var b ArchivedBooking
	if r.DB == nil {
		return b, domain.InternalError{Msg: "archive db not configured"}
	}
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return b, domain.ValidationError{Field: "reference", Msg: "reference is required"}
	}
	err := r.DB.QueryRow(`
		SELECT id, reference, company_name, route_name, trip_date, departure_time, seats,
		       customer_name, customer_phone, id_number, payment_method, total_amount, created_at
		FROM booking_archive WHERE reference=? LIMIT 1`, reference).
		Scan(&b.ID, &b.Reference, &b.CompanyName, &b.RouteName, &b.TripDate, &b.DepartureTime, &b.Seats,
			&b.CustomerName, &b.CustomerPhone, &b.IDNumber, &b.PaymentMethod, &b.TotalAmount, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return b, domain.NotFoundError{Resource: "booking " + reference}
	}
	if err != nil {
		return b, domain.InternalError{Msg: "query archived booking", Err: err}
	}
	return b, nil
}

func (r BookingArchiveRepository) List(limit int) ([]ArchivedBooking, error) {
	if r.DB == nil {
		return nil, domain.InternalError{Msg: "archive db not configured"}
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := r.DB.Query(`
		SELECT id, reference, company_name, route_name, trip_date, departure_time, seats,
		       customer_name, customer_phone, id_number, payment_method, total_amount, created_at
		FROM booking_archive ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, domain.InternalError{Msg: "list archived bookings", Err: err}
	}
	defer rows.Close()

	out := []ArchivedBooking{}
	for rows.Next() {
		var b ArchivedBooking
		if err := rows.Scan(&b.ID, &b.Reference, &b.CompanyName, &b.RouteName, &b.TripDate, &b.DepartureTime, &b.Seats,
			&b.CustomerName, &b.CustomerPhone, &b.IDNumber, &b.PaymentMethod, &b.TotalAmount, &b.CreatedAt); err != nil {
			return out, domain.InternalError{Msg: "scan archived booking", Err: err}
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
