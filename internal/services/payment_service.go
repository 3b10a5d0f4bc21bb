package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tiketi/internal/booking"
	"tiketi/internal/domain"
	"tiketi/internal/domain/models"
	"tiketi/internal/repositories"
	"tiketi/internal/utils"
)

// PaymentGateway is the capability the wizard needs from a payment provider. A
// real integration replaces SimulatedGateway without touching the flow.
type PaymentGateway interface {
	Charge(ctx context.Context, method models.PaymentMethod, phone string, amount float64) (ChargeResult, error)
}

type ChargeResult struct {
	TransactionRef string
}

// SimulatedGateway approves every charge after a fixed delay, standing in for
// the mobile-money round trip.
type SimulatedGateway struct {
	Delay time.Duration
}

func (g SimulatedGateway) Charge(ctx context.Context, method models.PaymentMethod, phone string, amount float64) (ChargeResult, error) {
	select {
	case <-ctx.Done():
		return ChargeResult{}, domain.UpstreamError{Op: "charge", Msg: "payment interrupted", Retryable: true, Err: ctx.Err()}
	case <-time.After(g.Delay):
	}
	return ChargeResult{TransactionRef: fmt.Sprintf("SIM-%d", time.Now().UnixMilli())}, nil
}

// PaymentService validates customer and payment input, charges through the
// gateway, completes the booking, and archives it best-effort.
type PaymentService struct {
	Gateway   PaymentGateway
	Archive   repositories.BookingArchiveRepository
	RequestID string
}

type PaymentInput struct {
	Customer models.CustomerDetails
	Method   models.PaymentMethod
	Phone    string
}

func (s PaymentService) Process(ctx context.Context, sess *booking.Session, in PaymentInput) (models.BookingData, error) {
	if err := validatePaymentInput(&in); err != nil {
		return models.BookingData{}, err
	}
	if sess.Wizard.Stage() != booking.StagePayment {
		return models.BookingData{}, domain.ConflictError{Resource: "payment", Msg: "not at the payment stage"}
	}

	amount := sess.Store.Snapshot().TotalAmount

	result, err := s.Gateway.Charge(ctx, in.Method, in.Phone, amount)
	if err != nil {
		return models.BookingData{}, err
	}

	sess.Store.SetCustomerDetails(in.Customer)
	sess.Store.SetPaymentDetails(&models.PaymentDetails{
		Method:      in.Method,
		PhoneNumber: in.Phone,
		Amount:      amount,
	})

	reference, err := sess.Store.CompleteBooking()
	if err != nil {
		return models.BookingData{}, err
	}
	if err := sess.Wizard.FinishPayment(); err != nil {
		return models.BookingData{}, err
	}

	utils.LogEvent(s.RequestID, "payment", "complete",
		fmt.Sprintf("session=%s reference=%s txn=%s amount=%s", sess.ID, reference, result.TransactionRef, utils.FormatMoney(amount)))

	snap := sess.Store.Snapshot()
	if s.Archive.Enabled() {
		if err := s.Archive.Insert(repositories.ArchivedBookingFromData(snap)); err != nil {
			// archiving is best-effort; the receipt must not fail on it
			utils.LogEvent(s.RequestID, "payment", "archive_warning", err.Error())
		}
	}
	return snap, nil
}

func validatePaymentInput(in *PaymentInput) error {
	in.Customer.FullName = utils.NormalizeSpace(in.Customer.FullName)
	in.Customer.IDNumber = utils.TrimOrEmpty(in.Customer.IDNumber)
	in.Customer.MobilePhone = utils.TrimOrEmpty(in.Customer.MobilePhone)
	in.Phone = utils.TrimOrEmpty(in.Phone)
	in.Method = models.PaymentMethod(strings.ToLower(utils.TrimOrEmpty(string(in.Method))))

	if in.Customer.FullName == "" {
		return domain.ValidationError{Field: "full_name", Msg: "full name is required"}
	}
	if in.Customer.IDNumber == "" {
		return domain.ValidationError{Field: "id_number", Msg: "ID number is required"}
	}
	if in.Customer.MobilePhone == "" {
		return domain.ValidationError{Field: "mobile_phone", Msg: "mobile phone is required"}
	}

	switch in.Method {
	case models.PaymentMpesa, models.PaymentAirtel:
		if in.Phone == "" {
			return domain.ValidationError{Field: "phone_number", Msg: "phone number is required for mobile money"}
		}
	case models.PaymentCash:
		in.Phone = ""
	default:
		return domain.ValidationError{Field: "method", Msg: "payment method must be mpesa, airtel or cash"}
	}
	return nil
}
