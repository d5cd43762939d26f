package booking

import (
	"context"
	"errors"

	"cinebook-cli/auth"
	"cinebook-cli/model"
	"cinebook-cli/service"
)

// BookingAPI is the slice of the reservation API the submitter needs.
type BookingAPI interface {
	CreateReservation(ctx context.Context, session *auth.Session, showtimeID int, seatIDs []int) (model.Reservation, error)
}

var (
	// ErrNoSeatsSelected is a local validation failure; no request is made.
	ErrNoSeatsSelected = errors.New("select at least one seat")
	// ErrLoginRequired means the caller must go through the login flow
	// before booking; no request is made.
	ErrLoginRequired = errors.New("login required to book seats")
)

// genericSubmitMessage is shown when the server rejected the booking
// without a detail message of its own.
const genericSubmitMessage = "Reservation failed. Please try again."

// Submit books the current selection for the showtime with exactly one
// request. On failure the caller keeps the selection so the user can retry
// without re-picking; on success the caller clears it and navigates to the
// reservation list.
func Submit(ctx context.Context, api BookingAPI, session *auth.Session, showtimeID int, selection *Selection) (model.Reservation, error) {
	if selection == nil || selection.Count() == 0 {
		return model.Reservation{}, ErrNoSeatsSelected
	}
	if !session.Authenticated() {
		return model.Reservation{}, ErrLoginRequired
	}
	return api.CreateReservation(ctx, session, showtimeID, selection.SeatIds())
}

// SubmitFailureMessage maps a submission error to what the user sees: the
// server's detail verbatim when present, a generic retry message otherwise.
// Local validation errors pass through unchanged.
func SubmitFailureMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrNoSeatsSelected) || errors.Is(err, ErrLoginRequired) {
		return err.Error()
	}
	if detail := service.ErrorDetail(err); detail != "" {
		return detail
	}
	return genericSubmitMessage
}
