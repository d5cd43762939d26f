package service

import (
	"context"
	"errors"
	"fmt"

	"cinebook-cli/auth"
	"cinebook-cli/model"
)

// ReservedSeatIds fetches the ids of every seat already booked for the
// showtime, across all users. The session is optional; without one the
// server still answers for public deployments, and callers treat a failure
// here as a degraded load rather than a fatal one.
func (c *Client) ReservedSeatIds(ctx context.Context, session *auth.Session, showtimeID int) ([]int, error) {
	if showtimeID <= 0 {
		return nil, errors.New("showtime id is required")
	}
	endpoint := fmt.Sprintf("%s/showtimes/%d/reserved_seats/", c.baseURL, showtimeID)

	var ids []int
	if err := c.getJSON(ctx, session, endpoint, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// CreateReservation books the given seats for the showtime. It issues
// exactly one POST; the server is the sole arbiter of seat conflicts, and
// its error detail (if any) is preserved on the returned *APIError.
func (c *Client) CreateReservation(ctx context.Context, session *auth.Session, showtimeID int, seatIDs []int) (model.Reservation, error) {
	if !session.Authenticated() {
		return model.Reservation{}, errors.New("an authenticated session is required to book seats")
	}
	if showtimeID <= 0 {
		return model.Reservation{}, errors.New("showtime id is required")
	}
	if len(seatIDs) == 0 {
		return model.Reservation{}, errors.New("at least one seat id is required")
	}
	endpoint := fmt.Sprintf("%s/reservations/", c.baseURL)
	body := model.CreateReservationRequest{
		ShowtimePk: fmt.Sprint(showtimeID),
		SeatIds:    seatIDs,
	}

	var reservation model.Reservation
	if err := c.postJSON(ctx, session, endpoint, body, &reservation); err != nil {
		return model.Reservation{}, err
	}
	return reservation, nil
}

// ListReservations fetches the authenticated user's reservations.
func (c *Client) ListReservations(ctx context.Context, session *auth.Session) ([]model.Reservation, error) {
	if !session.Authenticated() {
		return nil, errors.New("an authenticated session is required to list reservations")
	}
	endpoint := fmt.Sprintf("%s/reservations/", c.baseURL)

	var reservations []model.Reservation
	if err := c.getJSON(ctx, session, endpoint, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}
