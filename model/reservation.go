package model

import "time"

// Reservation is the read side of a completed booking. The write side is a
// CreateReservationRequest; the server answers with this shape on success.
type Reservation struct {
	Id               int       `json:"id"`
	User             int       `json:"user"`
	Showtime         Showtime  `json:"showtime"`
	SelectedSeats    []Seat    `json:"selected_seats"`
	BookingReference string    `json:"booking_reference"`
	CreatedAt        time.Time `json:"created_at"`
	IsCancelled      bool      `json:"is_cancelled"`
	QRCodeURL        string    `json:"qr_code_url"`
	SeatNumbers      []string  `json:"seat_numbers"`
	TotalPrice       Price     `json:"total_price"`
	TotalSeats       int       `json:"total_seats"`
}

type CreateReservationRequest struct {
	ShowtimePk string `json:"showtime_pk"`
	SeatIds    []int  `json:"seat_ids"`
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}
