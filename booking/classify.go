package booking

import (
	"fmt"

	"cinebook-cli/model"
)

// VIPRowCount marks the first rows of every theater as VIP. Purely
// presentational; VIP seats cost and book the same as any other.
const VIPRowCount = 3

// ServiceFee is the fixed per-booking fee shown in the price summary. It is
// display-only; the server computes the authoritative total.
const ServiceFee = 2.50

// SeatStatus is the visual classification of a seat.
type SeatStatus int

const (
	StatusAvailable SeatStatus = iota
	StatusVIP
	StatusSelected
	StatusReserved
)

func (s SeatStatus) String() string {
	switch s {
	case StatusReserved:
		return "reserved"
	case StatusSelected:
		return "selected"
	case StatusVIP:
		return "vip"
	default:
		return "available"
	}
}

// ClassifySeat derives a seat's status from the reserved set, the current
// selection, and its row. Precedence is strict:
// reserved > selected > vip > available. Derived on demand rather than
// stored per seat, so the map can never disagree with the sets.
func ClassifySeat(seat model.Seat, reserved map[int]bool, selection *Selection) SeatStatus {
	if reserved[seat.Id] {
		return StatusReserved
	}
	if selection != nil && selection.Contains(seat.Id) {
		return StatusSelected
	}
	if seat.RowNumber >= 1 && seat.RowNumber <= VIPRowCount {
		return StatusVIP
	}
	return StatusAvailable
}

// RowLabel renders a 1-based row number as the letter shown to the user:
// row 1 is "A". Rows past "Z" fall back to the bare number.
func RowLabel(rowNumber int) string {
	if rowNumber >= 1 && rowNumber <= 26 {
		return string(rune('A' + rowNumber - 1))
	}
	return fmt.Sprintf("%d", rowNumber)
}

// SeatLabel renders a seat as row letter plus seat number, e.g. "A5".
func SeatLabel(seat model.Seat) string {
	return fmt.Sprintf("%s%d", RowLabel(seat.RowNumber), seat.SeatNumber)
}

// TotalPrice is the display-only total: unit price times seat count plus
// the fixed service fee. Zero seats means nothing to show and no fee.
func TotalPrice(unitPrice float64, seatCount int) float64 {
	if seatCount <= 0 {
		return 0
	}
	return unitPrice*float64(seatCount) + ServiceFee
}
