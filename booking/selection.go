// Package booking implements the seat-selection and reservation-confirmation
// workflow: loading a showtime's seat inventory, tracking the user's
// in-progress selection against the reserved set, and submitting the booking.
package booking

import "cinebook-cli/model"

// MaxSeatsPerBooking caps a single booking. The cap is enforced silently;
// the UI keeps a permanent "maximum 8 seats" notice instead of popping an
// error when the cap is hit.
const MaxSeatsPerBooking = 8

// Selection is the set of seat ids the user has picked but not yet
// submitted. Insertion order is preserved so the submitted seat_ids list
// matches the order the user clicked in.
type Selection struct {
	ordered []int
	members map[int]bool
}

func NewSelection() *Selection {
	return &Selection{members: map[int]bool{}}
}

// Toggle flips seatID in or out of the selection and reports whether the
// selection changed. Reserved seats are never selectable, and a new seat is
// rejected once the selection is at MaxSeatsPerBooking.
func (s *Selection) Toggle(seatID int, reserved map[int]bool) bool {
	if reserved[seatID] {
		return false
	}
	if s.members[seatID] {
		s.remove(seatID)
		return true
	}
	if len(s.ordered) >= MaxSeatsPerBooking {
		return false
	}
	s.ordered = append(s.ordered, seatID)
	s.members[seatID] = true
	return true
}

func (s *Selection) remove(seatID int) {
	delete(s.members, seatID)
	for i, id := range s.ordered {
		if id == seatID {
			s.ordered = append(s.ordered[:i], s.ordered[i+1:]...)
			return
		}
	}
}

func (s *Selection) Contains(seatID int) bool {
	return s.members[seatID]
}

func (s *Selection) Count() int {
	return len(s.ordered)
}

// SeatIds returns the selected seat ids in selection order. The slice is a
// copy; mutating it does not affect the selection.
func (s *Selection) SeatIds() []int {
	ids := make([]int, len(s.ordered))
	copy(ids, s.ordered)
	return ids
}

// Clear empties the selection. Called after a successful submission and on
// leaving the reservation view.
func (s *Selection) Clear() {
	s.ordered = nil
	s.members = map[int]bool{}
}

// Labels maps the selection to human seat labels ("A5, B2") using the seat
// list from the inventory. Unknown ids are skipped.
func (s *Selection) Labels(seats []model.Seat) []string {
	byID := make(map[int]model.Seat, len(seats))
	for _, seat := range seats {
		byID[seat.Id] = seat
	}
	labels := make([]string, 0, len(s.ordered))
	for _, id := range s.ordered {
		if seat, ok := byID[id]; ok {
			labels = append(labels, SeatLabel(seat))
		}
	}
	return labels
}
