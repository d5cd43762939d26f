package tui

import (
	"io"
	"log"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"cinebook-cli/booking"
	"cinebook-cli/model"
	"cinebook-cli/service"
)

type testItem struct {
	value string
}

func (t testItem) Title() string       { return t.value }
func (t testItem) Description() string { return "" }
func (t testItem) FilterValue() string { return strings.ToLower(t.value) }

func newTestModel() *appModel {
	m := &appModel{
		state:     stateSelectMovie,
		selection: booking.NewSelection(),
		logger:    log.New(io.Discard, "", 0),
	}
	m.movieList = newList("Now Showing")
	m.showtimeList = newList("Showtimes")
	m.reservationList = newList("My Reservations")
	return m
}

func seatMapModel() *appModel {
	m := newTestModel()
	theater := model.Theater{Id: 2, Name: "Downtown", Rows: 5, SeatsPerRow: 10}
	seats := make([]model.Seat, 0, 50)
	id := 1
	for row := 1; row <= 5; row++ {
		for num := 1; num <= 10; num++ {
			seats = append(seats, model.Seat{Id: id, Theater: 2, RowNumber: row, SeatNumber: num})
			id++
		}
	}
	m.inv = booking.Inventory{
		Showtime: model.Showtime{Id: 42, Theater: theater, Price: 12.50},
		Theater:  theater,
		Seats:    seats,
		Reserved: map[int]bool{7: true},
	}
	m.state = stateSelectSeats
	return m
}

func TestHandleFilterInput_AppendsRunes(t *testing.T) {
	m := newTestModel()
	m.movieList.SetItems([]list.Item{
		testItem{value: "Arrival"},
		testItem{value: "Alien"},
	})

	if !m.handleFilterInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")}) {
		t.Fatal("expected filter input to be handled")
	}
	if got := m.movieList.FilterValue(); got != "a" {
		t.Fatalf("expected filter value to be %q, got %q", "a", got)
	}

	if !m.handleFilterInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")}) {
		t.Fatal("expected filter input to be handled")
	}
	if got := m.movieList.FilterValue(); got != "al" {
		t.Fatalf("expected filter value to be %q, got %q", "al", got)
	}
}

func TestHandleFilterInput_Backspace(t *testing.T) {
	m := newTestModel()
	m.movieList.SetItems([]list.Item{testItem{value: "Arrival"}})

	_ = m.handleFilterInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	_ = m.handleFilterInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})

	if !m.handleFilterInput(tea.KeyMsg{Type: tea.KeyBackspace}) {
		t.Fatal("expected backspace to be handled")
	}
	if got := m.movieList.FilterValue(); got != "a" {
		t.Fatalf("expected filter value to be %q, got %q", "a", got)
	}
}

func TestHandleFilterInput_IgnoredOutsideListStates(t *testing.T) {
	m := seatMapModel()
	if m.handleFilterInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")}) {
		t.Fatal("seat map keys must not feed the list filter")
	}
}

func TestMoveCursor_StaysInsideGrid(t *testing.T) {
	m := seatMapModel()

	m.moveCursor("up")
	m.moveCursor("left")
	if m.cursorRow != 0 || m.cursorSeat != 0 {
		t.Fatalf("cursor escaped the grid: %d,%d", m.cursorRow, m.cursorSeat)
	}

	for i := 0; i < 20; i++ {
		m.moveCursor("down")
		m.moveCursor("right")
	}
	if m.cursorRow != 4 || m.cursorSeat != 9 {
		t.Fatalf("cursor escaped the grid: %d,%d", m.cursorRow, m.cursorSeat)
	}
}

func TestToggleSeatUnderCursor(t *testing.T) {
	m := seatMapModel()

	m.toggleSeatUnderCursor()
	if !m.selection.Contains(1) {
		t.Fatal("expected seat 1 selected")
	}

	m.toggleSeatUnderCursor()
	if m.selection.Contains(1) {
		t.Fatal("expected seat 1 deselected")
	}
}

func TestToggleSeatUnderCursor_ReservedSeatIsNoOp(t *testing.T) {
	m := seatMapModel()
	m.cursorSeat = 6 // seat id 7, reserved

	m.toggleSeatUnderCursor()
	if m.selection.Count() != 0 {
		t.Fatal("reserved seats must not be selectable")
	}
}

func TestOpenConfirmDialog_RequiresSelection(t *testing.T) {
	m := seatMapModel()

	next, _, handled := m.openConfirmDialog()
	if !handled {
		t.Fatal("expected key to be handled")
	}
	if next.state != stateSelectSeats {
		t.Fatalf("empty selection must stay on the seat map, got state %d", next.state)
	}
	if next.notice == "" {
		t.Fatal("expected a validation notice")
	}

	next.selection.Toggle(1, nil)
	next, _, _ = next.openConfirmDialog()
	if next.state != stateConfirm {
		t.Fatalf("expected confirm dialog, got state %d", next.state)
	}
	if next.notice != "" {
		t.Fatalf("expected notice cleared, got %q", next.notice)
	}
}

func TestSubmitFailure_KeepsSelectionAndShowsDetail(t *testing.T) {
	m := seatMapModel()
	m.selection.Toggle(3, nil)
	m.selection.Toggle(4, nil)
	m.state = stateSubmitting

	serverErr := &service.APIError{StatusCode: 400, Status: "400 Bad Request", Detail: "Seat already reserved"}
	updated, _ := m.Update(submitMsg{err: serverErr})
	next := updated.(appModel)

	if next.state != stateSelectSeats {
		t.Fatalf("expected return to seat map, got state %d", next.state)
	}
	if next.notice != "Seat already reserved" {
		t.Fatalf("expected server detail verbatim, got %q", next.notice)
	}
	if next.selection.Count() != 2 {
		t.Fatal("failed submission must keep the selection")
	}
}

func TestSubmitSuccess_ClearsSelection(t *testing.T) {
	m := seatMapModel()
	m.selection.Toggle(3, nil)
	m.state = stateSubmitting

	updated, cmd := m.Update(submitMsg{reservation: model.Reservation{BookingReference: "CB-1"}})
	next := updated.(appModel)

	if next.selection.Count() != 0 {
		t.Fatal("successful submission must clear the selection")
	}
	if next.state != stateLoadingReservations {
		t.Fatalf("expected reservation list load, got state %d", next.state)
	}
	if cmd == nil {
		t.Fatal("expected a follow-up command")
	}
}

func TestGoBackFromSeatMap_DiscardsSelection(t *testing.T) {
	m := seatMapModel()
	m.selection.Toggle(1, nil)
	m.notice = "something"

	next := m.goBack()
	if next.state != stateSelectShowtime {
		t.Fatalf("expected showtime list, got state %d", next.state)
	}
	if next.selection.Count() != 0 {
		t.Fatal("leaving the seat map must discard the selection")
	}
	if next.notice != "" {
		t.Fatal("expected notice cleared")
	}
}

func TestSeatMapView_MarksStatuses(t *testing.T) {
	m := seatMapModel()
	m.showSeatNumbers = false
	m.selection.Toggle(11, nil) // row B, seat 1

	view := m.seatMapView()
	if !strings.Contains(view, "SCREEN") {
		t.Fatal("expected the screen bar")
	}
	if !strings.Contains(view, "XX") {
		t.Fatal("expected a reserved marker")
	}
	if !strings.Contains(view, "()") {
		t.Fatal("expected a selected marker")
	}
	if !strings.Contains(view, "Selected: 1/8") {
		t.Fatal("expected the selection counter")
	}
}

func TestSummaryView_PriceBreakdown(t *testing.T) {
	m := seatMapModel()
	m.selection.Toggle(31, nil) // row D, past the vip rows
	m.selection.Toggle(32, nil)
	m.selection.Toggle(33, nil)

	view := m.summaryView()
	if !strings.Contains(view, "Tickets: 37.50") {
		t.Fatalf("unexpected ticket line:\n%s", view)
	}
	if !strings.Contains(view, "Booking fee: 2.50") {
		t.Fatalf("unexpected fee line:\n%s", view)
	}
	if !strings.Contains(view, "Total: 40.00") {
		t.Fatalf("unexpected total line:\n%s", view)
	}
}

func TestRecoverStateFrom(t *testing.T) {
	cases := map[appState]appState{
		stateLoadingMovies:       stateSelectMovie,
		stateLoadingShowtimes:    stateSelectMovie,
		stateLoadingInventory:    stateSelectShowtime,
		stateSubmitting:          stateSelectSeats,
		stateLoadingReservations: stateSelectMovie,
	}
	for from, want := range cases {
		if got := recoverStateFrom(from); got != want {
			t.Fatalf("recoverStateFrom(%d) = %d, want %d", from, got, want)
		}
	}
}
