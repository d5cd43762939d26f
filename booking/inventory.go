package booking

import (
	"context"
	"fmt"
	"log"
	"sync"

	"cinebook-cli/auth"
	"cinebook-cli/model"
)

// InventoryAPI is the slice of the reservation API the loader needs.
type InventoryAPI interface {
	GetShowtime(ctx context.Context, showtimeID int) (model.Showtime, error)
	GetTheater(ctx context.Context, theaterID int) (model.Theater, error)
	ListSeats(ctx context.Context, theaterID int) ([]model.Seat, error)
	ReservedSeatIds(ctx context.Context, session *auth.Session, showtimeID int) ([]int, error)
}

// LayoutCache lets the loader reuse a theater's record and seat list, which
// are immutable for a showtime's run. Reserved seat ids never go through
// it. A nil cache disables reuse.
type LayoutCache interface {
	Load(theaterID int) (model.Theater, []model.Seat, bool)
	Save(theater model.Theater, seats []model.Seat)
}

// Inventory is everything the seat map needs for one showtime, loaded once
// on view entry. Theater and Seats are immutable for the showtime's run;
// Reserved is a point-in-time snapshot, never mutated locally.
type Inventory struct {
	Showtime model.Showtime
	Theater  model.Theater
	Seats    []model.Seat
	Reserved map[int]bool

	// ReservedDegraded is set when the reserved-seats fetch failed and the
	// load proceeded with an empty set. The server still rejects conflicting
	// bookings, so the only cost is an optimistic seat map.
	ReservedDegraded bool
}

// LoadInventory fetches the showtime, its theater, the theater's seat list,
// and the showtime's reserved seat ids. The showtime fetch comes first (the
// theater reference lives in it); the remaining three reads are independent
// and run concurrently. A showtime, theater, or seat-list failure aborts
// the load; a reserved-seats failure degrades to an empty reserved set.
func LoadInventory(ctx context.Context, api InventoryAPI, session *auth.Session, showtimeID int, cache LayoutCache, logger *log.Logger) (Inventory, error) {
	showtime, err := api.GetShowtime(ctx, showtimeID)
	if err != nil {
		return Inventory{}, fmt.Errorf("load showtime %d: %w", showtimeID, err)
	}

	inv := Inventory{Showtime: showtime, Reserved: map[int]bool{}}

	layoutCached := false
	if cache != nil {
		if theater, seats, ok := cache.Load(showtime.Theater.Id); ok && len(seats) > 0 {
			inv.Theater = theater
			inv.Seats = seats
			layoutCached = true
		}
	}

	var (
		wg          sync.WaitGroup
		theaterErr  error
		seatsErr    error
		reservedErr error
		reservedIDs []int
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		reservedIDs, reservedErr = api.ReservedSeatIds(ctx, session, showtimeID)
	}()
	if !layoutCached {
		wg.Add(2)
		go func() {
			defer wg.Done()
			inv.Theater, theaterErr = api.GetTheater(ctx, showtime.Theater.Id)
		}()
		go func() {
			defer wg.Done()
			inv.Seats, seatsErr = api.ListSeats(ctx, showtime.Theater.Id)
		}()
	}
	wg.Wait()

	if theaterErr != nil {
		return Inventory{}, fmt.Errorf("load theater %d: %w", showtime.Theater.Id, theaterErr)
	}
	if seatsErr != nil {
		return Inventory{}, fmt.Errorf("load seats for theater %d: %w", showtime.Theater.Id, seatsErr)
	}
	if !layoutCached && cache != nil && len(inv.Seats) > 0 {
		cache.Save(inv.Theater, inv.Seats)
	}
	if reservedErr != nil {
		inv.ReservedDegraded = true
		if logger != nil {
			logger.Printf("reserved seats for showtime %d unavailable, showing all seats as open: %v", showtimeID, reservedErr)
		}
	} else {
		for _, id := range reservedIDs {
			inv.Reserved[id] = true
		}
	}
	return inv, nil
}

// SeatAt returns the seat at the 1-based row/seat position, if the theater
// has one there. Layouts can be sparse.
func (inv Inventory) SeatAt(rowNumber int, seatNumber int) (model.Seat, bool) {
	for _, seat := range inv.Seats {
		if seat.RowNumber == rowNumber && seat.SeatNumber == seatNumber {
			return seat, true
		}
	}
	return model.Seat{}, false
}

// Grid arranges the seat list into a rows × seats-per-row matrix keyed by
// the theater dimensions. Missing positions stay nil.
func (inv Inventory) Grid() [][]*model.Seat {
	grid := make([][]*model.Seat, inv.Theater.Rows)
	for r := range grid {
		grid[r] = make([]*model.Seat, inv.Theater.SeatsPerRow)
	}
	for i := range inv.Seats {
		seat := &inv.Seats[i]
		r := seat.RowNumber - 1
		c := seat.SeatNumber - 1
		if r < 0 || c < 0 || r >= inv.Theater.Rows || c >= inv.Theater.SeatsPerRow {
			continue
		}
		grid[r][c] = seat
	}
	return grid
}
