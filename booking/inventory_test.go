package booking

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinebook-cli/auth"
	"cinebook-cli/model"
)

type fakeInventoryAPI struct {
	showtime    model.Showtime
	showtimeErr error
	theater     model.Theater
	theaterErr  error
	seats       []model.Seat
	seatsErr    error
	reserved    []int
	reservedErr error

	theaterCalls int
	seatsCalls   int
}

func (f *fakeInventoryAPI) GetShowtime(ctx context.Context, showtimeID int) (model.Showtime, error) {
	return f.showtime, f.showtimeErr
}

func (f *fakeInventoryAPI) GetTheater(ctx context.Context, theaterID int) (model.Theater, error) {
	f.theaterCalls++
	return f.theater, f.theaterErr
}

func (f *fakeInventoryAPI) ListSeats(ctx context.Context, theaterID int) ([]model.Seat, error) {
	f.seatsCalls++
	return f.seats, f.seatsErr
}

func (f *fakeInventoryAPI) ReservedSeatIds(ctx context.Context, session *auth.Session, showtimeID int) ([]int, error) {
	return f.reserved, f.reservedErr
}

type fakeLayoutCache struct {
	theater model.Theater
	seats   []model.Seat
	hit     bool
	saved   bool
}

func (f *fakeLayoutCache) Load(theaterID int) (model.Theater, []model.Seat, bool) {
	return f.theater, f.seats, f.hit
}

func (f *fakeLayoutCache) Save(theater model.Theater, seats []model.Seat) {
	f.saved = true
	f.theater = theater
	f.seats = seats
}

func smallTheaterAPI() *fakeInventoryAPI {
	theater := model.Theater{Id: 2, Name: "Downtown", Rows: 5, SeatsPerRow: 10}
	seats := make([]model.Seat, 0, 50)
	id := 1
	for row := 1; row <= 5; row++ {
		for num := 1; num <= 10; num++ {
			seats = append(seats, model.Seat{Id: id, Theater: 2, RowNumber: row, SeatNumber: num})
			id++
		}
	}
	return &fakeInventoryAPI{
		showtime: model.Showtime{Id: 42, Theater: theater, Price: 12.50},
		theater:  theater,
		seats:    seats,
		reserved: []int{7},
	}
}

func TestLoadInventory(t *testing.T) {
	api := smallTheaterAPI()

	inv, err := LoadInventory(context.Background(), api, nil, 42, nil, nil)

	require.NoError(t, err)
	assert.Len(t, inv.Seats, 50)
	assert.True(t, inv.Reserved[7])
	assert.False(t, inv.Reserved[8])
	assert.False(t, inv.ReservedDegraded)

	seat, ok := inv.SeatAt(1, 7)
	require.True(t, ok)
	assert.Equal(t, 7, seat.Id)
	assert.Equal(t, StatusReserved, ClassifySeat(seat, inv.Reserved, nil))
}

func TestLoadInventoryShowtimeFailureAborts(t *testing.T) {
	api := smallTheaterAPI()
	api.showtimeErr = errors.New("boom")

	_, err := LoadInventory(context.Background(), api, nil, 42, nil, nil)
	assert.Error(t, err)
}

func TestLoadInventoryTheaterFailureAborts(t *testing.T) {
	api := smallTheaterAPI()
	api.theaterErr = errors.New("boom")

	_, err := LoadInventory(context.Background(), api, nil, 42, nil, nil)
	assert.Error(t, err)
}

func TestLoadInventorySeatsFailureAborts(t *testing.T) {
	api := smallTheaterAPI()
	api.seatsErr = errors.New("boom")

	_, err := LoadInventory(context.Background(), api, nil, 42, nil, nil)
	assert.Error(t, err)
}

func TestLoadInventoryDegradesWhenReservedFetchFails(t *testing.T) {
	api := smallTheaterAPI()
	api.reservedErr = errors.New("timeout")
	logger := log.New(io.Discard, "", 0)

	inv, err := LoadInventory(context.Background(), api, nil, 42, nil, logger)

	require.NoError(t, err)
	assert.True(t, inv.ReservedDegraded)
	assert.Empty(t, inv.Reserved)
	// Every seat renders as open; the server still arbitrates on submit.
	seat, _ := inv.SeatAt(1, 7)
	assert.Equal(t, StatusAvailable, ClassifySeat(seat, inv.Reserved, nil))
}

func TestLoadInventoryUsesCachedLayout(t *testing.T) {
	api := smallTheaterAPI()
	cache := &fakeLayoutCache{theater: api.theater, seats: api.seats, hit: true}

	inv, err := LoadInventory(context.Background(), api, nil, 42, cache, nil)

	require.NoError(t, err)
	assert.Zero(t, api.theaterCalls)
	assert.Zero(t, api.seatsCalls)
	assert.Len(t, inv.Seats, 50)
	// Reserved ids are always fetched fresh, never served from the cache.
	assert.True(t, inv.Reserved[7])
}

func TestLoadInventorySavesLayoutOnMiss(t *testing.T) {
	api := smallTheaterAPI()
	cache := &fakeLayoutCache{}

	_, err := LoadInventory(context.Background(), api, nil, 42, cache, nil)

	require.NoError(t, err)
	assert.True(t, cache.saved)
	assert.Equal(t, 1, api.theaterCalls)
	assert.Equal(t, 1, api.seatsCalls)
}

func TestGridPlacesSeatsByPosition(t *testing.T) {
	api := smallTheaterAPI()
	inv, err := LoadInventory(context.Background(), api, nil, 42, nil, nil)
	require.NoError(t, err)

	grid := inv.Grid()
	require.Len(t, grid, 5)
	require.Len(t, grid[0], 10)
	require.NotNil(t, grid[0][6])
	assert.Equal(t, 7, grid[0][6].Id)
	assert.Equal(t, "A7", SeatLabel(*grid[0][6]))
}
