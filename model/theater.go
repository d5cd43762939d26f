package model

type Theater struct {
	Id          int    `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Rows        int    `json:"rows"`
	SeatsPerRow int    `json:"seats_per_row"`
}

// Seat is a single physical seat in a theater. Row and seat numbers are
// 1-based; the id is the stable reference used in reservation requests.
type Seat struct {
	Id         int `json:"id"`
	Theater    int `json:"theater"`
	RowNumber  int `json:"row_number"`
	SeatNumber int `json:"seat_number"`
}
