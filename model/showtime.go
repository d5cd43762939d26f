package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

type Showtime struct {
	Id                int       `json:"id"`
	Movie             Movie     `json:"movie"`
	Theater           Theater   `json:"theater"`
	ShowTime          time.Time `json:"show_time"`
	Price             Price     `json:"price"`
	TotalTheaterSeats int       `json:"total_theater_seats"`
	ReservedSeatCount int       `json:"reserved_seat_count"`
}

// Price is a decimal amount in currency-agnostic units. The API serializes
// decimals as JSON strings ("12.50"); older deployments send plain numbers.
type Price float64

func (p *Price) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == `""` {
		*p = 0
		return nil
	}
	raw = strings.Trim(raw, `"`)
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return err
	}
	*p = Price(value)
	return nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatFloat(float64(p), 'f', 2, 64))
}

func (p Price) Float() float64 {
	return float64(p)
}
