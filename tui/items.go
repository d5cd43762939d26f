package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"cinebook-cli/model"
	"cinebook-cli/store"
)

type movieItem struct {
	movie  model.Movie
	recent bool
}

func (m movieItem) Title() string {
	return m.movie.Title
}

func (m movieItem) Description() string {
	parts := []string{}
	if m.recent {
		parts = append(parts, "Recent")
	}
	if m.movie.Genres != "" {
		parts = append(parts, m.movie.Genres)
	}
	if m.movie.Duration > 0 {
		parts = append(parts, fmt.Sprintf("%d min", m.movie.Duration))
	}
	if m.movie.AverageRating > 0 {
		parts = append(parts, fmt.Sprintf("★ %.1f", m.movie.AverageRating))
	}
	return strings.Join(parts, " • ")
}

func (m movieItem) FilterValue() string {
	return strings.ToLower(strings.Join([]string{m.movie.Title, m.movie.Genres}, " "))
}

func buildMovieItems(movies []model.Movie) []list.Item {
	recents, _ := store.LoadRecentMovies()
	byID := map[int]model.Movie{}
	for _, movie := range movies {
		byID[movie.Id] = movie
	}

	var items []list.Item
	used := map[int]bool{}
	for _, recent := range recents {
		if movie, ok := byID[recent.ID]; ok && !used[movie.Id] {
			items = append(items, movieItem{movie: movie, recent: true})
			used[movie.Id] = true
		}
	}

	remaining := make([]model.Movie, 0, len(movies))
	for _, movie := range movies {
		if !used[movie.Id] {
			remaining = append(remaining, movie)
		}
	}
	sort.Slice(remaining, func(i, j int) bool {
		return strings.ToLower(remaining[i].Title) < strings.ToLower(remaining[j].Title)
	})

	for _, movie := range remaining {
		items = append(items, movieItem{movie: movie})
	}
	return items
}

type showtimeItem struct {
	showtime model.Showtime
}

func (s showtimeItem) Title() string {
	return s.showtime.ShowTime.Format("Mon Jan 2 • 15:04")
}

func (s showtimeItem) Description() string {
	parts := []string{}
	if s.showtime.Theater.Name != "" {
		parts = append(parts, s.showtime.Theater.Name)
	}
	parts = append(parts, fmt.Sprintf("%.2f per seat", s.showtime.Price.Float()))
	if s.showtime.TotalTheaterSeats > 0 {
		open := s.showtime.TotalTheaterSeats - s.showtime.ReservedSeatCount
		if open < 0 {
			open = 0
		}
		parts = append(parts, fmt.Sprintf("%d of %d seats open", open, s.showtime.TotalTheaterSeats))
	}
	return strings.Join(parts, " • ")
}

func (s showtimeItem) FilterValue() string {
	return strings.ToLower(s.showtime.Theater.Name + " " + s.showtime.ShowTime.Format("Mon Jan 2 15:04"))
}

func buildShowtimeItems(showtimes []model.Showtime) []list.Item {
	sorted := append([]model.Showtime{}, showtimes...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ShowTime.Before(sorted[j].ShowTime)
	})

	items := make([]list.Item, 0, len(sorted))
	for _, showtime := range sorted {
		items = append(items, showtimeItem{showtime: showtime})
	}
	return items
}

type reservationItem struct {
	reservation model.Reservation
}

func (r reservationItem) Title() string {
	title := r.reservation.Showtime.Movie.Title
	if r.reservation.BookingReference != "" {
		title = fmt.Sprintf("%s • %s", r.reservation.BookingReference, title)
	}
	if r.reservation.IsCancelled {
		title += " (cancelled)"
	}
	return title
}

func (r reservationItem) Description() string {
	parts := []string{
		r.reservation.Showtime.ShowTime.Format("Mon Jan 2 15:04"),
	}
	if len(r.reservation.SeatNumbers) > 0 {
		parts = append(parts, "seats "+strings.Join(r.reservation.SeatNumbers, ", "))
	}
	if r.reservation.TotalPrice > 0 {
		parts = append(parts, fmt.Sprintf("%.2f", r.reservation.TotalPrice.Float()))
	}
	return strings.Join(parts, " • ")
}

func (r reservationItem) FilterValue() string {
	return strings.ToLower(strings.Join(append([]string{
		r.reservation.BookingReference,
		r.reservation.Showtime.Movie.Title,
	}, r.reservation.SeatNumbers...), " "))
}

func buildReservationItems(reservations []model.Reservation) []list.Item {
	sorted := append([]model.Reservation{}, reservations...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	items := make([]list.Item, 0, len(sorted))
	for _, reservation := range sorted {
		items = append(items, reservationItem{reservation: reservation})
	}
	return items
}
