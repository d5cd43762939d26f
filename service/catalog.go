package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"cinebook-cli/model"
)

// ListMovies returns the catalog of movies currently in the system.
func (c *Client) ListMovies(ctx context.Context) ([]model.Movie, error) {
	endpoint := fmt.Sprintf("%s/movies/", c.baseURL)

	var movies []model.Movie
	if err := c.getJSON(ctx, nil, endpoint, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// GetMovie fetches a single movie by id.
func (c *Client) GetMovie(ctx context.Context, movieID int) (model.Movie, error) {
	if movieID <= 0 {
		return model.Movie{}, errors.New("movie id is required")
	}
	endpoint := fmt.Sprintf("%s/movies/%d/", c.baseURL, movieID)

	var movie model.Movie
	if err := c.getJSON(ctx, nil, endpoint, &movie); err != nil {
		return model.Movie{}, err
	}
	return movie, nil
}

// ListShowtimesByMovie fetches the scheduled showtimes for a movie.
func (c *Client) ListShowtimesByMovie(ctx context.Context, movieID int) ([]model.Showtime, error) {
	if movieID <= 0 {
		return nil, errors.New("movie id is required")
	}
	endpoint := fmt.Sprintf("%s/showtimes/?%s", c.baseURL, url.Values{"movie_id": {fmt.Sprint(movieID)}}.Encode())

	var showtimes []model.Showtime
	if err := c.getJSON(ctx, nil, endpoint, &showtimes); err != nil {
		return nil, err
	}
	return showtimes, nil
}

// GetShowtime fetches a showtime record, including its movie and theater.
func (c *Client) GetShowtime(ctx context.Context, showtimeID int) (model.Showtime, error) {
	if showtimeID <= 0 {
		return model.Showtime{}, errors.New("showtime id is required")
	}
	endpoint := fmt.Sprintf("%s/showtimes/%d/", c.baseURL, showtimeID)

	var showtime model.Showtime
	if err := c.getJSON(ctx, nil, endpoint, &showtime); err != nil {
		return model.Showtime{}, err
	}
	return showtime, nil
}

// GetTheater fetches the theater record with its row/seats-per-row layout.
func (c *Client) GetTheater(ctx context.Context, theaterID int) (model.Theater, error) {
	if theaterID <= 0 {
		return model.Theater{}, errors.New("theater id is required")
	}
	endpoint := fmt.Sprintf("%s/theaters/%d/", c.baseURL, theaterID)

	var theater model.Theater
	if err := c.getJSON(ctx, nil, endpoint, &theater); err != nil {
		return model.Theater{}, err
	}
	return theater, nil
}

// ListSeats fetches the complete seat list for a theater.
func (c *Client) ListSeats(ctx context.Context, theaterID int) ([]model.Seat, error) {
	if theaterID <= 0 {
		return nil, errors.New("theater id is required")
	}
	endpoint := fmt.Sprintf("%s/seats/?%s", c.baseURL, url.Values{"theater": {fmt.Sprint(theaterID)}}.Encode())

	var seats []model.Seat
	if err := c.getJSON(ctx, nil, endpoint, &seats); err != nil {
		return nil, err
	}
	return seats, nil
}
