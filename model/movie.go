package model

type Movie struct {
	Id            int     `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Duration      int     `json:"duration"`
	PosterPath    string  `json:"poster_path"`
	ReleaseDate   string  `json:"release_date"`
	Genres        string  `json:"genres"`
	AverageRating float64 `json:"average_rating"`
}
