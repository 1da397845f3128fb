package entity

type Movie struct {
	Base
	Title           string  `db:"title"`
	DurationMinutes int     `db:"duration_minutes"`
	Description     *string `db:"description"`
	PosterURL       *string `db:"poster_url"`
	ReleaseYear     *int    `db:"release_year"`
	Active          bool    `db:"active"`
}
