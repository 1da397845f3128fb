package response

type Movie struct {
	UID             string  `json:"uid"`
	Title           string  `json:"title"`
	DurationMinutes int     `json:"duration_minutes"`
	Description     *string `json:"description"`
	PosterURL       *string `json:"poster_url"`
	ReleaseYear     *int    `json:"release_year"`
	Active          bool    `json:"active"`
}

type MovieList struct {
	Movies     []Movie    `json:"movies"`
	Pagination Pagination `json:"pagination"`
}
