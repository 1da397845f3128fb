package request

type CreateMovie struct {
	Title           string  `json:"title" validate:"required,min=1,max=200"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,gt=0,max=600"`
	Description     *string `json:"description" validate:"omitempty,max=2000"`
	PosterURL       *string `json:"poster_url" validate:"omitempty,url"`
	ReleaseYear     *int    `json:"release_year" validate:"omitempty,gte=1900,lte=2100"`
}

type UpdateMovie struct {
	Title           string  `json:"title" validate:"required,min=1,max=200"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,gt=0,max=600"`
	Description     *string `json:"description" validate:"omitempty,max=2000"`
	PosterURL       *string `json:"poster_url" validate:"omitempty,url"`
	ReleaseYear     *int    `json:"release_year" validate:"omitempty,gte=1900,lte=2100"`
	Active          *bool   `json:"active"`
}

type SearchMovie struct {
	Title  string `json:"title"`
	Active *bool  `json:"active"`
	Page   int    `json:"page" validate:"omitempty,gt=0"`
	Limit  int    `json:"limit" validate:"omitempty,gt=0,max=100"`
}
