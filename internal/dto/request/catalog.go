package request

type CreateCity struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

type CreateCinema struct {
	CityUID string  `json:"city_uid" validate:"required,uuid"`
	Name    string  `json:"name" validate:"required,min=2,max=150"`
	Address *string `json:"address" validate:"omitempty,max=300"`
	Phone   *string `json:"phone" validate:"omitempty,max=30"`
}

type UpdateCinema struct {
	Name    string  `json:"name" validate:"required,min=2,max=150"`
	Address *string `json:"address" validate:"omitempty,max=300"`
	Phone   *string `json:"phone" validate:"omitempty,max=30"`
	Active  *bool   `json:"active"`
}

type CreateHall struct {
	CinemaUID string `json:"cinema_uid" validate:"required,uuid"`
	Name      string `json:"name" validate:"required,min=1,max=100"`
	Rows      int    `json:"rows" validate:"required,gt=0,max=100"`
	Cols      int    `json:"cols" validate:"required,gt=0,max=100"`
}

type UpdateHall struct {
	Name   string `json:"name" validate:"required,min=1,max=100"`
	Rows   int    `json:"rows" validate:"required,gt=0,max=100"`
	Cols   int    `json:"cols" validate:"required,gt=0,max=100"`
	Active *bool  `json:"active"`
}

type SetActive struct {
	Active *bool `json:"active" validate:"required"`
}
