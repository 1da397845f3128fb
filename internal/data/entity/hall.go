package entity

import "github.com/google/uuid"

type Hall struct {
	Base
	CinemaID uuid.UUID `db:"cinema_id"`
	Name     string    `db:"name"`
	Rows     int       `db:"rows"`
	Cols     int       `db:"cols"`
	Active   bool      `db:"active"`
}
