package entity

import "github.com/google/uuid"

type Seat struct {
	BaseSimple
	HallID uuid.UUID `db:"hall_id"`
	Row    int       `db:"row_num"`
	Number int       `db:"seat_num"`
	Active bool      `db:"active"`
}
