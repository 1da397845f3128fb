package entity

import "github.com/google/uuid"

type Cinema struct {
	Base
	CityID  uuid.UUID `db:"city_id"`
	Name    string    `db:"name"`
	Address *string   `db:"address"`
	Phone   *string   `db:"phone"`
	Active  bool      `db:"active"`
}
