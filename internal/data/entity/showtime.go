package entity

import (
	"time"

	"github.com/google/uuid"
)

// Showtime scopes reservation state: the same physical seat has independent
// state per showtime.
type Showtime struct {
	Base
	MovieID    uuid.UUID `db:"movie_id"`
	HallID     uuid.UUID `db:"hall_id"`
	StartsAt   time.Time `db:"starts_at"`
	EndsAt     time.Time `db:"ends_at"`
	AdultPrice int64     `db:"adult_price"` // minor units
	ChildPrice int64     `db:"child_price"` // minor units
}
