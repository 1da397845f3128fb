package entity

import (
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationStatusReserved ReservationStatus = "reserved"
	ReservationStatusPaid     ReservationStatus = "paid"
)

// Reservation is the ledger row for one (showtime, seat) pair. Absence of a
// row means the seat is free. A reserved row whose expires_at has passed is
// logically free even before the sweep deletes it.
type Reservation struct {
	Base
	ShowtimeID  uuid.UUID         `db:"showtime_id"`
	SeatID      uuid.UUID         `db:"seat_id"`
	Status      ReservationStatus `db:"status"`
	Price       int64             `db:"price"` // minor units charged for this seat
	HolderEmail *string           `db:"holder_email"`
	ExpiresAt   *time.Time        `db:"expires_at"` // set while reserved, cleared on payment
	PaidAt      *time.Time        `db:"paid_at"`
	PaymentID   *uuid.UUID        `db:"payment_id"`
}

// SeatStatus is the computed availability shown to viewers.
type SeatStatus string

const (
	SeatStatusBlocked  SeatStatus = "blocked"
	SeatStatusSold     SeatStatus = "sold"
	SeatStatusReserved SeatStatus = "reserved"
	SeatStatusFree     SeatStatus = "free"
)

// ComputeSeatStatus derives the visible status of a seat for one showtime.
// Precedence: blocked > sold > reserved-unexpired > free. res may be nil
// when no ledger row exists.
func ComputeSeatStatus(seat *Seat, res *Reservation, now time.Time) SeatStatus {
	if seat != nil && !seat.Active {
		return SeatStatusBlocked
	}

	if res == nil {
		return SeatStatusFree
	}

	switch res.Status {
	case ReservationStatusPaid:
		return SeatStatusSold
	case ReservationStatusReserved:
		if res.ExpiresAt != nil && res.ExpiresAt.After(now) {
			return SeatStatusReserved
		}
	}

	return SeatStatusFree
}
