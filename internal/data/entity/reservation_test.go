package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func activeSeat() *Seat {
	s := &Seat{HallID: uuid.New(), Row: 3, Number: 5, Active: true}
	s.ID = uuid.New()
	return s
}

func TestComputeSeatStatusFreeWithoutReservation(t *testing.T) {
	if got := ComputeSeatStatus(activeSeat(), nil, time.Now()); got != SeatStatusFree {
		t.Fatalf("expected free, got %s", got)
	}
}

func TestComputeSeatStatusBlockedWinsOverEverything(t *testing.T) {
	seat := activeSeat()
	seat.Active = false

	now := time.Now()
	paid := &Reservation{Status: ReservationStatusPaid}

	if got := ComputeSeatStatus(seat, paid, now); got != SeatStatusBlocked {
		t.Fatalf("blocked seat with paid reservation: expected blocked, got %s", got)
	}
	if got := ComputeSeatStatus(seat, nil, now); got != SeatStatusBlocked {
		t.Fatalf("blocked seat without reservation: expected blocked, got %s", got)
	}
}

func TestComputeSeatStatusSold(t *testing.T) {
	res := &Reservation{Status: ReservationStatusPaid}

	if got := ComputeSeatStatus(activeSeat(), res, time.Now()); got != SeatStatusSold {
		t.Fatalf("expected sold, got %s", got)
	}
}

func TestComputeSeatStatusReservedUnexpired(t *testing.T) {
	expires := time.Now().Add(10 * time.Minute)
	res := &Reservation{Status: ReservationStatusReserved, ExpiresAt: &expires}

	if got := ComputeSeatStatus(activeSeat(), res, time.Now()); got != SeatStatusReserved {
		t.Fatalf("expected reserved, got %s", got)
	}
}

func TestComputeSeatStatusExpiredHoldReadsAsFree(t *testing.T) {
	// The sweep has not run yet, but the deadline passed: viewers must see
	// the seat as free.
	now := time.Now()
	expires := now.Add(-time.Second)
	res := &Reservation{Status: ReservationStatusReserved, ExpiresAt: &expires}

	if got := ComputeSeatStatus(activeSeat(), res, now); got != SeatStatusFree {
		t.Fatalf("expected free, got %s", got)
	}
}

func TestComputeSeatStatusHoldExpiringExactlyNowIsFree(t *testing.T) {
	now := time.Now()
	res := &Reservation{Status: ReservationStatusReserved, ExpiresAt: &now}

	if got := ComputeSeatStatus(activeSeat(), res, now); got != SeatStatusFree {
		t.Fatalf("deadline == now should read as free, got %s", got)
	}
}
