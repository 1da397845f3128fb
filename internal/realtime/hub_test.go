package realtime

import (
	"testing"

	"cinema-reservation/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func TestBroadcastReachesOnlySubscribersOfShowtime(t *testing.T) {
	hub := NewHub(zap.NewNop())

	showtimeA := uuid.New()
	showtimeB := uuid.New()

	subA := hub.Subscribe(showtimeA)
	subB := hub.Subscribe(showtimeB)

	seatID := uuid.New()
	hub.BroadcastSeatUpdate(showtimeA, seatID, entity.SeatStatusReserved)

	select {
	case update := <-subA.Updates():
		if update.Type != "seat_update" {
			t.Fatalf("unexpected message type %q", update.Type)
		}
		if update.SeatUID != seatID.String() {
			t.Fatalf("expected seat %s, got %s", seatID, update.SeatUID)
		}
		if update.Status != "reserved" {
			t.Fatalf("expected status reserved, got %s", update.Status)
		}
	default:
		t.Fatal("subscriber of showtime A received nothing")
	}

	select {
	case update := <-subB.Updates():
		t.Fatalf("subscriber of showtime B received %+v", update)
	default:
	}
}

func TestUnsubscribeClosesChannelAndStopsDelivery(t *testing.T) {
	hub := NewHub(zap.NewNop())

	showtimeID := uuid.New()
	sub := hub.Subscribe(showtimeID)

	if got := hub.SubscriberCount(showtimeID); got != 1 {
		t.Fatalf("expected 1 subscriber, got %d", got)
	}

	hub.Unsubscribe(showtimeID, sub)

	if got := hub.SubscriberCount(showtimeID); got != 0 {
		t.Fatalf("expected 0 subscribers, got %d", got)
	}

	if _, ok := <-sub.Updates(); ok {
		t.Fatal("expected channel to be closed")
	}

	// Broadcasting to an empty showtime must not panic.
	hub.BroadcastSeatUpdate(showtimeID, uuid.New(), entity.SeatStatusFree)
}

func TestSlowSubscriberDoesNotBlockBroadcast(t *testing.T) {
	hub := NewHub(zap.NewNop())

	showtimeID := uuid.New()
	sub := hub.Subscribe(showtimeID)

	// Fill the buffer past capacity; the extra messages are dropped, not
	// blocking the caller.
	for i := 0; i < 100; i++ {
		hub.BroadcastSeatUpdate(showtimeID, uuid.New(), entity.SeatStatusSold)
	}

	received := 0
	for {
		select {
		case <-sub.Updates():
			received++
			continue
		default:
		}
		break
	}

	if received == 0 || received > 64 {
		t.Fatalf("expected between 1 and 64 buffered updates, got %d", received)
	}
}
