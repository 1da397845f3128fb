package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/realtime"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type fakeReservationRepo struct {
	repository.ReservationRepository

	released []repository.ReleasedSeat
	err      error
	calls    int
}

func (f *fakeReservationRepo) ReclaimExpired(ctx context.Context, now time.Time) ([]repository.ReleasedSeat, error) {
	f.calls++
	return f.released, f.err
}

func TestSweepBroadcastsFreedSeats(t *testing.T) {
	showtimeID := uuid.New()
	seatID := uuid.New()

	repo := &fakeReservationRepo{
		released: []repository.ReleasedSeat{{ShowtimeID: showtimeID, SeatID: seatID}},
	}
	hub := realtime.NewHub(zap.NewNop())
	sub := hub.Subscribe(showtimeID)

	sweeper := NewSweeper(repo, hub, time.Minute, zap.NewNop())
	sweeper.Sweep(context.Background())

	select {
	case update := <-sub.Updates():
		if update.SeatUID != seatID.String() {
			t.Fatalf("expected seat %s, got %s", seatID, update.SeatUID)
		}
		if update.Status != string(entity.SeatStatusFree) {
			t.Fatalf("expected free, got %s", update.Status)
		}
	default:
		t.Fatal("expected a seat update after sweep")
	}
}

func TestSweepErrorIsSwallowed(t *testing.T) {
	repo := &fakeReservationRepo{err: errors.New("connection reset")}
	hub := realtime.NewHub(zap.NewNop())

	sweeper := NewSweeper(repo, hub, time.Minute, zap.NewNop())

	// Must not panic; the next tick retries.
	sweeper.Sweep(context.Background())

	if repo.calls != 1 {
		t.Fatalf("expected 1 reclaim call, got %d", repo.calls)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	repo := &fakeReservationRepo{}
	hub := realtime.NewHub(zap.NewNop())

	sweeper := NewSweeper(repo, hub, time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}

	if repo.calls == 0 {
		t.Fatal("expected at least one sweep before cancel")
	}
}
