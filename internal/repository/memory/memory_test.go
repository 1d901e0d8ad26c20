//go:build !integration

package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"myStorefront/domain"
)

func TestSessionRepository_RoundTripIsolated(t *testing.T) {
	repo := NewSessionRepository(0)
	ctx := context.Background()

	if _, err := repo.LoadSnapshot(ctx, 1); !errors.Is(err, domain.ErrSnapshotNotFound) {
		t.Fatalf("empty load err = %v", err)
	}

	prefs := domain.NewPreferenceModel()
	prefs.Categories["shoes"] = 0.3
	snap := domain.SessionSnapshot{
		SessionID:   "s-1",
		UserID:      1,
		Events:      []domain.ActionEvent{{Type: domain.ActionView, ItemID: "7", Timestamp: time.Unix(100, 0)}},
		Preferences: prefs,
	}
	if err := repo.SaveSnapshot(ctx, snap); err != nil {
		t.Fatal(err)
	}

	// caller mutations after save must not leak into the store
	prefs.Categories["shoes"] = 9
	snap.Events[0].ItemID = "changed"

	got, err := repo.LoadSnapshot(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got.Preferences.Categories["shoes"] != 0.3 {
		t.Fatalf("preferences leaked: %v", got.Preferences.Categories)
	}
	if got.Events[0].ItemID != "7" {
		t.Fatalf("events leaked: %+v", got.Events)
	}

	if err := repo.DeleteSnapshot(ctx, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.LoadSnapshot(ctx, 1); !errors.Is(err, domain.ErrSnapshotNotFound) {
		t.Fatalf("after delete err = %v", err)
	}
}

func TestSessionRepository_ExpiresIdleSnapshots(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	repo := NewSessionRepository(time.Hour)
	repo.now = func() time.Time { return now }

	for _, userID := range []uint{1, 2} {
		if err := repo.SaveSnapshot(ctx, domain.SessionSnapshot{SessionID: "s", UserID: userID}); err != nil {
			t.Fatal(err)
		}
	}

	// loading user 2 slides its expiry forward
	now = now.Add(40 * time.Minute)
	if _, err := repo.LoadSnapshot(ctx, 2); err != nil {
		t.Fatal(err)
	}

	now = now.Add(30 * time.Minute)
	if _, err := repo.LoadSnapshot(ctx, 1); !errors.Is(err, domain.ErrSnapshotNotFound) {
		t.Fatalf("idle snapshot err = %v, want ErrSnapshotNotFound", err)
	}
	if _, err := repo.LoadSnapshot(ctx, 2); err != nil {
		t.Fatalf("recently loaded snapshot err = %v", err)
	}

	// a save after the sweep interval drops every expired entry
	now = now.Add(2 * time.Hour)
	if err := repo.SaveSnapshot(ctx, domain.SessionSnapshot{SessionID: "s", UserID: 3}); err != nil {
		t.Fatal(err)
	}
	if n := repo.Len(); n != 1 {
		t.Fatalf("held snapshots = %d, want 1", n)
	}
}

func TestCompareRepository_Order(t *testing.T) {
	repo := NewCompareRepository()
	ctx := context.Background()

	for _, id := range []uint64{3, 1, 2} {
		if err := repo.Add(ctx, 9, id); err != nil {
			t.Fatal(err)
		}
	}
	if err := repo.Remove(ctx, 9, 1); err != nil {
		t.Fatal(err)
	}

	ids, _ := repo.List(ctx, 9)
	if len(ids) != 2 || ids[0] != 3 || ids[1] != 2 {
		t.Fatalf("ids = %v, want [3 2]", ids)
	}

	ids[0] = 100
	again, _ := repo.List(ctx, 9)
	if again[0] != 3 {
		t.Fatal("List returned internal slice")
	}

	_ = repo.Clear(ctx, 9)
	if ids, _ := repo.List(ctx, 9); len(ids) != 0 {
		t.Fatalf("after clear ids = %v", ids)
	}
}
