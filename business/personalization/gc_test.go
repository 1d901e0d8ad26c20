//go:build !integration

package personalization

import (
	"context"
	"testing"
	"time"

	"myStorefront/domain"
)

func TestService_CapSessionsDropsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: t0}
	store := newFakeStore()

	cfg := DefaultConfig()
	cfg.MaxLiveSessions = 2
	svc := NewService(store, cfg, clock.Now)

	for _, userID := range []uint{1, 2, 3} {
		clock.Advance(time.Minute)
		in := domain.ActionInput{Type: domain.ActionView, Category: "shoes"}
		if _, err := svc.RecordAction(ctx, userID, domain.SessionContext{}, in); err != nil {
			t.Fatal(err)
		}
	}

	svc.mu.Lock()
	_, has1 := svc.sessions[1]
	live := len(svc.sessions)
	svc.mu.Unlock()

	if live != 2 || has1 {
		t.Fatalf("live = %d, user 1 kept = %v; want 2 live without user 1", live, has1)
	}

	// user 1 comes back from the snapshot store
	prefs, err := svc.GetPreferences(ctx, 1, false)
	if err != nil {
		t.Fatal(err)
	}
	if prefs.Categories["shoes"] == 0 {
		t.Fatalf("restored preferences = %v", prefs.Categories)
	}
}
