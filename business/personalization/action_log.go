package personalization

import (
	"sort"
	"time"

	"myStorefront/domain"
)

// ActionLog is an append-only, time-ordered record of a session's events.
// It is not safe for concurrent use; Session serializes access.
type ActionLog struct {
	events    []domain.ActionEvent
	retention RetentionPolicy
}

func NewActionLog(retention RetentionPolicy) *ActionLog {
	return &ActionLog{retention: retention}
}

// Append adds ev and applies the retention policy relative to ev.Timestamp.
// It returns the number of evicted events.
func (l *ActionLog) Append(ev domain.ActionEvent) int {
	l.events = append(l.events, ev)
	return l.evict(ev.Timestamp)
}

// evict drops events older than MaxAge, then the oldest beyond MaxEvents.
func (l *ActionLog) evict(now time.Time) int {
	drop := 0

	if l.retention.MaxAge > 0 {
		cutoff := now.Add(-l.retention.MaxAge)
		drop = sort.Search(len(l.events), func(i int) bool {
			return !l.events[i].Timestamp.Before(cutoff)
		})
	}

	if l.retention.MaxEvents > 0 && len(l.events)-drop > l.retention.MaxEvents {
		drop = len(l.events) - l.retention.MaxEvents
	}

	if drop == 0 {
		return 0
	}

	kept := make([]domain.ActionEvent, len(l.events)-drop)
	copy(kept, l.events[drop:])
	l.events = kept
	return drop
}

// RecentTypes returns the types of the last n events, oldest first.
func (l *ActionLog) RecentTypes(n int) []domain.ActionType {
	if n <= 0 || len(l.events) == 0 {
		return []domain.ActionType{}
	}
	start := max(len(l.events)-n, 0)
	out := make([]domain.ActionType, 0, len(l.events)-start)
	for _, ev := range l.events[start:] {
		out = append(out, ev.Type)
	}
	return out
}

// Events returns a copy of the log.
func (l *ActionLog) Events() []domain.ActionEvent {
	out := make([]domain.ActionEvent, len(l.events))
	copy(out, l.events)
	for i := range out {
		out[i].Context.PreviousActionTypes = append([]domain.ActionType(nil), out[i].Context.PreviousActionTypes...)
	}
	return out
}

func (l *ActionLog) Len() int {
	return len(l.events)
}

func (l *ActionLog) Reset() {
	l.events = nil
}

// restore replaces the log with events sorted by timestamp.
func (l *ActionLog) restore(events []domain.ActionEvent, now time.Time) {
	l.events = append([]domain.ActionEvent(nil), events...)
	sort.SliceStable(l.events, func(i, j int) bool {
		return l.events[i].Timestamp.Before(l.events[j].Timestamp)
	})
	l.evict(now)
}
