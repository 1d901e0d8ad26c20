package personalization

import (
	"sort"
	"time"
)

// capSessions drops the least recently used sessions once more than
// MaxLiveSessions are held. Their snapshots stay in the store, so a dropped
// user is restored on the next request. keep is never dropped. Caller holds
// s.mu.
func (s *Service) capSessions(keep uint) {
	toDrop := len(s.sessions) - s.cfg.MaxLiveSessions
	if toDrop <= 0 {
		return
	}

	type sessionInfo struct {
		userID   uint
		lastSeen time.Time
	}

	infos := make([]sessionInfo, 0, len(s.sessions))
	for userID := range s.sessions {
		if userID == keep {
			continue
		}
		infos = append(infos, sessionInfo{userID: userID, lastSeen: s.lastSeen[userID]})
	}

	// oldest first, lower user id first on ties
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].lastSeen.Equal(infos[j].lastSeen) {
			return infos[i].userID < infos[j].userID
		}
		return infos[i].lastSeen.Before(infos[j].lastSeen)
	})

	for i := 0; i < toDrop && i < len(infos); i++ {
		delete(s.sessions, infos[i].userID)
		delete(s.lastSeen, infos[i].userID)
	}
	SessionsDroppedTotal.Add(float64(min(toDrop, len(infos))))
}
