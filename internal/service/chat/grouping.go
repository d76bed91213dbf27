package chat

import (
	"sort"
	"time"

	chatModels "solace/internal/domain/models/chat"
)

// dayBounds are the calendar boundaries of the session buckets:
// today = [Today, Tomorrow), yesterday = [Yesterday, Today),
// last_week = [LastWeekStart, Yesterday).
type dayBounds struct {
	LastWeekStart time.Time
	Yesterday     time.Time
	Today         time.Time
	Tomorrow      time.Time
}

// dayBoundsAt computes bucket boundaries from local midnight in loc.
// AddDate keeps boundaries on midnight across DST changes.
func dayBoundsAt(now time.Time, loc *time.Location) dayBounds {
	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	yesterday := today.AddDate(0, 0, -1)
	return dayBounds{
		LastWeekStart: yesterday.AddDate(0, 0, -6),
		Yesterday:     yesterday,
		Today:         today,
		Tomorrow:      today.AddDate(0, 0, 1),
	}
}

// groupSessions partitions sessions into the three buckets, each newest first.
// Sessions outside [LastWeekStart, Tomorrow) are dropped; empty buckets stay nil.
func groupSessions(sessions []chatModels.Session, b dayBounds) *chatModels.GroupedSessions {
	grouped := &chatModels.GroupedSessions{}

	for _, session := range sessions {
		start := session.SessionStart
		switch {
		case start.Before(b.LastWeekStart) || !start.Before(b.Tomorrow):
			continue
		case !start.Before(b.Today):
			grouped.Today = append(grouped.Today, session)
		case !start.Before(b.Yesterday):
			grouped.Yesterday = append(grouped.Yesterday, session)
		default:
			grouped.LastWeek = append(grouped.LastWeek, session)
		}
	}

	for _, bucket := range [][]chatModels.Session{grouped.Today, grouped.Yesterday, grouped.LastWeek} {
		sortNewestFirst(bucket)
	}

	return grouped
}

func sortNewestFirst(sessions []chatModels.Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].SessionStart.After(sessions[j].SessionStart)
	})
}
