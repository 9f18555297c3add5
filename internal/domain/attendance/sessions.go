package attendance

import (
	"fmt"
	"sort"
	"time"
)

// BuildSessions pairs chronological clock events into sessions. A session
// spanning midnight is split at each day boundary so every day's worked
// hours can be computed independently.
//
// Irregularities degrade to anomalies instead of failing the derivation:
//   - a clock-out with no preceding clock-in is an orphan,
//   - a clock-in while another is unmatched abandons the earlier one,
//   - a trailing unmatched clock-in becomes an open session.
func BuildSessions(events []Event) ([]Session, []Anomaly) {
	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	var (
		sessions  []Session
		anomalies []Anomaly
		open      *Event
	)

	for i := range sorted {
		ev := sorted[i]
		switch ev.Kind {
		case EventClockIn:
			if open != nil {
				// The write path rejects a clock-in over an open session,
				// so this only happens on historical/imported data.
				anomalies = append(anomalies, Anomaly{
					Code:    AnomalyOpenSession,
					At:      open.Timestamp,
					Message: fmt.Sprintf("clock-in at %s superseded an unmatched clock-in", ev.Timestamp.UTC().Format(time.RFC3339)),
				})
			}
			open = &sorted[i]
		case EventClockOut:
			if open == nil {
				anomalies = append(anomalies, Anomaly{
					Code:    AnomalyOrphanClockOut,
					At:      ev.Timestamp,
					Message: "clock-out without a matching clock-in",
				})
				continue
			}
			if !ev.Timestamp.After(open.Timestamp) {
				anomalies = append(anomalies, Anomaly{
					Code:    AnomalyInvalidSession,
					At:      ev.Timestamp,
					Message: "clock-out not after clock-in",
				})
				open = nil
				continue
			}
			sessions = append(sessions, splitAtMidnight(Session{
				EmployeeID: ev.EmployeeID,
				Start:      open.Timestamp.UTC(),
				End:        ev.Timestamp.UTC(),
			})...)
			open = nil
		}
	}

	if open != nil {
		anomalies = append(anomalies, Anomaly{
			Code:    AnomalyOpenSession,
			At:      open.Timestamp,
			Message: "unmatched clock-in, session still open",
		})
		sessions = append(sessions, Session{
			EmployeeID: open.EmployeeID,
			Start:      open.Timestamp.UTC(),
			End:        open.Timestamp.UTC(),
			Open:       true,
		})
	}

	return sessions, anomalies
}

// splitAtMidnight cuts a closed session at every UTC day boundary it crosses.
func splitAtMidnight(s Session) []Session {
	var parts []Session
	start := s.Start
	for {
		nextMidnight := DayOf(start).AddDate(0, 0, 1)
		if !s.End.After(nextMidnight) {
			break
		}
		parts = append(parts, Session{EmployeeID: s.EmployeeID, Start: start, End: nextMidnight})
		start = nextMidnight
	}
	if s.End.After(start) {
		parts = append(parts, Session{EmployeeID: s.EmployeeID, Start: start, End: s.End})
	}
	return parts
}

// ClipSessions keeps the sessions whose day falls inside [from, to).
func ClipSessions(sessions []Session, from, to time.Time) []Session {
	var out []Session
	for _, s := range sessions {
		day := s.Day()
		if day.Before(from) || !day.Before(to) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// WorkedByDay sums closed session durations per UTC day.
func WorkedByDay(sessions []Session) map[time.Time]time.Duration {
	worked := make(map[time.Time]time.Duration)
	for _, s := range sessions {
		if s.Open {
			continue
		}
		worked[s.Day()] += s.Duration()
	}
	return worked
}
