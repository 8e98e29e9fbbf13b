package domain

import (
	"sort"

	"quill/internal/platform/civil"
)

type Mode string

const (
	ModeDaily  Mode = "daily"
	ModeWeekly Mode = "weekly"
)

type Streak struct {
	Current         int        `json:"current"`
	Longest         int        `json:"longest"`
	LastDate        civil.Date `json:"last_date"`
	GraceUsed       int        `json:"grace_used"`
	LastCountedWeek civil.Date `json:"last_counted_week"`
	Week            [7]bool    `json:"week"`
}

// ApplyDaily credits date in daily mode. A date already counted, or older
// than the last counted date, leaves the streak unchanged. Any gap past the
// next day is bridged while grace remains, however long the gap is.
func (s Streak) ApplyDaily(date civil.Date, graceLimit int) Streak {
	switch {
	case s.LastDate.IsZero():
		s.Current = 1
		s.GraceUsed = 0
	case !date.After(s.LastDate):
		return s
	case date.DaysSince(s.LastDate) == 1:
		s.Current++
	case s.GraceUsed < graceLimit:
		s.GraceUsed++
		s.Current++
	default:
		s.Current = 1
		s.GraceUsed = 0
	}
	s.LastDate = date
	s.Longest = max(s.Longest, s.Current)
	return s
}

// ApplyWeekly recomputes the week vector for today's week and credits the
// week once when the number of distinct writing days reaches target.
func (s Streak) ApplyWeekly(qualifying []civil.Date, today civil.Date, target, graceLimit int) Streak {
	weekStart := civil.WeekStart(today)
	s.Week = WeekVector(qualifying, weekStart)
	days := 0
	for _, wrote := range s.Week {
		if wrote {
			days++
		}
	}
	if days < target || s.LastCountedWeek == weekStart || weekStart.Before(s.LastCountedWeek) {
		return s
	}
	switch {
	case s.LastCountedWeek.IsZero() || weekStart.DaysSince(s.LastCountedWeek) == 7:
		s.Current++
	case s.GraceUsed < graceLimit:
		s.GraceUsed++
		s.Current++
	default:
		s.Current = 1
		s.GraceUsed = 0
	}
	s.LastCountedWeek = weekStart
	if today.After(s.LastDate) {
		s.LastDate = today
	}
	s.Longest = max(s.Longest, s.Current)
	return s
}

// WeekVector marks, Sunday first, the days of the week starting at
// weekStart that appear in dates.
func WeekVector(dates []civil.Date, weekStart civil.Date) [7]bool {
	var out [7]bool
	for _, d := range dates {
		offset := d.DaysSince(weekStart)
		if offset >= 0 && offset < 7 {
			out[offset] = true
		}
	}
	return out
}

// QualifyingDates returns the sorted distinct dates of sessions that count.
func QualifyingDates(sessions []Session) []civil.Date {
	seen := map[civil.Date]struct{}{}
	out := make([]civil.Date, 0, len(sessions))
	for _, s := range sessions {
		if !s.Qualifies() {
			continue
		}
		if _, ok := seen[s.Date]; ok {
			continue
		}
		seen[s.Date] = struct{}{}
		out = append(out, s.Date)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Replay rebuilds a streak from the whole session log. Longest never drops
// below the floor passed in.
func Replay(sessions []Session, settings Settings, today civil.Date, longestFloor int) Streak {
	dates := QualifyingDates(sessions)
	s := Streak{}
	if settings.StreakMode == ModeWeekly {
		var weeks []civil.Date
		byWeek := map[civil.Date][]civil.Date{}
		for _, d := range dates {
			ws := civil.WeekStart(d)
			if _, ok := byWeek[ws]; !ok {
				weeks = append(weeks, ws)
			}
			byWeek[ws] = append(byWeek[ws], d)
		}
		for _, ws := range weeks {
			days := byWeek[ws]
			s = s.ApplyWeekly(days, days[len(days)-1], settings.WeeklyTarget, settings.GraceDays)
		}
	} else {
		for _, d := range dates {
			s = s.ApplyDaily(d, settings.GraceDays)
		}
	}
	s.Week = WeekVector(dates, civil.WeekStart(today))
	s.Longest = max(s.Longest, longestFloor, s.Current)
	return s
}
