package health

// Evaluate advances the streak for today. It runs at most once per day:
// a second call for the same date (or an earlier one) is a no-op and returns
// changed=false. An on-track day extends the streak, any other day resets it.
//
// Days on which Evaluate is never called do not break the streak.
func (s StreakData) Evaluate(onTrack bool, today string) (next StreakData, changed bool) {
	if s.LastLogDate != "" && today <= s.LastLogDate {
		return s, false
	}
	next = s
	if onTrack {
		next.Current++
		if next.Current > next.Longest {
			next.Longest = next.Current
		}
	} else {
		next.Current = 0
	}
	next.LastLogDate = today
	return next, true
}
