package store

import (
	"context"
	"fmt"

	"github.com/AndreKrottje-Dev/Gerda2/internal/health"
)

// DayEvaluation is the outcome of scoring one day for the streak.
type DayEvaluation struct {
	Streak  health.StreakData    `json:"streak"`
	OnTrack bool                 `json:"on_track"`
	Changed bool                 `json:"changed"`
	Balance health.EnergyBalance `json:"balance"`
}

// EvaluateDay scores date against the user's calorie goal and advances the
// streak. date must not be after today; a day at or before the last
// evaluated one leaves the streak unchanged. ErrNotFound means the user has
// no profile yet.
func EvaluateDay(ctx context.Context, st Store, userID int, date, today string, tolerance float64) (DayEvaluation, error) {
	var ev DayEvaluation
	if err := health.ValidateEvaluationDate(date, today); err != nil {
		return ev, err
	}
	p, err := st.ReadProfile(ctx, userID)
	if err != nil {
		return ev, err
	}
	dayLog, err := st.ReadDailyLog(ctx, userID, date)
	if err != nil {
		return ev, fmt.Errorf("read daily log: %w", err)
	}
	ev.Balance, ev.OnTrack = health.DayBalance(dayLog, p, tolerance)

	ev.Streak, err = st.UpdateStreak(ctx, userID, func(cur health.StreakData) (health.StreakData, bool) {
		var next health.StreakData
		next, ev.Changed = cur.Evaluate(ev.OnTrack, date)
		return next, ev.Changed
	})
	if err != nil {
		return DayEvaluation{}, fmt.Errorf("update streak: %w", err)
	}
	return ev, nil
}
