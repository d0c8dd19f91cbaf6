// Package store persists profiles, daily logs and streaks. The health core
// only sees the Store interface; Postgres backs the API and SQLite backs the
// local CLI and the tests.
package store

import (
	"context"
	"errors"
	"sort"

	"github.com/AndreKrottje-Dev/Gerda2/internal/health"
)

// ErrNotFound is returned when a profile, user or entry does not exist.
var ErrNotFound = errors.New("not found")

// User is an account that owns a profile, logs and a streak.
type User struct {
	ID           int    `db:"id"`
	Username     string `db:"username"`
	Email        string `db:"email"`
	PasswordHash string `db:"password"`
	AuthToken    string `db:"auth_token"`
}

// StreakUpdate computes the next streak from the stored one. Returning
// changed=false skips the write.
type StreakUpdate func(cur health.StreakData) (next health.StreakData, changed bool)

// Store is the persistence contract for the health core. Date keys are
// local YYYY-MM-DD strings.
type Store interface {
	ReadProfile(ctx context.Context, userID int) (health.UserProfile, error)
	WriteProfile(ctx context.Context, userID int, p health.UserProfile) error

	// ReadDailyLog returns an empty log for a day with nothing recorded.
	ReadDailyLog(ctx context.Context, userID int, date string) (health.DailyLog, error)
	// ReadDailyLogs returns only days with something recorded, oldest first.
	ReadDailyLogs(ctx context.Context, userID int, from, to string) ([]health.DailyLog, error)
	AppendFoodEntry(ctx context.Context, userID int, date string, e health.FoodEntry) error
	RemoveFoodEntry(ctx context.Context, userID int, date, entryID string) error
	AppendExerciseEntry(ctx context.Context, userID int, date string, e health.ExerciseEntry) error
	RemoveExerciseEntry(ctx context.Context, userID int, date, entryID string) error
	SetDailyWeight(ctx context.Context, userID int, date string, weightKG float64) error
	SetWaterIntake(ctx context.Context, userID int, date string, glasses int) error

	// ReadStreak returns the zero streak when none was stored yet.
	ReadStreak(ctx context.Context, userID int) (health.StreakData, error)
	WriteStreak(ctx context.Context, userID int, s health.StreakData) error
	// UpdateStreak runs read, fn and write without another writer in between.
	UpdateStreak(ctx context.Context, userID int, fn StreakUpdate) (health.StreakData, error)

	// ClearUserData drops the profile, every log and the streak, keeping the account.
	ClearUserData(ctx context.Context, userID int) error

	CreateUser(ctx context.Context, u User) (int, error)
	UserByUsername(ctx context.Context, username string) (User, error)
	UserIDForToken(ctx context.Context, token string) (int, error)

	Close()
}

/* ─── Row assembly shared by both backends ───────────────────────────── */

type datedFood struct {
	date  string
	entry health.FoodEntry
}

type datedExercise struct {
	date  string
	entry health.ExerciseEntry
}

type dayMeta struct {
	date         string
	weightKG     *float64
	waterGlasses int
}

// assembleLogs groups rows by date. Rows must already be in insertion order
// within each kind.
func assembleLogs(foods []datedFood, exercises []datedExercise, metas []dayMeta) []health.DailyLog {
	byDate := map[string]*health.DailyLog{}
	get := func(date string) *health.DailyLog {
		l, ok := byDate[date]
		if !ok {
			empty := health.EmptyLog(date)
			l = &empty
			byDate[date] = l
		}
		return l
	}
	for _, f := range foods {
		l := get(f.date)
		l.Foods = append(l.Foods, f.entry)
	}
	for _, e := range exercises {
		l := get(e.date)
		l.Exercises = append(l.Exercises, e.entry)
	}
	for _, m := range metas {
		l := get(m.date)
		l.WeightKG = m.weightKG
		l.WaterGlasses = m.waterGlasses
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	logs := make([]health.DailyLog, 0, len(dates))
	for _, d := range dates {
		logs = append(logs, *byDate[d])
	}
	return logs
}
