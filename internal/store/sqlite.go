package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AndreKrottje-Dev/Gerda2/internal/health"
	_ "modernc.org/sqlite"
)

// SQLite is the local-first Store. A single open connection serializes every
// read-modify-write on a user's rows.
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

// sqlQuerier is satisfied by *sql.DB and *sql.Tx.
type sqlQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// OpenSQLite opens (creating if needed) the database at path and applies
// migrations.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if err := ApplyMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() {
	s.db.Close()
}

/* ─── Profile ────────────────────────────────────────────────────────── */

func (s *SQLite) ReadProfile(ctx context.Context, userID int) (health.UserProfile, error) {
	var p health.UserProfile
	var gender, level, createdAt string
	err := s.db.QueryRowContext(ctx, `
SELECT name, age, gender, height_cm, current_weight_kg, target_weight_kg, activity_level, created_at
FROM profiles WHERE user_id = ?`, userID).
		Scan(&p.Name, &p.Age, &gender, &p.HeightCM, &p.CurrentWeightKG, &p.TargetWeightKG, &level, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrNotFound
	}
	if err != nil {
		return p, fmt.Errorf("read profile: %w", err)
	}
	p.Gender = health.Gender(gender)
	p.ActivityLevel = health.ActivityLevel(level)
	p.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return p, fmt.Errorf("parse profile created_at: %w", err)
	}
	return p, nil
}

func (s *SQLite) WriteProfile(ctx context.Context, userID int, p health.UserProfile) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO profiles(user_id, name, age, gender, height_cm, current_weight_kg, target_weight_kg, activity_level, created_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(user_id) DO UPDATE SET
  name = excluded.name,
  age = excluded.age,
  gender = excluded.gender,
  height_cm = excluded.height_cm,
  current_weight_kg = excluded.current_weight_kg,
  target_weight_kg = excluded.target_weight_kg,
  activity_level = excluded.activity_level,
  created_at = excluded.created_at
`, userID, p.Name, p.Age, string(p.Gender), p.HeightCM, p.CurrentWeightKG, p.TargetWeightKG,
		string(p.ActivityLevel), p.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}

/* ─── Daily log ──────────────────────────────────────────────────────── */

func (s *SQLite) ReadDailyLog(ctx context.Context, userID int, date string) (health.DailyLog, error) {
	logs, err := s.ReadDailyLogs(ctx, userID, date, date)
	if err != nil {
		return health.DailyLog{}, err
	}
	if len(logs) == 0 {
		return health.EmptyLog(date), nil
	}
	return logs[0], nil
}

func (s *SQLite) ReadDailyLogs(ctx context.Context, userID int, from, to string) ([]health.DailyLog, error) {
	foods, err := s.foodsBetween(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	exercises, err := s.exercisesBetween(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	metas, err := s.metasBetween(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	return assembleLogs(foods, exercises, metas), nil
}

func (s *SQLite) foodsBetween(ctx context.Context, userID int, from, to string) ([]datedFood, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT date, id, name, calories, protein_g, carbs_g, fat_g, health_score, logged_at
FROM food_entries WHERE user_id = ? AND date >= ? AND date <= ?
ORDER BY seq`, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list food entries: %w", err)
	}
	defer rows.Close()

	var out []datedFood
	for rows.Next() {
		var d datedFood
		var loggedAt string
		if err := rows.Scan(&d.date, &d.entry.ID, &d.entry.Name, &d.entry.Calories, &d.entry.ProteinG,
			&d.entry.CarbsG, &d.entry.FatG, &d.entry.HealthScore, &loggedAt); err != nil {
			return nil, fmt.Errorf("scan food entry: %w", err)
		}
		if d.entry.Timestamp, err = time.Parse(time.RFC3339Nano, loggedAt); err != nil {
			return nil, fmt.Errorf("parse food logged_at: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *SQLite) exercisesBetween(ctx context.Context, userID int, from, to string) ([]datedExercise, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT date, id, name, duration_min, calories_burned, logged_at
FROM exercise_entries WHERE user_id = ? AND date >= ? AND date <= ?
ORDER BY seq`, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list exercise entries: %w", err)
	}
	defer rows.Close()

	var out []datedExercise
	for rows.Next() {
		var d datedExercise
		var loggedAt string
		if err := rows.Scan(&d.date, &d.entry.ID, &d.entry.Name, &d.entry.DurationMin,
			&d.entry.CaloriesBurned, &loggedAt); err != nil {
			return nil, fmt.Errorf("scan exercise entry: %w", err)
		}
		if d.entry.Timestamp, err = time.Parse(time.RFC3339Nano, loggedAt); err != nil {
			return nil, fmt.Errorf("parse exercise logged_at: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *SQLite) metasBetween(ctx context.Context, userID int, from, to string) ([]dayMeta, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT date, weight_kg, water_glasses
FROM daily_logs WHERE user_id = ? AND date >= ? AND date <= ?`, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list daily logs: %w", err)
	}
	defer rows.Close()

	var out []dayMeta
	for rows.Next() {
		var m dayMeta
		var weight sql.NullFloat64
		if err := rows.Scan(&m.date, &weight, &m.waterGlasses); err != nil {
			return nil, fmt.Errorf("scan daily log: %w", err)
		}
		if weight.Valid {
			w := weight.Float64
			m.weightKG = &w
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *SQLite) AppendFoodEntry(ctx context.Context, userID int, date string, e health.FoodEntry) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO food_entries(id, user_id, date, name, calories, protein_g, carbs_g, fat_g, health_score, logged_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, userID, date, e.Name, e.Calories, e.ProteinG, e.CarbsG, e.FatG, e.HealthScore,
		e.Timestamp.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("append food entry: %w", err)
	}
	return nil
}

func (s *SQLite) RemoveFoodEntry(ctx context.Context, userID int, date, entryID string) error {
	return s.deleteOne(ctx, "food entry",
		`DELETE FROM food_entries WHERE id = ? AND user_id = ? AND date = ?`, entryID, userID, date)
}

func (s *SQLite) AppendExerciseEntry(ctx context.Context, userID int, date string, e health.ExerciseEntry) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO exercise_entries(id, user_id, date, name, duration_min, calories_burned, logged_at)
VALUES(?, ?, ?, ?, ?, ?, ?)`,
		e.ID, userID, date, e.Name, e.DurationMin, e.CaloriesBurned, e.Timestamp.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("append exercise entry: %w", err)
	}
	return nil
}

func (s *SQLite) RemoveExerciseEntry(ctx context.Context, userID int, date, entryID string) error {
	return s.deleteOne(ctx, "exercise entry",
		`DELETE FROM exercise_entries WHERE id = ? AND user_id = ? AND date = ?`, entryID, userID, date)
}

func (s *SQLite) deleteOne(ctx context.Context, what, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("remove %s: %w", what, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove %s: %w", what, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLite) SetDailyWeight(ctx context.Context, userID int, date string, weightKG float64) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO daily_logs(user_id, date, weight_kg) VALUES(?, ?, ?)
ON CONFLICT(user_id, date) DO UPDATE SET weight_kg = excluded.weight_kg`, userID, date, weightKG)
	if err != nil {
		return fmt.Errorf("set daily weight: %w", err)
	}
	return nil
}

func (s *SQLite) SetWaterIntake(ctx context.Context, userID int, date string, glasses int) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO daily_logs(user_id, date, water_glasses) VALUES(?, ?, ?)
ON CONFLICT(user_id, date) DO UPDATE SET water_glasses = excluded.water_glasses`, userID, date, glasses)
	if err != nil {
		return fmt.Errorf("set water intake: %w", err)
	}
	return nil
}

/* ─── Streak ─────────────────────────────────────────────────────────── */

func (s *SQLite) ReadStreak(ctx context.Context, userID int) (health.StreakData, error) {
	return readStreakSQL(ctx, s.db, userID)
}

func (s *SQLite) WriteStreak(ctx context.Context, userID int, st health.StreakData) error {
	return writeStreakSQL(ctx, s.db, userID, st)
}

func (s *SQLite) UpdateStreak(ctx context.Context, userID int, fn StreakUpdate) (health.StreakData, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return health.StreakData{}, fmt.Errorf("begin streak update: %w", err)
	}
	defer tx.Rollback()

	cur, err := readStreakSQL(ctx, tx, userID)
	if err != nil {
		return cur, err
	}
	next, changed := fn(cur)
	if !changed {
		return cur, nil
	}
	if err := writeStreakSQL(ctx, tx, userID, next); err != nil {
		return cur, err
	}
	if err := tx.Commit(); err != nil {
		return cur, fmt.Errorf("commit streak update: %w", err)
	}
	return next, nil
}

func readStreakSQL(ctx context.Context, q sqlQuerier, userID int) (health.StreakData, error) {
	var st health.StreakData
	err := q.QueryRowContext(ctx, `SELECT current_streak, longest_streak, last_log_date FROM streaks WHERE user_id = ?`, userID).
		Scan(&st.Current, &st.Longest, &st.LastLogDate)
	if errors.Is(err, sql.ErrNoRows) {
		return health.StreakData{}, nil
	}
	if err != nil {
		return st, fmt.Errorf("read streak: %w", err)
	}
	return st, nil
}

func writeStreakSQL(ctx context.Context, q sqlQuerier, userID int, st health.StreakData) error {
	_, err := q.ExecContext(ctx, `
INSERT INTO streaks(user_id, current_streak, longest_streak, last_log_date) VALUES(?, ?, ?, ?)
ON CONFLICT(user_id) DO UPDATE SET
  current_streak = excluded.current_streak,
  longest_streak = excluded.longest_streak,
  last_log_date = excluded.last_log_date`, userID, st.Current, st.Longest, st.LastLogDate)
	if err != nil {
		return fmt.Errorf("write streak: %w", err)
	}
	return nil
}

/* ─── Account ────────────────────────────────────────────────────────── */

func (s *SQLite) ClearUserData(ctx context.Context, userID int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin clear: %w", err)
	}
	defer tx.Rollback()
	for _, table := range []string{"food_entries", "exercise_entries", "daily_logs", "streaks", "profiles"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE user_id = ?`, userID); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit clear: %w", err)
	}
	return nil
}

func (s *SQLite) CreateUser(ctx context.Context, u User) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users(username, email, password, auth_token) VALUES(?, ?, ?, ?)`,
		u.Username, u.Email, u.PasswordHash, u.AuthToken)
	if err != nil {
		return 0, fmt.Errorf("create user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve user id: %w", err)
	}
	return int(id), nil
}

func (s *SQLite) UserByUsername(ctx context.Context, username string) (User, error) {
	var u User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, email, password, auth_token FROM users WHERE username = ?`, username).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.AuthToken)
	if errors.Is(err, sql.ErrNoRows) {
		return u, ErrNotFound
	}
	if err != nil {
		return u, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (s *SQLite) UserIDForToken(ctx context.Context, token string) (int, error) {
	var id int
	err := s.db.QueryRowContext(ctx, `SELECT id FROM users WHERE auth_token = ?`, token).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("find token: %w", err)
	}
	return id, nil
}
