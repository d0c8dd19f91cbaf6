package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/AndreKrottje-Dev/Gerda2/internal/health"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres is the server Store. Schema lives in db/*.sql (see cmd/migrate).
type Postgres struct {
	pool *pgxpool.Pool
}

var _ Store = (*Postgres)(nil)

// pgQuerier is satisfied by *pgxpool.Pool and pgx.Tx.
type pgQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// OpenPostgres creates a connection pool. We use a pool (not a single conn)
// because managed Postgres closes idle connections after a few minutes.
func OpenPostgres(ctx context.Context, dbURL string) (*Postgres, error) {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("parse DB URL: %w", err)
	}
	// Simple protocol avoids "cached plan must not change result type" after
	// schema migrations.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Close() {
	p.pool.Close()
}

/* ─── Query helpers ──────────────────────────────────────────────────── */

// queryOne runs a query and scans the first row into T using RowToStructByName.
// pgx.ErrNoRows becomes ErrNotFound; other errors are logged for debugging
// (e.g. struct/column mismatches).
func queryOne[T any](ctx context.Context, q pgQuerier, sql string, args pgx.NamedArgs) (T, error) {
	var zero T
	rows, err := q.Query(ctx, sql, args)
	if err != nil {
		log.Printf("[queryOne] Query error: %v", err)
		return zero, err
	}
	result, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if errors.Is(err, pgx.ErrNoRows) {
		return zero, ErrNotFound
	}
	if err != nil {
		log.Printf("[queryOne] Scan error: %v", err)
		return zero, err
	}
	return result, nil
}

// queryMany runs a query and scans all rows into []T using RowToStructByName.
func queryMany[T any](ctx context.Context, q pgQuerier, sql string, args pgx.NamedArgs) ([]T, error) {
	rows, err := q.Query(ctx, sql, args)
	if err != nil {
		log.Printf("[queryMany] Query error: %v", err)
		return nil, err
	}
	results, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		log.Printf("[queryMany] Scan error: %v", err)
	}
	return results, err
}

func dateString(d pgtype.Date) string {
	if !d.Valid {
		return ""
	}
	return d.Time.Format(health.DateLayout)
}

/* ─── Row shapes ─────────────────────────────────────────────────────── */

type pgProfileRow struct {
	Name            string    `db:"name"`
	Age             int       `db:"age"`
	Gender          string    `db:"gender"`
	HeightCM        float64   `db:"height_cm"`
	CurrentWeightKG float64   `db:"current_weight_kg"`
	TargetWeightKG  float64   `db:"target_weight_kg"`
	ActivityLevel   string    `db:"activity_level"`
	CreatedAt       time.Time `db:"created_at"`
}

type pgFoodRow struct {
	Date        pgtype.Date `db:"date"`
	ID          string      `db:"id"`
	Name        string      `db:"name"`
	Calories    int         `db:"calories"`
	ProteinG    float64     `db:"protein_g"`
	CarbsG      float64     `db:"carbs_g"`
	FatG        float64     `db:"fat_g"`
	HealthScore int         `db:"health_score"`
	LoggedAt    time.Time   `db:"logged_at"`
}

type pgExerciseRow struct {
	Date           pgtype.Date `db:"date"`
	ID             string      `db:"id"`
	Name           string      `db:"name"`
	DurationMin    int         `db:"duration_min"`
	CaloriesBurned int         `db:"calories_burned"`
	LoggedAt       time.Time   `db:"logged_at"`
}

type pgDayRow struct {
	Date         pgtype.Date   `db:"date"`
	WeightKG     pgtype.Float8 `db:"weight_kg"`
	WaterGlasses int           `db:"water_glasses"`
}

type pgStreakRow struct {
	Current     int         `db:"current_streak"`
	Longest     int         `db:"longest_streak"`
	LastLogDate pgtype.Date `db:"last_log_date"`
}

/* ─── Profile ────────────────────────────────────────────────────────── */

func (p *Postgres) ReadProfile(ctx context.Context, userID int) (health.UserProfile, error) {
	r, err := queryOne[pgProfileRow](ctx, p.pool,
		`SELECT name, age, gender, height_cm, current_weight_kg, target_weight_kg, activity_level, created_at
		 FROM profiles WHERE user_id = @userID`,
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		return health.UserProfile{}, err
	}
	return health.UserProfile{
		Name:            r.Name,
		Age:             r.Age,
		Gender:          health.Gender(r.Gender),
		HeightCM:        r.HeightCM,
		CurrentWeightKG: r.CurrentWeightKG,
		TargetWeightKG:  r.TargetWeightKG,
		ActivityLevel:   health.ActivityLevel(r.ActivityLevel),
		CreatedAt:       r.CreatedAt,
	}, nil
}

func (p *Postgres) WriteProfile(ctx context.Context, userID int, pr health.UserProfile) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO profiles (user_id, name, age, gender, height_cm, current_weight_kg, target_weight_kg, activity_level, created_at)
		 VALUES (@userID, @name, @age, @gender, @heightCM, @currentWeightKG, @targetWeightKG, @activityLevel, @createdAt)
		 ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			age = EXCLUDED.age,
			gender = EXCLUDED.gender,
			height_cm = EXCLUDED.height_cm,
			current_weight_kg = EXCLUDED.current_weight_kg,
			target_weight_kg = EXCLUDED.target_weight_kg,
			activity_level = EXCLUDED.activity_level,
			created_at = EXCLUDED.created_at`,
		pgx.NamedArgs{
			"userID": userID, "name": pr.Name, "age": pr.Age, "gender": string(pr.Gender),
			"heightCM": pr.HeightCM, "currentWeightKG": pr.CurrentWeightKG,
			"targetWeightKG": pr.TargetWeightKG, "activityLevel": string(pr.ActivityLevel),
			"createdAt": pr.CreatedAt,
		})
	if err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}

/* ─── Daily log ──────────────────────────────────────────────────────── */

func (p *Postgres) ReadDailyLog(ctx context.Context, userID int, date string) (health.DailyLog, error) {
	logs, err := p.ReadDailyLogs(ctx, userID, date, date)
	if err != nil {
		return health.DailyLog{}, err
	}
	if len(logs) == 0 {
		return health.EmptyLog(date), nil
	}
	return logs[0], nil
}

func (p *Postgres) ReadDailyLogs(ctx context.Context, userID int, from, to string) ([]health.DailyLog, error) {
	args := pgx.NamedArgs{"userID": userID, "from": from, "to": to}

	foodRows, err := queryMany[pgFoodRow](ctx, p.pool,
		`SELECT date, id, name, calories, protein_g, carbs_g, fat_g, health_score, logged_at
		 FROM food_entries
		 WHERE user_id = @userID AND date >= @from AND date <= @to
		 ORDER BY seq`, args)
	if err != nil {
		return nil, fmt.Errorf("list food entries: %w", err)
	}
	exRows, err := queryMany[pgExerciseRow](ctx, p.pool,
		`SELECT date, id, name, duration_min, calories_burned, logged_at
		 FROM exercise_entries
		 WHERE user_id = @userID AND date >= @from AND date <= @to
		 ORDER BY seq`, args)
	if err != nil {
		return nil, fmt.Errorf("list exercise entries: %w", err)
	}
	dayRows, err := queryMany[pgDayRow](ctx, p.pool,
		`SELECT date, weight_kg, water_glasses
		 FROM daily_logs
		 WHERE user_id = @userID AND date >= @from AND date <= @to`, args)
	if err != nil {
		return nil, fmt.Errorf("list daily logs: %w", err)
	}

	foods := make([]datedFood, 0, len(foodRows))
	for _, r := range foodRows {
		foods = append(foods, datedFood{date: dateString(r.Date), entry: health.FoodEntry{
			ID: r.ID, Name: r.Name, Calories: r.Calories, ProteinG: r.ProteinG, CarbsG: r.CarbsG,
			FatG: r.FatG, HealthScore: r.HealthScore, Timestamp: r.LoggedAt,
		}})
	}
	exercises := make([]datedExercise, 0, len(exRows))
	for _, r := range exRows {
		exercises = append(exercises, datedExercise{date: dateString(r.Date), entry: health.ExerciseEntry{
			ID: r.ID, Name: r.Name, DurationMin: r.DurationMin, CaloriesBurned: r.CaloriesBurned, Timestamp: r.LoggedAt,
		}})
	}
	metas := make([]dayMeta, 0, len(dayRows))
	for _, r := range dayRows {
		m := dayMeta{date: dateString(r.Date), waterGlasses: r.WaterGlasses}
		if r.WeightKG.Valid {
			w := r.WeightKG.Float64
			m.weightKG = &w
		}
		metas = append(metas, m)
	}
	return assembleLogs(foods, exercises, metas), nil
}

func (p *Postgres) AppendFoodEntry(ctx context.Context, userID int, date string, e health.FoodEntry) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO food_entries (id, user_id, date, name, calories, protein_g, carbs_g, fat_g, health_score, logged_at)
		 VALUES (@id, @userID, @date, @name, @calories, @proteinG, @carbsG, @fatG, @healthScore, @loggedAt)`,
		pgx.NamedArgs{
			"id": e.ID, "userID": userID, "date": date, "name": e.Name, "calories": e.Calories,
			"proteinG": e.ProteinG, "carbsG": e.CarbsG, "fatG": e.FatG,
			"healthScore": e.HealthScore, "loggedAt": e.Timestamp,
		})
	if err != nil {
		return fmt.Errorf("append food entry: %w", err)
	}
	return nil
}

func (p *Postgres) RemoveFoodEntry(ctx context.Context, userID int, date, entryID string) error {
	return p.deleteOne(ctx, "food entry",
		"DELETE FROM food_entries WHERE id = @id AND user_id = @userID AND date = @date",
		pgx.NamedArgs{"id": entryID, "userID": userID, "date": date})
}

func (p *Postgres) AppendExerciseEntry(ctx context.Context, userID int, date string, e health.ExerciseEntry) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO exercise_entries (id, user_id, date, name, duration_min, calories_burned, logged_at)
		 VALUES (@id, @userID, @date, @name, @durationMin, @caloriesBurned, @loggedAt)`,
		pgx.NamedArgs{
			"id": e.ID, "userID": userID, "date": date, "name": e.Name,
			"durationMin": e.DurationMin, "caloriesBurned": e.CaloriesBurned, "loggedAt": e.Timestamp,
		})
	if err != nil {
		return fmt.Errorf("append exercise entry: %w", err)
	}
	return nil
}

func (p *Postgres) RemoveExerciseEntry(ctx context.Context, userID int, date, entryID string) error {
	return p.deleteOne(ctx, "exercise entry",
		"DELETE FROM exercise_entries WHERE id = @id AND user_id = @userID AND date = @date",
		pgx.NamedArgs{"id": entryID, "userID": userID, "date": date})
}

func (p *Postgres) deleteOne(ctx context.Context, what, sql string, args pgx.NamedArgs) error {
	result, err := p.pool.Exec(ctx, sql, args)
	if err != nil {
		return fmt.Errorf("remove %s: %w", what, err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) SetDailyWeight(ctx context.Context, userID int, date string, weightKG float64) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO daily_logs (user_id, date, weight_kg) VALUES (@userID, @date, @weightKG)
		 ON CONFLICT (user_id, date) DO UPDATE SET weight_kg = EXCLUDED.weight_kg`,
		pgx.NamedArgs{"userID": userID, "date": date, "weightKG": weightKG})
	if err != nil {
		return fmt.Errorf("set daily weight: %w", err)
	}
	return nil
}

func (p *Postgres) SetWaterIntake(ctx context.Context, userID int, date string, glasses int) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO daily_logs (user_id, date, water_glasses) VALUES (@userID, @date, @glasses)
		 ON CONFLICT (user_id, date) DO UPDATE SET water_glasses = EXCLUDED.water_glasses`,
		pgx.NamedArgs{"userID": userID, "date": date, "glasses": glasses})
	if err != nil {
		return fmt.Errorf("set water intake: %w", err)
	}
	return nil
}

/* ─── Streak ─────────────────────────────────────────────────────────── */

func (p *Postgres) ReadStreak(ctx context.Context, userID int) (health.StreakData, error) {
	return readStreakPG(ctx, p.pool, userID, "")
}

func (p *Postgres) WriteStreak(ctx context.Context, userID int, st health.StreakData) error {
	return writeStreakPG(ctx, p.pool, userID, st)
}

// UpdateStreak locks the user's streak row for the duration of fn so two
// evaluations for the same day cannot both count.
func (p *Postgres) UpdateStreak(ctx context.Context, userID int, fn StreakUpdate) (health.StreakData, error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return health.StreakData{}, fmt.Errorf("begin streak update: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		"INSERT INTO streaks (user_id) VALUES (@userID) ON CONFLICT (user_id) DO NOTHING",
		pgx.NamedArgs{"userID": userID}); err != nil {
		return health.StreakData{}, fmt.Errorf("ensure streak row: %w", err)
	}
	cur, err := readStreakPG(ctx, tx, userID, " FOR UPDATE")
	if err != nil {
		return cur, err
	}
	next, changed := fn(cur)
	if !changed {
		return cur, nil
	}
	if err := writeStreakPG(ctx, tx, userID, next); err != nil {
		return cur, err
	}
	if err := tx.Commit(ctx); err != nil {
		return cur, fmt.Errorf("commit streak update: %w", err)
	}
	return next, nil
}

func readStreakPG(ctx context.Context, q pgQuerier, userID int, lock string) (health.StreakData, error) {
	r, err := queryOne[pgStreakRow](ctx, q,
		"SELECT current_streak, longest_streak, last_log_date FROM streaks WHERE user_id = @userID"+lock,
		pgx.NamedArgs{"userID": userID})
	if errors.Is(err, ErrNotFound) {
		return health.StreakData{}, nil
	}
	if err != nil {
		return health.StreakData{}, fmt.Errorf("read streak: %w", err)
	}
	return health.StreakData{Current: r.Current, Longest: r.Longest, LastLogDate: dateString(r.LastLogDate)}, nil
}

func writeStreakPG(ctx context.Context, q pgQuerier, userID int, st health.StreakData) error {
	var last *string
	if st.LastLogDate != "" {
		last = &st.LastLogDate
	}
	_, err := q.Exec(ctx,
		`INSERT INTO streaks (user_id, current_streak, longest_streak, last_log_date)
		 VALUES (@userID, @current, @longest, @lastLogDate)
		 ON CONFLICT (user_id) DO UPDATE SET
			current_streak = EXCLUDED.current_streak,
			longest_streak = EXCLUDED.longest_streak,
			last_log_date = EXCLUDED.last_log_date`,
		pgx.NamedArgs{"userID": userID, "current": st.Current, "longest": st.Longest, "lastLogDate": last})
	if err != nil {
		return fmt.Errorf("write streak: %w", err)
	}
	return nil
}

/* ─── Account ────────────────────────────────────────────────────────── */

func (p *Postgres) ClearUserData(ctx context.Context, userID int) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin clear: %w", err)
	}
	defer tx.Rollback(ctx)
	for _, table := range []string{"food_entries", "exercise_entries", "daily_logs", "streaks", "profiles"} {
		if _, err := tx.Exec(ctx, "DELETE FROM "+table+" WHERE user_id = @userID",
			pgx.NamedArgs{"userID": userID}); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit clear: %w", err)
	}
	return nil
}

func (p *Postgres) CreateUser(ctx context.Context, u User) (int, error) {
	var id int
	err := p.pool.QueryRow(ctx,
		`INSERT INTO users (username, email, password, auth_token)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		u.Username, u.Email, u.PasswordHash, u.AuthToken).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create user: %w", err)
	}
	return id, nil
}

func (p *Postgres) UserByUsername(ctx context.Context, username string) (User, error) {
	return queryOne[User](ctx, p.pool,
		"SELECT id, username, email, password, auth_token FROM users WHERE username = @username",
		pgx.NamedArgs{"username": username})
}

func (p *Postgres) UserIDForToken(ctx context.Context, token string) (int, error) {
	var userID int
	err := p.pool.QueryRow(ctx, "SELECT id FROM users WHERE auth_token = $1", token).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("find token: %w", err)
	}
	return userID, nil
}
