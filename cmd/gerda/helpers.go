package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AndreKrottje-Dev/Gerda2/internal/health"
	"github.com/AndreKrottje-Dev/Gerda2/internal/store"
)

// withStore opens the SQLite store (creating its directory) for one command.
func (a *cli) withStore(run func(st *store.SQLite) error) error {
	path, err := a.resolveDBPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create database dir: %w", err)
	}
	st, err := store.OpenSQLite(path)
	if err != nil {
		return err
	}
	defer st.Close()
	return run(st)
}

// withUser is withStore plus the --user account lookup.
func (a *cli) withUser(run func(ctx context.Context, st *store.SQLite, userID int) error) error {
	return a.withStore(func(st *store.SQLite) error {
		ctx := context.Background()
		u, err := st.UserByUsername(ctx, a.username)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("unknown user %q (create it with `gerda user add %s`)", a.username, a.username)
		}
		if err != nil {
			return err
		}
		return run(ctx, st, u.ID)
	})
}

// dateOrToday validates a --date flag, defaulting to the local day.
func (a *cli) dateOrToday(date string) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return health.DateKey(a.now()), nil
	}
	if err := health.ValidateDateKey(date); err != nil {
		return "", fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date)
	}
	return date, nil
}

var errNoProfile = errors.New("no profile yet (set one with `gerda profile set`)")

// readProfile turns a missing profile into an actionable error.
func readProfile(ctx context.Context, st store.Store, userID int) (health.UserProfile, error) {
	p, err := st.ReadProfile(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return p, errNoProfile
	}
	return p, err
}
