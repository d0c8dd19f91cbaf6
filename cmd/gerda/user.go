package main

import (
	"context"
	"fmt"

	"github.com/AndreKrottje-Dev/Gerda2/internal/store"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

func (a *cli) userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage local accounts",
	}

	var email, password string
	add := &cobra.Command{
		Use:   "add <username>",
		Short: "Create an account and print its API token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				// No password: API login stays closed for this account.
				password = uuid.NewString()
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			u := store.User{
				Username:     args[0],
				Email:        email,
				PasswordHash: string(hash),
				AuthToken:    uuid.NewString(),
			}
			return a.withStore(func(st *store.SQLite) error {
				id, err := st.CreateUser(context.Background(), u)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (id %d)\nAuth token: %s\n", u.Username, id, u.AuthToken)
				return nil
			})
		},
	}
	add.Flags().StringVar(&email, "email", "", "Email address")
	add.Flags().StringVar(&password, "password", "", "Password for API login (random when omitted)")

	cmd.AddCommand(add)
	return cmd
}
