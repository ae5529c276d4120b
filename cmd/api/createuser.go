package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/fleet/internal/database"
	"github.com/MrJamesThe3rd/fleet/internal/user"
	userStore "github.com/MrJamesThe3rd/fleet/internal/user/store"
)

func createUserCmd() *cobra.Command {
	var params user.CreateParams

	cmd := &cobra.Command{
		Use:   "createuser <username>",
		Short: "Create an API account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params.Username = args[0]

			if params.Password == "" {
				if err := promptPassword(&params.Password); err != nil {
					return err
				}
			}

			db, err := database.New(cfg.ConnectionString())
			if err != nil {
				return fmt.Errorf("connecting to database: %w", err)
			}
			defer db.Close()

			u, err := user.NewService(userStore.New(db)).Create(cmd.Context(), params)
			if err != nil {
				return fmt.Errorf("creating user: %w", err)
			}

			slog.Info("user created", "id", u.ID, "username", u.Username)

			return nil
		},
	}

	cmd.Flags().StringVar(&params.Password, "password", "", "account password (prompted when empty)")
	cmd.Flags().StringVar(&params.Email, "email", "", "contact email")
	cmd.Flags().StringVar(&params.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&params.LastName, "last-name", "", "last name")

	return cmd
}

func promptPassword(password *string) error {
	var confirm string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(password).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("password is required")
					}

					return nil
				}),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&confirm),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("reading password: %w", err)
	}

	if *password != confirm {
		return errors.New("passwords do not match")
	}

	return nil
}
