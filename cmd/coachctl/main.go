// Command coachctl manages coach accounts. There is no self-registration
// route; accounts are created by an operator.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pttracker/pttracker/internal/app"
	"github.com/pttracker/pttracker/internal/config"
	"github.com/pttracker/pttracker/internal/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "coachctl",
		Short: "Manage coach accounts",
	}

	rootCmd.AddCommand(createCmd())
	rootCmd.AddCommand(setPasswordCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func createCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <username> <password>",
		Short: "Create a coach account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			err = a.AuthService.CreateCoach(args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to create coach: %w", err)
			}

			fmt.Printf("coach %q created\n", args[0])
			return nil
		},
	}
}

func setPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-password <username> <password>",
		Short: "Replace a coach's password",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			err = a.AuthService.SetPassword(args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to set password: %w", err)
			}

			fmt.Printf("password updated for %q\n", args[0])
			return nil
		},
	}
}

func newApp() (*app.App, error) {
	cfg := config.Load()
	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)
	return app.New(cfg)
}
