package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/digital-guidance/guidance-api/internal/users"
)

func newHashPasswordCommand() *cobra.Command {
	var (
		password string
		cost     int
	)
	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Print a bcrypt hash suitable for the users.password column",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				return errors.New("--password is required")
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(hash))
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "plain text password to hash")
	cmd.Flags().IntVar(&cost, "cost", users.DefaultHashCost, "bcrypt cost")
	return cmd
}
