package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/digital-guidance/guidance-api/internal/auth"
)

func newMintTokenCommand() *cobra.Command {
	var (
		secret  string
		subject string
		role    string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "mint-token",
		Short: "Sign a bearer token for local testing",
		Long: `Sign a bearer token with JWT_SECRET.

The role claim is informational only: the API authorizes every request with
the role currently stored for the subject.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if subject == "" {
				return errors.New("--sub is required")
			}
			parsed, ok := auth.ParseRole(role)
			if !ok {
				return fmt.Errorf("unknown role %q", role)
			}
			codec, err := auth.NewTokenCodec([]byte(secret))
			if err != nil {
				return err
			}
			token, err := codec.Issue(subject, parsed, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&secret, "secret", getEnvOrDefault("JWT_SECRET", ""), "signing secret (defaults to JWT_SECRET)")
	cmd.Flags().StringVar(&subject, "sub", "", "user_id to place in the subject claim")
	cmd.Flags().StringVar(&role, "role", string(auth.RoleUser), "role claim (admin or user)")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}
