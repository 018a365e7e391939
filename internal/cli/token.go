package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	jwtmw "tradeiq/internal/platform/jwt"
)

func newTokenCmd(rc *rootConfig) *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the protected API routes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if rc.cfg.JWT.Secret == "" {
				return errors.New("JWT_SECRET is not set")
			}
			token, err := jwtmw.NewGenerator(rc.cfg.JWT.Secret, rc.cfg.JWT.Issuer).GenerateToken(subject, ttl)
			if err != nil {
				return err
			}
			printf(cmd, "%s\n", token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "token subject, e.g. a service name")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
