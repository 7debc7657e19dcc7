package main

import (
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/jwt"
	"github.com/spf13/cobra"
)

func (c *cli) tokenCmd() *cobra.Command {
	var (
		employeeID string
		isAdmin    bool
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token signed with JWT_SECRET_KEY",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}

			token, expiresAt, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration).GenerateAccessToken(employeeID, isAdmin)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{
				"access_token": token,
				"expires_at":   time.Unix(expiresAt, 0).UTC().Format(time.RFC3339),
			})
		},
	}

	cmd.Flags().StringVar(&employeeID, "employee", "", "employee_id claim")
	cmd.Flags().BoolVar(&isAdmin, "admin", false, "Grant the is_admin claim")
	return cmd
}
