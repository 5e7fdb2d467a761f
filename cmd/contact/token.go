package main

import (
	"fmt"

	apperrors "github.com/mbsnyc/mbsnyc-api/pkg/errors"
	"github.com/mbsnyc/mbsnyc-api/pkg/jwt"
	"github.com/spf13/cobra"
)

func newTokenCmd(a *app) *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an admin token for GET /api/contact",
		Long:  "Mint an admin bearer token signed with ADMIN_JWT_SECRET. The token lasts ADMIN_TOKEN_TTL_HOURS.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Admin.JWTSecret == "" {
				return apperrors.UnavailableError("ADMIN_JWT_SECRET")
			}

			tm := jwt.NewTokenManager(a.cfg.Admin.JWTSecret, a.cfg.Admin.JWTIssuer, a.cfg.Admin.TokenTTLHrs)
			token, err := tm.GenerateToken(subject)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "who the token is for, e.g. an email address")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}
