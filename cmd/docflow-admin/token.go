package main

import (
	authutils "docflow-backend/lib/utils/auth-utils"
	"docflow-backend/models"

	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	var tenantID, userID int64
	var role, name string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for local testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := authutils.GetToken(userID, tenantID, name, models.UserRole(role))
			if err != nil {
				return err
			}
			cmd.Println(token)
			return nil
		},
	}
	cmd.Flags().Int64Var(&tenantID, "tenant", 0, "tenant id")
	cmd.Flags().Int64Var(&userID, "user", 0, "user id")
	cmd.Flags().StringVar(&role, "role", string(models.TenantUserRole), "tenant role")
	cmd.Flags().StringVar(&name, "name", "", "user name")
	_ = cmd.MarkFlagRequired("tenant")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
