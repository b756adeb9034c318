package main

import (
	"context"
	"docflow-backend/db"
	documentstore "docflow-backend/lib/documents/store"
	tenantmembersstore "docflow-backend/lib/tenant/members-store"
	workflowroleshandler "docflow-backend/lib/workflow-roles"
	"docflow-backend/models"
	dbmodels "docflow-backend/models/db"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

type seedUser struct {
	firstName string
	role      models.UserRole
	workflow  models.WorkflowRole
}

var seedUsers = []seedUser{
	{"Alice", models.TenantAdminRole, ""},
	{"Bob", models.TenantUserRole, ""},
	{"Carol", models.TenantUserRole, models.WorkflowRoleValidator},
	{"Dave", models.TenantUserRole, models.WorkflowRoleApprover},
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create a demo tenant with users, roles and a draft document",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := connect(); err != nil {
				return err
			}
			ctx := context.Background()
			var tenantID int64
			userIDs := map[string]int64{}
			err := db.DB.Transaction(func(tx *gorm.DB) error {
				membersStore := tenantmembersstore.NewInstance(tx)
				var err error
				tenantID, err = membersStore.CreateTenant(ctx, dbmodels.Tenant{Name: "Demo tenant", IsActive: true})
				if err != nil {
					return err
				}
				for _, rec := range seedUsers {
					userID, err := membersStore.CreateUser(ctx, dbmodels.User{
						FirstName: rec.firstName,
						LastName:  "Demo",
						Email:     rec.firstName + "@docflow.local",
					})
					if err != nil {
						return err
					}
					if err = membersStore.AddMember(ctx, tenantID, userID, rec.role); err != nil {
						return err
					}
					if rec.workflow != "" {
						err = workflowroleshandler.NewInstance(tx).AssignRole(ctx, tenantID, userID, rec.workflow, userIDs["Alice"])
						if err != nil {
							return err
						}
					}
					userIDs[rec.firstName] = userID
				}
				_, err = documentstore.NewInstance(tx).Create(ctx, dbmodels.Document{
					BaseTenantModel: dbmodels.BaseTenantModel{TenantID: tenantID},
					CreatorID:       userIDs["Bob"],
					Title:           "Demo contract",
				})
				return err
			})
			if err != nil {
				return err
			}
			cmd.Printf("tenant %d created\n", tenantID)
			for _, rec := range seedUsers {
				cmd.Printf("  %-6s id=%d role=%s %s\n", rec.firstName, userIDs[rec.firstName], rec.role, rec.workflow)
			}
			return nil
		},
	}
}
