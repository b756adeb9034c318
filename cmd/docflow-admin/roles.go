package main

import (
	"context"
	workflowroleshandler "docflow-backend/lib/workflow-roles"
	"docflow-backend/models"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newRolesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roles",
		Short: "Manage validator and approver roles",
	}
	cmd.AddCommand(newRolesAssignCmd(), newRolesRevokeCmd(), newRolesListCmd())
	return cmd
}

func newRolesAssignCmd() *cobra.Command {
	var tenantID, userID, assignedBy int64
	var role string
	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Grant a workflow role to a tenant member",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := connect(); err != nil {
				return err
			}
			err := workflowroleshandler.Instance.AssignRole(context.Background(), tenantID, userID, models.WorkflowRole(role), assignedBy)
			if err != nil {
				return err
			}
			cmd.Printf("user %d is %s in tenant %d\n", userID, role, tenantID)
			return nil
		},
	}
	cmd.Flags().Int64Var(&tenantID, "tenant", 0, "tenant id")
	cmd.Flags().Int64Var(&userID, "user", 0, "user id")
	cmd.Flags().StringVar(&role, "role", "", "validator | approver")
	cmd.Flags().Int64Var(&assignedBy, "by", 0, "id of the user recorded as assigner")
	_ = cmd.MarkFlagRequired("tenant")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}

func newRolesRevokeCmd() *cobra.Command {
	var tenantID, userID int64
	var role string
	cmd := &cobra.Command{
		Use:   "revoke",
		Short: "Revoke a workflow role",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := connect(); err != nil {
				return err
			}
			err := workflowroleshandler.Instance.RevokeRole(context.Background(), tenantID, userID, models.WorkflowRole(role))
			if err != nil {
				return err
			}
			cmd.Printf("user %d is no longer %s in tenant %d\n", userID, role, tenantID)
			return nil
		},
	}
	cmd.Flags().Int64Var(&tenantID, "tenant", 0, "tenant id")
	cmd.Flags().Int64Var(&userID, "user", 0, "user id")
	cmd.Flags().StringVar(&role, "role", "", "validator | approver")
	_ = cmd.MarkFlagRequired("tenant")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}

func newRolesListCmd() *cobra.Command {
	var tenantID int64
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tenant members with their workflow roles",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := connect(); err != nil {
				return err
			}
			list, err := workflowroleshandler.Instance.ListTenantUsersWithRoles(context.Background(), tenantID)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "USER\tNAME\tTENANT ROLE\tVALIDATOR\tAPPROVER")
			for _, rec := range list {
				fmt.Fprintf(w, "%d\t%s\t%s\t%v\t%v\n", rec.UserID, rec.FullName, rec.TenantRole, rec.IsValidator, rec.IsApprover)
			}
			return w.Flush()
		},
	}
	cmd.Flags().Int64Var(&tenantID, "tenant", 0, "tenant id")
	_ = cmd.MarkFlagRequired("tenant")
	return cmd
}
