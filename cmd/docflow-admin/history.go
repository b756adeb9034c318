package main

import (
	"context"
	workflowhistoryhandler "docflow-backend/lib/workflow-history"
	workflowapimodels "docflow-backend/models/api/workflow"
	"os"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Workflow history of documents",
	}
	cmd.AddCommand(newHistoryExportCmd())
	return cmd
}

func newHistoryExportCmd() *cobra.Command {
	var tenantID, documentID int64
	var format, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the history of a document to xlsx or pdf",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := connect(); err != nil {
				return err
			}
			body, fileName, err := workflowhistoryhandler.Instance.Export(context.Background(), tenantID, documentID, workflowapimodels.ExportFormat(format))
			if err != nil {
				return err
			}
			if out == "" {
				out = fileName
			}
			if err = os.WriteFile(out, body, 0o644); err != nil {
				return err
			}
			cmd.Printf("history written to %s\n", out)
			return nil
		},
	}
	cmd.Flags().Int64Var(&tenantID, "tenant", 0, "tenant id")
	cmd.Flags().Int64Var(&documentID, "document", 0, "document id")
	cmd.Flags().StringVar(&format, "format", string(workflowapimodels.ExportFormatXLSX), "xlsx | pdf")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file, defaults to document_<id>_history.<format>")
	_ = cmd.MarkFlagRequired("tenant")
	_ = cmd.MarkFlagRequired("document")
	return cmd
}
