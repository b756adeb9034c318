package main

import (
	"docflow-backend/config"
	"docflow-backend/db"
	"docflow-backend/initializers"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "docflow-admin",
		Short:         "Maintenance commands for the document workflow service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initializers.InitLogger()
			config.InitConfig()
		},
	}
	root.AddCommand(
		newMigrateCmd(),
		newRolesCmd(),
		newHistoryCmd(),
		newTokenCmd(),
		newSeedCmd(),
	)
	return root
}

// connect opens the database without migrating and builds the handlers.
func connect() error {
	err := db.Connect(config.Conf.Database.Host, config.Conf.Database.Port, config.Conf.Database.Name,
		config.Conf.Database.User, config.Conf.Database.Password, *config.Conf.Database.DebugMode, false)
	if err != nil {
		return err
	}
	initializers.InitHandlers()
	return nil
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := connect(); err != nil {
				return err
			}
			if err := db.AutoMigrateDB(db.DB); err != nil {
				return err
			}
			cmd.Println("schema is up to date")
			return nil
		},
	}
}
