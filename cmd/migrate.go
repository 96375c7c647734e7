package cmd

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vibast-solutions/ms-go-club/migrations"
)

var migrateDownSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Run: func(cmd *cobra.Command, _ []string) {
		runMigration(cmd, migrations.Up)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back applied migrations",
	Run: func(cmd *cobra.Command, _ []string) {
		runMigration(cmd, func(ctx context.Context, db *sql.DB) (bool, error) {
			return migrations.Down(ctx, db, migrateDownSteps)
		})
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)

	migrateDownCmd.Flags().IntVar(&migrateDownSteps, "steps", 1, "Number of migrations to roll back")
}

func runMigration(cmd *cobra.Command, fn func(ctx context.Context, db *sql.DB) (bool, error)) {
	cfg := mustLoadConfig()

	db, closeDB := mustOpenDatabase(cfg)
	defer closeDB()

	ctx := context.Background()
	changed, err := fn(ctx, db)
	if err != nil {
		logrus.WithError(err).Fatal("Migration failed")
	}

	version, dirty, err := migrations.Version(ctx, db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to read schema version")
	}
	logrus.WithFields(logrus.Fields{"changed": changed, "version": version, "dirty": dirty}).Info("migration_completed")
	if !changed {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to migrate.")
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Schema at version %d.\n", version)
}
