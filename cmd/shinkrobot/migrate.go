package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/varoOP/shinkrobot/internal/database"
	"github.com/varoOP/shinkrobot/internal/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the chat preferences database",
	Long: `Migrate opens shinkrobot.db in the database directory, creating it if needed,
and applies any pending schema upgrades. Every other command does this on start;
this command only exists to run it ahead of a deploy.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := viper.GetString("database_dir")
		log := logger.NewLogger()

		log.Info().Str("database_dir", dir).Msg("Starting database migration")

		db, err := database.NewDB(dir, log)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		defer db.Close()

		if err := db.Ping(cmd.Context()); err != nil {
			return fmt.Errorf("database not reachable: %w", err)
		}

		log.Info().Msg("Migration completed successfully!")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
