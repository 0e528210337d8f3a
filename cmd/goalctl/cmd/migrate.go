package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/templui/goalflow/internal/config"
	"github.com/templui/goalflow/internal/db"
)

func MigrateCmd() *cobra.Command {
	var (
		driver     string
		connection string
	)

	cmd := &cobra.Command{
		Use:       "migrate <up|down|status>",
		Short:     "Apply, roll back or inspect database migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := db.Init(driver, connection)
			if err != nil {
				return err
			}
			defer db.Close(database)

			switch args[0] {
			case "up":
				err = db.RunMigrations(database.DB, driver)
			case "down":
				err = db.MigrateDown(database.DB, driver)
			}
			if err != nil {
				return err
			}

			version, err := db.MigrationStatus(database.DB, driver)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
			return nil
		},
	}

	cmd.Flags().StringVar(&driver, "driver", envDefault("DB_DRIVER", "sqlite"), "Database driver (sqlite, pgx) or set DB_DRIVER env")
	cmd.Flags().StringVar(&connection, "db", envDefault("DB_CONNECTION", config.DefaultDBConnection), "Connection string or set DB_CONNECTION env")
	return cmd
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
