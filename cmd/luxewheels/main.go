package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import migrations so their init() funcs run and register themselves.
	_ "github.com/shashiranjanraj/luxewheels/database/migrations"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "luxewheels",
	Short: "LuxeWheels fleet engine CLI",
	Long:  "LuxeWheels manages a rental fleet: availability refresh, catalogue queries, migrations, seeders and the scheduled worker.",
}

func init() {
	// Database
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)

	// Fleet
	rootCmd.AddCommand(fleetRefreshCmd)
	rootCmd.AddCommand(fleetListCmd)

	// Worker
	rootCmd.AddCommand(scheduleRunCmd)
}
