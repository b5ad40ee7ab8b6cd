package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yungbote/foodgram-backend/internal/app"
)

var rootCmd = &cobra.Command{
	Use:           "foodgramctl",
	Short:         "Administrative tasks for the foodgram backend",
	Long:          "foodgramctl migrates the database, loads catalog fixtures and creates accounts using the same configuration as the API server.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// withApp opens the application (which also migrates the schema) for the duration of fn.
func withApp(fn func(a *app.App) error) error {
	a, err := app.New()
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()
	return fn(a)
}
