package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yungbote/foodgram-backend/internal/app"
	"github.com/yungbote/foodgram-backend/internal/data/db"
	"github.com/yungbote/foodgram-backend/internal/services"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update tables and indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			if err := db.EnsurePostgresIndexes(a.DB); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")
			return nil
		})
	},
}

var fixtureFile string

var loadIngredientsCmd = &cobra.Command{
	Use:   "load-ingredients",
	Short: "Import ingredients from a JSON, YAML or CSV file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if fixtureFile == "" {
			return fmt.Errorf("--file is required")
		}
		f, err := os.Open(fixtureFile)
		if err != nil {
			return err
		}
		defer f.Close()
		rows, err := parseIngredients(f, formatOf(fixtureFile))
		if err != nil {
			return err
		}
		return withApp(func(a *app.App) error {
			n, err := a.Services.Catalog.ImportIngredients(cmd.Context(), rows)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Read %d ingredients, inserted %d\n", len(rows), n)
			return nil
		})
	},
}

var loadTagsCmd = &cobra.Command{
	Use:   "load-tags",
	Short: "Import tags from a JSON or YAML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if fixtureFile == "" {
			return fmt.Errorf("--file is required")
		}
		f, err := os.Open(fixtureFile)
		if err != nil {
			return err
		}
		defer f.Close()
		rows, err := parseTags(f, formatOf(fixtureFile))
		if err != nil {
			return err
		}
		return withApp(func(a *app.App) error {
			n, err := a.Services.Catalog.ImportTags(cmd.Context(), rows)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Read %d tags, wrote %d\n", len(rows), n)
			return nil
		})
	},
}

var newUser services.CreateUserInput

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create an account, optionally with staff rights",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			u, err := a.Services.User.CreateUser(cmd.Context(), newUser)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (%s)\n", u.Username, u.ID)
			return nil
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{loadIngredientsCmd, loadTagsCmd} {
		c.Flags().StringVarP(&fixtureFile, "file", "f", "", "Fixture file; format is taken from the extension")
	}

	createUserCmd.Flags().StringVar(&newUser.Email, "email", "", "Email address")
	createUserCmd.Flags().StringVar(&newUser.Username, "username", "", "Username")
	createUserCmd.Flags().StringVar(&newUser.FirstName, "first-name", "", "First name")
	createUserCmd.Flags().StringVar(&newUser.LastName, "last-name", "", "Last name")
	createUserCmd.Flags().StringVar(&newUser.Password, "password", "", "Password")
	createUserCmd.Flags().BoolVar(&newUser.IsStaff, "staff", false, "Grant staff rights")
	for _, name := range []string{"email", "username", "password"} {
		_ = createUserCmd.MarkFlagRequired(name)
	}

	rootCmd.AddCommand(migrateCmd, loadIngredientsCmd, loadTagsCmd, createUserCmd)
}
