package cli

import (
	"github.com/spf13/cobra"

	"github.com/logintest/login-api/internal/core/service"
)

const (
	defaultSeedEmail    = "test@example.com"
	defaultSeedPassword = "Password123!"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the schema and the seed user",
	Long: `Creates the credential table or index when missing and inserts the seed
user unless a record with that email already exists.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.store.Repo.EnsureSchema(ctx); err != nil {
		return err
	}

	created, err := service.SeedUser(ctx, s.gateway, email, password)
	if err != nil {
		return err
	}
	if created {
		cmd.Printf("Seed user %s created\n", email)
	} else {
		cmd.Printf("Seed user %s already present\n", email)
	}
	return nil
}

func init() {
	initCmd.Flags().String("email", defaultSeedEmail, "seed user email")
	initCmd.Flags().String("password", defaultSeedPassword, "seed user password")
	rootCmd.AddCommand(initCmd)
}
