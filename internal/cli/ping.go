package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check connectivity to the credential store",
	Args:  cobra.NoArgs,
	RunE:  runPing,
}

func runPing(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	email, _ := cmd.Flags().GetString("email")

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.store.Repo.Ping(ctx); err != nil {
		return fmt.Errorf("%s store unreachable: %w", s.store.Driver, err)
	}
	cmd.Printf("%s store reachable\n", s.store.Driver)

	if s.gateway.UserExists(ctx, email) {
		cmd.Printf("User %s: present\n", email)
	} else {
		cmd.Printf("User %s: missing\n", email)
	}
	return nil
}

func init() {
	pingCmd.Flags().String("email", defaultSeedEmail, "email whose presence is reported")
	rootCmd.AddCommand(pingCmd)
}
