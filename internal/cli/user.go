package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/logintest/login-api/internal/core/domain"
	"github.com/logintest/login-api/internal/core/service"
	"github.com/logintest/login-api/internal/core/validation"
)

var errCheckFailed = errors.New("credentials rejected")

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage individual credentials",
	Long:  `Add, remove, look up, or verify credential records.`,
}

var userAddCmd = &cobra.Command{
	Use:   "add [email] [password]",
	Short: "Insert a credential",
	Args:  cobra.ExactArgs(2),
	RunE:  runUserAdd,
}

var userRemoveCmd = &cobra.Command{
	Use:   "remove [email]",
	Short: "Delete a credential",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserRemove,
}

var userExistsCmd = &cobra.Command{
	Use:   "exists [email]",
	Short: "Report whether a credential exists",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserExists,
}

var userCheckCmd = &cobra.Command{
	Use:   "check [email] [password]",
	Short: "Run a login attempt without the HTTP layer",
	Long:  `Runs the same presence, input and store checks as POST /login.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runUserCheck,
}

func runUserAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if s.gateway.UserExists(ctx, args[0]) {
		return domain.ErrUserExists
	}
	if !s.gateway.AddUser(ctx, args[0], args[1]) {
		return domain.ErrRegistrationFailed
	}
	cmd.Printf("User %s added\n", args[0])
	return nil
}

func runUserRemove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if !s.gateway.RemoveUser(ctx, args[0]) {
		return fmt.Errorf("user %s: %w", args[0], domain.ErrUserNotFound)
	}
	cmd.Printf("User %s removed\n", args[0])
	return nil
}

func runUserExists(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	cmd.Println(s.gateway.UserExists(ctx, args[0]))
	return nil
}

func runUserCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	rules, err := validation.LoadRules(s.cfg.RulesFile)
	if err != nil {
		return err
	}

	auth := service.NewAuthService(s.gateway, validation.New(rules), s.log)
	res, err := auth.Login(ctx, args[0], args[1])
	if err != nil {
		cmd.Println(err.Error())
		return errCheckFailed
	}
	cmd.Println(res.Message)
	return nil
}

func init() {
	userCmd.AddCommand(userAddCmd, userRemoveCmd, userExistsCmd, userCheckCmd)
	rootCmd.AddCommand(userCmd)
}
