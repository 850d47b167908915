package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marginote/shelfsync/internal/core/domain"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the WeRead session",
	RunE:  runAuthCheck,
}

var authCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the stored session cookie is still valid",
	RunE:  runAuthCheck,
}

func init() {
	authCmd.AddCommand(authCheckCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthCheck(cmd *cobra.Command, _ []string) error {
	if sourceClient == nil {
		if err := initSource(); err != nil {
			return err
		}
	}

	err := sourceClient.Validate(cmd.Context())
	if errors.Is(err, domain.ErrSessionExpired) {
		return errors.New("session expired: log in to WeRead in a browser and update the cookie")
	}
	if err != nil {
		return fmt.Errorf("session check failed: %w", err)
	}

	cmd.Println("Session OK.")
	return nil
}
