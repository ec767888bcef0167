package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stolasapp/catalog/internal/sec"
)

func passwdCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "passwd",
		Short: "Hash a password",
		Long: "Prints the bcrypt hash of a password for use as credentials.password_hash in\n" +
			"the configuration file. Passwords may be provided via stdin or through the\n" +
			"interactive prompt.",
		Args: cobra.NoArgs,
		// hashing needs no configuration, so skip loading it
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			passwd, err := prompt("password: ", true)
			if err != nil {
				return err
			}
			if len(passwd) == 0 {
				return fmt.Errorf("password must not be empty")
			}
			hash, err := sec.HashPassword(passwd)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(hash))
			return err
		},
	}
}
