package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"lindle/internal/config"
	"lindle/internal/crypto"
)

func newEncryptKeyCmd() *cobra.Command {
	var passphrase string

	cmd := &cobra.Command{
		Use:   "encrypt-key [API_KEY]",
		Short: "Encrypt an API key for lindle.api_key_encrypted",
		Long: `Encrypt an API key so it can be stored in the config file as
lindle.api_key_encrypted. The key is read from the argument or, if absent,
from the first line of stdin. The passphrase comes from --passphrase or
LINDLE_PASSPHRASE and must be provided again when the key is used.`,
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{skipInit: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				passphrase = os.Getenv(config.EnvPrefix + "PASSPHRASE")
			}
			if passphrase == "" {
				return fmt.Errorf("a passphrase is required (--passphrase or %sPASSPHRASE)", config.EnvPrefix)
			}

			var apiKey string
			if len(args) == 1 {
				apiKey = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("failed to read API key from stdin: %w", err)
				}
				apiKey = strings.TrimSpace(line)
			}
			if apiKey == "" {
				return errors.New("API key is empty")
			}

			encrypted, err := crypto.Encrypt(apiKey, passphrase)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), encrypted)
			return nil
		},
	}
	cmd.Flags().StringVar(&passphrase, "passphrase", "", "passphrase used to encrypt the key")
	return cmd
}
