package cmd

import (
	"fmt"

	"github.com/PolarWolf314/sealedconf/internal/utils"
	"github.com/spf13/cobra"
)

var encryptStdin bool

func init() {
	encryptCmd.Flags().BoolVar(&encryptStdin, "stdin", false, "read the value from standard input")
}

var encryptCmd = &cobra.Command{
	Use:   "encrypt [value]",
	Short: "Encrypt a single value with this machine's key",
	Long: `Encrypts a value and prints it as uppercase hex, ready to paste into
secrets.json.

Without an argument the value is prompted for without echo. Use --stdin to
pipe it in instead. Passing the value as an argument leaves it in your shell
history.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting encrypt command")

		var value string
		var err error
		switch {
		case len(args) == 1:
			value = args[0]
		case encryptStdin:
			value, err = utils.ReadValue(cmd.InOrStdin())
		default:
			value, err = utils.ReadHidden("Value to encrypt: ", cmd.ErrOrStderr())
		}
		if err != nil {
			return err
		}

		p, err := loadProject()
		if err != nil {
			return err
		}
		c, _, err := p.cipher()
		if err != nil {
			return err
		}

		sealed, err := c.Encrypt(cmd.Context(), value)
		if err != nil {
			return fmt.Errorf("failed to encrypt value: %w", err)
		}
		Logger.Debugf("Encrypted %d bytes into %d hex digits", len(value), len(sealed))

		fmt.Fprintln(cmd.OutOrStdout(), sealed)
		return nil
	},
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt <hex>",
	Short: "Decrypt a single value sealed on this machine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting decrypt command")

		p, err := loadProject()
		if err != nil {
			return err
		}
		c, _, err := p.cipher()
		if err != nil {
			return err
		}

		plain, err := c.Decrypt(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to decrypt value: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), plain)
		return nil
	},
}
