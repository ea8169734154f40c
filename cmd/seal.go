package cmd

import (
	"fmt"

	"github.com/PolarWolf314/sealedconf/internal/ui"
	"github.com/PolarWolf314/sealedconf/internal/workflows"
	"github.com/spf13/cobra"
)

var sealOutput string

func init() {
	sealCmd.Flags().StringVarP(&sealOutput, "output", "o", "", "write the sealed file here instead of replacing the input")
}

var sealCmd = &cobra.Command{
	Use:   "seal <file>",
	Short: "Encrypt every string value of a JSON file",
	Long: `Encrypts every string value of a JSON file with this machine's key and
writes the file back. Numbers, booleans, nulls and the structure are kept.

Values that already decrypt with this machine's key are left as they are,
so sealing a file twice is harmless. The check is made by trying to
decrypt: a plaintext that is itself uppercase or lowercase hex and happens
to decrypt cleanly would be left unsealed, so verify hex-looking secrets
with 'sealedconf show'. Comments in the input are dropped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting seal command")

		input, err := resolvePath(args[0])
		if err != nil {
			return err
		}
		var output string
		if sealOutput != "" {
			if output, err = resolvePath(sealOutput); err != nil {
				return err
			}
		}

		p, err := loadProject()
		if err != nil {
			return err
		}
		c, d, err := p.cipher()
		if err != nil {
			return err
		}

		spinner, cleanup := startSpinner("Sealing "+input+"...", cmd.OutOrStdout())
		defer cleanup()

		result, err := workflows.Seal(cmd.Context(), workflows.SealOptions{
			Input:    input,
			Output:   output,
			Cipher:   c,
			Key:      d,
			AuditDir: p.dir,
		})
		if err != nil {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Failed to seal " + ui.Path.Sprint(input)
			return err
		}
		Logger.Debugf("Sealed %d values, %d already sealed, fingerprint %s", result.Sealed, result.Skipped, result.Fingerprint)

		msg := fmt.Sprintf("%s Sealed %d values into %s", ui.Success.Sprint("✓"), result.Sealed, ui.Path.Sprint(result.Output))
		if result.Skipped > 0 {
			msg += fmt.Sprintf(" (%d already sealed)", result.Skipped)
		}
		spinner.FinalMSG = msg
		return nil
	},
}
