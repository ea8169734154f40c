package cmd

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/sealedconf/internal/jsonconf"
	"github.com/PolarWolf314/sealedconf/internal/seal"
	"github.com/PolarWolf314/sealedconf/internal/ui"
	"github.com/spf13/cobra"
)

var (
	showReveal bool
	showPlain  bool
)

func init() {
	showCmd.Flags().BoolVar(&showReveal, "reveal", false, "print values instead of masking them")
	showCmd.Flags().BoolVar(&showPlain, "plain", false, "treat the file as plain JSON and skip decryption")
}

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "List the flattened keys of a sealed JSON file",
	Long: `Decrypts a sealed JSON file and lists every flattened key, one per line,
in document order. Values are masked unless --reveal is given.

Nested keys are joined with ':', so {"A": {"B": "x"}} lists A:B. Null
values and empty objects or arrays are shown as (null).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting show command")

		path, err := resolvePath(args[0])
		if err != nil {
			return err
		}

		transform := seal.Identity
		if !showPlain {
			p, err := loadProject()
			if err != nil {
				return err
			}
			c, _, err := p.cipher()
			if err != nil {
				return err
			}
			transform = c.Decrypt
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		cfg, err := jsonconf.Parse(cmd.Context(), f, transform)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		Logger.Debugf("Flattened %d keys from %s", cfg.Len(), path)

		out := cmd.OutOrStdout()
		for _, key := range cfg.Keys() {
			value, _ := cfg.Lookup(key)
			fmt.Fprintf(out, "%s = %s\n", key, displayValue(value, showReveal))
		}
		return nil
	},
}

func displayValue(value *string, reveal bool) string {
	if value == nil {
		return ui.Muted.Sprint("null")
	}
	if reveal {
		return *value
	}
	return ui.Mask(*value)
}
