package cmd

import (
	"fmt"

	"github.com/PolarWolf314/sealedconf/internal/secretfiles"
	"github.com/PolarWolf314/sealedconf/internal/ui"
	"github.com/PolarWolf314/sealedconf/internal/utils"
	"github.com/spf13/cobra"
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List the secret files named in the configuration",
	Long: `Builds the configuration described by .sealedconf.toml and lists the
files named under the secret_section section (default SecretFiles).

Entries may be glob patterns such as ./certs/**/*.pem. Paths starting with
'.' are relative to the working directory. Only existing regular files are
listed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting files command")

		p, err := loadProject()
		if err != nil {
			return err
		}
		c, _, err := p.cipher()
		if err != nil {
			return err
		}
		b, err := p.pipeline(c)
		if err != nil {
			return err
		}
		root, err := b.Build(cmd.Context())
		if err != nil {
			return err
		}

		paths, err := secretfiles.Resolve(root, p.settings.SecretSection, p.dir)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(paths) == 0 {
			fmt.Fprintln(out, ui.Warning.Sprint("⚠")+" No secret files listed under "+ui.Key.Sprint(p.settings.SecretSection))
			return nil
		}
		fmt.Fprint(out, "Secret files:"+utils.FormatPaths(paths))
		return nil
	},
}
