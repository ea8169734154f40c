package cmd

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/sealedconf/internal/ui"
	"github.com/PolarWolf314/sealedconf/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	initForce       bool
	initNewSalt     bool
	initEnvironment string
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing .sealedconf.toml")
	initCmd.Flags().BoolVar(&initNewSalt, "new-salt", false, "generate a new key derivation salt")
	initCmd.Flags().StringVarP(&initEnvironment, "environment", "e", "", "default environment name")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default .sealedconf.toml",
	Long: `Writes .sealedconf.toml with the default layout: appsettings.json,
appsettings.{env}.json and a sealed secrets.json.

--new-salt stores a freshly generated salt. Values sealed with a custom salt
can only be read with that same salt, so commit the settings file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting init command")

		dir := workDir
		if dir == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
			dir = cwd
		}

		result, err := workflows.Init(cmd.Context(), workflows.InitOptions{
			Dir:         dir,
			Environment: initEnvironment,
			NewSalt:     initNewSalt,
			Force:       initForce,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.Success.Sprint("✓")+" Wrote "+ui.Path.Sprint(result.Path))
		if result.Settings.Salt != "" {
			fmt.Fprintln(out, ui.Warning.Sprint("⚠")+" Values sealed from now on need this salt; keep "+ui.Path.Sprint(result.Path)+" with your configuration")
		}
		fmt.Fprintln(out, ui.Info.Sprint("→")+" Seal your secrets with "+ui.Code.Sprint("sealedconf seal secrets.json"))
		return nil
	},
}
