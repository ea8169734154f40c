package cmd

import (
	"errors"
	"os"

	"github.com/PolarWolf314/sealedconf/internal/hardware"
	logger "github.com/PolarWolf314/sealedconf/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	debug   bool
	workDir string
	Logger  logger.Logger

	// newProvider supplies the machine identifiers. Tests replace it.
	newProvider = func() hardware.Provider { return hardware.NewPlatform() }

	RootCmd = &cobra.Command{
		Use:   "sealedconf",
		Short: "Machine-bound encryption for JSON configuration files",
		Long: `sealedconf encrypts secret values in JSON configuration files with a key
derived from this machine's motherboard serial number and processor id.
A sealed file can only be read on the machine that sealed it.

Values are AES-256-CBC encrypted and stored as uppercase hex. The layered
configuration (appsettings.json, appsettings.{env}.json, secrets.json and
environment variables) is described by .sealedconf.toml.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
				Out:     cmd.OutOrStdout(),
				Err:     cmd.ErrOrStderr(),
			}
			Logger.Debugf("Initializing %s with verbose=%t, debug=%t, dir=%q", cmd.Name(), verbose, debug, workDir)
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	RootCmd.PersistentFlags().StringVar(&workDir, "dir", "", "directory holding the configuration files (default: nearest directory with .sealedconf.toml, else the current one)")

	RootCmd.AddCommand(encryptCmd)
	RootCmd.AddCommand(decryptCmd)
	RootCmd.AddCommand(sealCmd)
	RootCmd.AddCommand(showCmd)
	RootCmd.AddCommand(getCmd)
	RootCmd.AddCommand(watchCmd)
	RootCmd.AddCommand(filesCmd)
	RootCmd.AddCommand(doctorCmd)
	RootCmd.AddCommand(initCmd)
	RootCmd.AddCommand(logCmd)
}

// SetProvider replaces the hardware identifier provider, for testing.
func SetProvider(p hardware.Provider) {
	newProvider = func() hardware.Provider { return p }
}

// ResetProvider restores the platform provider.
func ResetProvider() {
	newProvider = func() hardware.Provider { return hardware.NewPlatform() }
}

// exitCode maps an error returned by a command to a process exit status.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, errDoctorFailed) {
		return 2
	}
	return 1
}

// Execute runs the root command and exits on failure.
func Execute() {
	ctx, stop := signalContext()
	defer stop()

	if err := RootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errDoctorFailed) {
			Logger.Errorf("%v", err)
		}
		stop()
		os.Exit(exitCode(err))
	}
}
