package cmd

import (
	"fmt"

	"github.com/PolarWolf314/sealedconf/internal/configsource"
	kerrors "github.com/PolarWolf314/sealedconf/internal/errors"
	"github.com/PolarWolf314/sealedconf/internal/jsonconf"
	"github.com/spf13/cobra"
)

var getConnectionString bool

func init() {
	getCmd.Flags().BoolVar(&getConnectionString, "connection-string", false, "treat the argument as a database base name and print its connection string for the active environment")
}

var getCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one value from the merged configuration",
	Long: `Builds the configuration described by .sealedconf.toml, decrypting the
secrets file, and prints the value of one key. Keys are case-insensitive
and nested keys are joined with ':'.

With --connection-string the argument is a database base name (default:
connection_string from .sealedconf.toml). The environment name is appended
and the result is looked up under ConnectionStrings, so SampleDatabase in
Staging reads ConnectionStrings:SampleDatabaseStaging.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting get command")

		p, err := loadProject()
		if err != nil {
			return err
		}

		var key string
		switch {
		case getConnectionString:
			base := p.settings.ConnectionString
			if len(args) == 1 {
				base = args[0]
			}
			key = jsonconf.CombineKey(configsource.ConnectionStringsSection, configsource.DatabaseName(base, p.environment))
		case len(args) == 1:
			key = args[0]
		default:
			return fmt.Errorf("a key is required unless --connection-string is given")
		}
		Logger.Debugf("Looking up %s", key)

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

		value, ok := root.Lookup(key)
		if !ok {
			return fmt.Errorf("%w: %s", kerrors.ErrKeyNotFound, key)
		}
		if value != nil {
			fmt.Fprintln(cmd.OutOrStdout(), *value)
		}
		return nil
	},
}
