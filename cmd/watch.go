package cmd

import (
	"fmt"
	"io"

	"github.com/PolarWolf314/sealedconf/internal/configsource"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch <key>",
	Short: "Print a value and print it again whenever it changes",
	Long: `Builds the configuration described by .sealedconf.toml and prints the
value of one key. Files with reload_on_change are then watched; after each
change the configuration is rebuilt and the value printed again if it
changed. A rebuild that fails keeps the previous configuration.

Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting watch command")
		ctx := cmd.Context()
		key := args[0]

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
		initial, err := b.Build(ctx)
		if err != nil {
			return err
		}

		w := configsource.NewWatcher(b, initial)
		for _, path := range w.Paths() {
			Logger.Infof("Watching %s", path)
		}

		out := cmd.OutOrStdout()
		last := printWatched(out, initial, key, nil)

		return w.Run(ctx, func(root *configsource.Root, err error) {
			if err != nil {
				Logger.Warnf("Reload failed, keeping previous configuration: %v", err)
				return
			}
			Logger.Debugf("Configuration reloaded")
			last = printWatched(out, root, key, last)
		})
	},
}

// printWatched prints key's value when it differs from last and returns
// the value printed.
func printWatched(out io.Writer, root *configsource.Root, key string, last *string) *string {
	value, ok := root.Lookup(key)
	display := "(not set)"
	if ok && value != nil {
		display = *value
	} else if ok {
		display = "(null)"
	}
	if last != nil && *last == display {
		return last
	}
	fmt.Fprintln(out, display)
	return &display
}
