package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PolarWolf314/sealedconf/internal/audit"
	"github.com/PolarWolf314/sealedconf/internal/ui"
	"github.com/spf13/cobra"
)

var (
	logLimit      int
	logJSONOutput bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "limit", "n", 0, "show only the most recent entries (0 = all)")
	logCmd.Flags().BoolVar(&logJSONOutput, "json", false, "output in JSON format")
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the audit log of seal and init operations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting log command")

		p, err := loadProject()
		if err != nil {
			return err
		}
		entries, err := audit.Read(p.dir)
		if err != nil {
			return fmt.Errorf("failed to read audit log: %w", err)
		}
		if logLimit > 0 && len(entries) > logLimit {
			entries = entries[len(entries)-logLimit:]
		}

		out := cmd.OutOrStdout()
		if logJSONOutput {
			if entries == nil {
				entries = []audit.Entry{}
			}
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(entries)
		}

		if len(entries) == 0 {
			fmt.Fprintln(out, "No audit entries in "+ui.Path.Sprint(audit.Path(p.dir)))
			return nil
		}
		for _, e := range entries {
			line := fmt.Sprintf("%s  %-5s %s", e.Timestamp, e.Operation, strings.Join(e.Files, ", "))
			if e.Fingerprint != "" {
				line += "  " + ui.Muted.Sprint(e.Host+" "+e.Fingerprint)
			}
			fmt.Fprintln(out, line)
		}
		return nil
	},
}
