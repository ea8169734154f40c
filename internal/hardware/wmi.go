package hardware

import (
	"context"
	"fmt"
	"strings"
)

// windowsQuery reads one property of the first instance of a CIM class. The
// legacy wmic tool is used when PowerShell is not available.
func (p *Platform) windowsQuery(ctx context.Context, class, property string) string {
	script := fmt.Sprintf("(Get-CimInstance -ClassName %s | Select-Object -First 1).%s", class, property)
	if v := p.runLine(ctx, "powershell", "-NoProfile", "-NonInteractive", "-Command", script); Normalize(v) != "" {
		return v
	}

	alias := strings.TrimPrefix(strings.ToLower(class), "win32_")
	if alias == "processor" {
		alias = "cpu"
	}
	return parseWMICValue(p.run(ctx, "wmic", alias, "get", property))
}

// parseWMICValue skips the header row of wmic output and returns the first
// value. wmic pads columns with spaces, so values are trimmed.
func parseWMICValue(out string) string {
	lines := strings.Split(strings.ReplaceAll(out, "\r", ""), "\n")
	for _, line := range lines[1:] {
		if v := Normalize(line); v != "" {
			return v
		}
	}
	return ""
}
