package hardware

import (
	"bufio"
	"context"
	"strings"
)

// board_serial is root-only on most distributions, so dmidecode is tried
// when the sysfs entry cannot be read.
func (p *Platform) linuxBoardSerial(ctx context.Context) string {
	if serial := Normalize(p.read("/sys/class/dmi/id/board_serial")); serial != "" {
		return serial
	}
	return p.run(ctx, "dmidecode", "-s", "baseboard-serial-number")
}

// linuxProcessorID prefers the SoC serial on ARM boards. On x86 the
// identifying cpuinfo fields of the first processor are joined, which is the
// same information Windows encodes in ProcessorId.
func (p *Platform) linuxProcessorID() string {
	fields := parseCPUInfo(p.read("/proc/cpuinfo"))
	if serial := Normalize(fields["serial"]); serial != "" {
		return serial
	}

	var parts []string
	for _, name := range []string{"vendor_id", "cpu family", "model", "stepping"} {
		if v, ok := fields[name]; ok && v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "-")
}

// parseCPUInfo returns the key/value pairs of the first processor block.
// Keys are lower-cased. Trailing system-wide keys such as Serial on ARM come
// after the per-core blocks, so they are collected as well.
func parseCPUInfo(data string) map[string]string {
	fields := make(map[string]string)
	inFirst := true
	scanner := bufio.NewScanner(strings.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			inFirst = false
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if key == "processor" {
			continue
		}
		if _, seen := fields[key]; seen {
			continue
		}
		if inFirst || key == "serial" || key == "hardware" {
			fields[key] = value
		}
	}
	return fields
}
