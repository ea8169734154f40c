package hardware

import (
	"context"
	"regexp"
)

var ioregSerial = regexp.MustCompile(`"IOPlatformSerialNumber"\s*=\s*"([^"]*)"`)

func (p *Platform) darwinBoardSerial(ctx context.Context) string {
	out := p.run(ctx, "ioreg", "-rd1", "-c", "IOPlatformExpertDevice")
	m := ioregSerial.FindStringSubmatch(out)
	if m == nil {
		return ""
	}
	return m[1]
}

func (p *Platform) darwinProcessorID(ctx context.Context) string {
	return p.run(ctx, "sysctl", "-n", "machdep.cpu.brand_string")
}
