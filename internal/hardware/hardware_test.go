package hardware

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	kerrors "github.com/PolarWolf314/sealedconf/internal/errors"
)

// fakeExecutor answers commands by their joined command line.
type fakeExecutor struct {
	outputs map[string]string
	calls   []string
}

func (f *fakeExecutor) Execute(_ context.Context, name string, args ...string) (string, error) {
	line := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, line)
	for prefix, out := range f.outputs {
		if strings.HasPrefix(line, prefix) {
			return out, nil
		}
	}
	return "", fmt.Errorf("command not found: %s", name)
}

func fakeFiles(files map[string]string) func(string) ([]byte, error) {
	return func(name string) ([]byte, error) {
		if data, ok := files[name]; ok {
			return []byte(data), nil
		}
		return nil, os.ErrNotExist
	}
}

func TestStatic(t *testing.T) {
	ctx := context.Background()
	p := Static{Serial: " ABC123 ", CPU: "BFEBFBFF000906EA"}

	serial, err := p.BoardSerial(ctx)
	if err != nil || serial != " ABC123 " {
		t.Errorf("BoardSerial() = %q, %v; want the padded value verbatim", serial, err)
	}
	cpu, err := p.ProcessorID(ctx)
	if err != nil || cpu != "BFEBFBFF000906EA" {
		t.Errorf("ProcessorID() = %q, %v", cpu, err)
	}

	blank := Static{Serial: "   ", CPU: "To be filled by O.E.M."}
	if _, err := blank.BoardSerial(ctx); !errors.Is(err, kerrors.ErrHardwareUnavailable) {
		t.Errorf("expected ErrHardwareUnavailable for a blank serial, got %v", err)
	}
	if _, err := blank.ProcessorID(ctx); !errors.Is(err, kerrors.ErrHardwareUnavailable) {
		t.Errorf("expected ErrHardwareUnavailable for a placeholder processor id, got %v", err)
	}

	empty := Static{}
	if _, err := empty.BoardSerial(ctx); !errors.Is(err, kerrors.ErrHardwareUnavailable) {
		t.Errorf("expected ErrHardwareUnavailable for missing serial, got %v", err)
	}
	if _, err := empty.ProcessorID(ctx); !errors.Is(err, kerrors.ErrHardwareUnavailable) {
		t.Errorf("expected ErrHardwareUnavailable for missing processor id, got %v", err)
	}
}

func TestNormalizePlaceholders(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"To be filled by O.E.M.", ""},
		{"  Default string ", ""},
		{"None", ""},
		{"0", ""},
		{"", ""},
		{"PF2ABCDE", "PF2ABCDE"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLinuxBoardSerialFromSysfs(t *testing.T) {
	exec := &fakeExecutor{}
	p := NewPlatform().WithOS("linux").WithExecutor(exec).
		WithReadFile(fakeFiles(map[string]string{"/sys/class/dmi/id/board_serial": "L1HF65E00X9\n"}))

	serial, err := p.BoardSerial(context.Background())
	if err != nil {
		t.Fatalf("BoardSerial failed: %v", err)
	}
	if serial != "L1HF65E00X9" {
		t.Errorf("serial = %q", serial)
	}
	if len(exec.calls) != 0 {
		t.Errorf("expected no commands when sysfs is readable, got %v", exec.calls)
	}
}

func TestLinuxBoardSerialFallsBackToDmidecode(t *testing.T) {
	exec := &fakeExecutor{outputs: map[string]string{"dmidecode -s baseboard-serial-number": "DMI-42\n"}}
	p := NewPlatform().WithOS("linux").WithExecutor(exec).
		WithReadFile(fakeFiles(map[string]string{"/sys/class/dmi/id/board_serial": "To be filled by O.E.M."}))

	serial, err := p.BoardSerial(context.Background())
	if err != nil {
		t.Fatalf("BoardSerial failed: %v", err)
	}
	if serial != "DMI-42" {
		t.Errorf("serial = %q, want DMI-42", serial)
	}
}

func TestLinuxBoardSerialUnavailable(t *testing.T) {
	p := NewPlatform().WithOS("linux").WithExecutor(&fakeExecutor{}).WithReadFile(fakeFiles(nil))

	if _, err := p.BoardSerial(context.Background()); !errors.Is(err, kerrors.ErrHardwareUnavailable) {
		t.Errorf("expected ErrHardwareUnavailable, got %v", err)
	}
}

const x86CPUInfo = `processor	: 0
vendor_id	: GenuineIntel
cpu family	: 6
model		: 158
model name	: Intel(R) Core(TM) i7-8700 CPU @ 3.20GHz
stepping	: 10

processor	: 1
vendor_id	: GenuineIntel
cpu family	: 6
model		: 158
stepping	: 11
`

const armCPUInfo = `processor	: 0
model name	: ARMv7 Processor rev 4 (v7l)

processor	: 1
model name	: ARMv7 Processor rev 4 (v7l)

Hardware	: BCM2835
Revision	: a02082
Serial		: 00000000b7d3e1f2
`

func TestLinuxProcessorID(t *testing.T) {
	tests := []struct {
		name    string
		cpuinfo string
		want    string
	}{
		{"x86 uses first processor", x86CPUInfo, "GenuineIntel-6-158-10"},
		{"arm uses soc serial", armCPUInfo, "00000000b7d3e1f2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlatform().WithOS("linux").
				WithReadFile(fakeFiles(map[string]string{"/proc/cpuinfo": tt.cpuinfo}))
			id, err := p.ProcessorID(context.Background())
			if err != nil {
				t.Fatalf("ProcessorID failed: %v", err)
			}
			if id != tt.want {
				t.Errorf("ProcessorID() = %q, want %q", id, tt.want)
			}
		})
	}
}

func TestWindowsQuery(t *testing.T) {
	exec := &fakeExecutor{outputs: map[string]string{
		"powershell -NoProfile -NonInteractive -Command (Get-CimInstance -ClassName Win32_BaseBoard": "MB-1234\r\n",
		"wmic cpu get ProcessorId": "ProcessorId       \r\nBFEBFBFF000906EA  \r\n\r\n",
	}}
	p := NewPlatform().WithOS("windows").WithExecutor(exec)

	serial, err := p.BoardSerial(context.Background())
	if err != nil || serial != "MB-1234" {
		t.Errorf("BoardSerial() = %q, %v", serial, err)
	}

	id, err := p.ProcessorID(context.Background())
	if err != nil || id != "BFEBFBFF000906EA" {
		t.Errorf("ProcessorID() = %q, %v; want wmic fallback value", id, err)
	}
}

func TestWindowsQueryKeepsPadding(t *testing.T) {
	exec := &fakeExecutor{outputs: map[string]string{
		"powershell -NoProfile -NonInteractive -Command (Get-CimInstance -ClassName Win32_BaseBoard": "  MB-1234   \r\n",
	}}
	p := NewPlatform().WithOS("windows").WithExecutor(exec)

	serial, err := p.BoardSerial(context.Background())
	if err != nil || serial != "  MB-1234   " {
		t.Errorf("BoardSerial() = %q, %v; want the padded CIM value", serial, err)
	}
}

func TestDarwinQuery(t *testing.T) {
	exec := &fakeExecutor{outputs: map[string]string{
		"ioreg": `+-o J314sAP  <class IOPlatformExpertDevice>
    {
      "IOPlatformSerialNumber" = "C02XK0AAJGH5"
      "IOPlatformUUID" = "1F2E3D4C-0000-0000-0000-000000000000"
    }`,
		"sysctl -n machdep.cpu.brand_string": "Apple M1 Pro\n",
	}}
	p := NewPlatform().WithOS("darwin").WithExecutor(exec)

	serial, err := p.BoardSerial(context.Background())
	if err != nil || serial != "C02XK0AAJGH5" {
		t.Errorf("BoardSerial() = %q, %v", serial, err)
	}
	id, err := p.ProcessorID(context.Background())
	if err != nil || id != "Apple M1 Pro" {
		t.Errorf("ProcessorID() = %q, %v", id, err)
	}
}

func TestUnsupportedPlatform(t *testing.T) {
	p := NewPlatform().WithOS("plan9")
	if _, err := p.BoardSerial(context.Background()); !errors.Is(err, kerrors.ErrHardwareUnavailable) {
		t.Errorf("expected ErrHardwareUnavailable, got %v", err)
	}
}
