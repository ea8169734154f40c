package keyring

import (
	"bytes"
	"context"
	"crypto/sha512"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	kerrors "github.com/PolarWolf314/sealedconf/internal/errors"
	"github.com/PolarWolf314/sealedconf/internal/hardware"
)

// countingProvider wraps a Static provider and counts queries.
type countingProvider struct {
	hardware.Static
	serialCalls atomic.Int32
	cpuCalls    atomic.Int32
}

func (c *countingProvider) BoardSerial(ctx context.Context) (string, error) {
	c.serialCalls.Add(1)
	return c.Static.BoardSerial(ctx)
}

func (c *countingProvider) ProcessorID(ctx context.Context) (string, error) {
	c.cpuCalls.Add(1)
	return c.Static.ProcessorID(ctx)
}

func newDeriver(t *testing.T, p hardware.Provider, opts ...Option) *Deriver {
	t.Helper()
	d, err := New(p, opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return d
}

func TestKeyMatchesDigestPrefix(t *testing.T) {
	d := newDeriver(t, hardware.Static{Serial: "SERIAL-1", CPU: "CPU-1"})

	key, err := d.Key(context.Background())
	if err != nil {
		t.Fatalf("Key failed: %v", err)
	}
	want := sha512.Sum512([]byte("SERIAL-1" + DefaultSalt))
	if !bytes.Equal(key[:], want[:KeySize]) {
		t.Errorf("key is not the first %d bytes of SHA-512(serial+salt)", KeySize)
	}

	iv, err := d.IV(context.Background())
	if err != nil {
		t.Fatalf("IV failed: %v", err)
	}
	wantIV := sha512.Sum512([]byte("CPU-1" + DefaultSalt))
	if !bytes.Equal(iv[:], wantIV[:IVSize]) {
		t.Errorf("iv is not the first %d bytes of SHA-512(cpu+salt)", IVSize)
	}
}

func TestDerivationIsDeterministicAcrossInstances(t *testing.T) {
	ids := hardware.Static{Serial: "PF2ABCDE", CPU: "BFEBFBFF000906EA"}
	first := newDeriver(t, ids)
	second := newDeriver(t, ids)

	a, err := first.Material(context.Background())
	if err != nil {
		t.Fatalf("Material failed: %v", err)
	}
	b, err := second.Material(context.Background())
	if err != nil {
		t.Fatalf("Material failed: %v", err)
	}
	if a != b {
		t.Error("two derivers over the same identifiers produced different material")
	}
}

func TestDifferentMachinesDiffer(t *testing.T) {
	a, _ := newDeriver(t, hardware.Static{Serial: "A", CPU: "X"}).Material(context.Background())
	b, _ := newDeriver(t, hardware.Static{Serial: "B", CPU: "Y"}).Material(context.Background())
	if a.Key == b.Key || a.IV == b.IV {
		t.Error("different identifiers produced identical key material")
	}
}

func TestSaltChangesMaterial(t *testing.T) {
	ids := hardware.Static{Serial: "A", CPU: "X"}
	a, _ := newDeriver(t, ids).Key(context.Background())
	b, _ := newDeriver(t, ids, WithSalt("0f8b7a4e-4df3-4c1e-9a43-5cb1f0d2a911")).Key(context.Background())
	if a == b {
		t.Error("custom salt did not change the key")
	}
}

func TestInvalidSalt(t *testing.T) {
	_, err := New(hardware.Static{Serial: "A", CPU: "X"}, WithSalt("not-a-uuid"))
	if !errors.Is(err, kerrors.ErrInvalidSalt) {
		t.Errorf("expected ErrInvalidSalt, got %v", err)
	}
}

func TestHardwareQueriedOnce(t *testing.T) {
	p := &countingProvider{Static: hardware.Static{Serial: "A", CPU: "X"}}
	d := newDeriver(t, p)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := d.Material(context.Background()); err != nil {
				t.Errorf("Material failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := p.serialCalls.Load(); got != 1 {
		t.Errorf("board serial queried %d times, want 1", got)
	}
	if got := p.cpuCalls.Load(); got != 1 {
		t.Errorf("processor id queried %d times, want 1", got)
	}
}

func TestHardwareUnavailable(t *testing.T) {
	tests := []struct {
		name string
		ids  hardware.Static
	}{
		{"missing serial", hardware.Static{CPU: "X"}},
		{"missing processor id", hardware.Static{Serial: "A"}},
		{"placeholder serial", hardware.Static{Serial: "To be filled by O.E.M.", CPU: "X"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDeriver(t, tt.ids)
			if _, err := d.Material(context.Background()); !errors.Is(err, kerrors.ErrHardwareUnavailable) {
				t.Errorf("expected ErrHardwareUnavailable, got %v", err)
			}
		})
	}
}

func TestFailureIsNotCached(t *testing.T) {
	p := &countingProvider{Static: hardware.Static{CPU: "X"}}
	d := newDeriver(t, p)

	if _, err := d.Key(context.Background()); err == nil {
		t.Fatal("expected error for missing serial")
	}
	p.Static.Serial = "LATE"
	if _, err := d.Key(context.Background()); err != nil {
		t.Fatalf("Key should succeed once the serial is available: %v", err)
	}
	if got := p.serialCalls.Load(); got != 2 {
		t.Errorf("board serial queried %d times, want 2", got)
	}
}

func TestMaterialIsRedacted(t *testing.T) {
	m, err := newDeriver(t, hardware.Static{Serial: "A", CPU: "X"}).Material(context.Background())
	if err != nil {
		t.Fatalf("Material failed: %v", err)
	}
	for _, out := range []string{fmt.Sprint(m), fmt.Sprintf("%v", m), fmt.Sprintf("%#v", m)} {
		if out != "keyring.Material{REDACTED}" {
			t.Errorf("material printed as %q", out)
		}
	}
}

func TestFingerprint(t *testing.T) {
	ids := hardware.Static{Serial: "A", CPU: "X"}
	a, err := newDeriver(t, ids).Fingerprint(context.Background())
	if err != nil {
		t.Fatalf("Fingerprint failed: %v", err)
	}
	b, _ := newDeriver(t, ids).Fingerprint(context.Background())
	if a != b || len(a) != 16 {
		t.Errorf("fingerprints %q and %q should be equal 16-char hex strings", a, b)
	}
	c, _ := newDeriver(t, hardware.Static{Serial: "B", CPU: "X"}).Fingerprint(context.Background())
	if a == c {
		t.Error("fingerprint did not change with the board serial")
	}
}
