// Package hardware reads the host identifiers that seed sealedconf's key
// derivation: the baseboard serial number and the processor identifier.
//
// A [Provider] answers both queries. [Platform] asks the operating system
// (sysfs and dmidecode on Linux, CIM/WMI on Windows, ioreg and sysctl on
// macOS); [Static] returns fixed values and is what tests use.
//
// An identifier that the platform does not report, or reports as a vendor
// placeholder such as "To be filled by O.E.M.", is treated as absent and
// surfaces as ErrHardwareUnavailable. Callers must never fall back to an empty
// identifier.
//
// External commands run through a [CommandExecutor] so that tests can replace
// them:
//
//	p := hardware.NewPlatform().WithExecutor(fakeExecutor)
//	serial, err := p.BoardSerial(ctx)
package hardware
