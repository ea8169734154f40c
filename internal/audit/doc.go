// Package audit records sealedconf operations that change files on disk.
//
// Entries are appended as JSON Lines to .sealedconf-audit.jsonl in the
// working directory. Each entry carries a UTC timestamp, the operation,
// the files touched and the key fingerprint of the machine that did it, so
// a team can tell which machine a sealed file belongs to without exposing
// the key.
//
// Logging is best-effort: Log never returns an error. Read skips malformed
// lines left behind by interrupted writes.
package audit
