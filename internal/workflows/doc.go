// Package workflows provides high-level orchestration for sealedconf commands.
//
// Workflows coordinate the keyring, seal, jsonconf and configs packages to
// implement complete user-facing features, independent of CLI concerns
// like flag parsing, spinners and output formatting. The cmd package parses
// flags, calls a workflow and formats its result.
//
// # Available Workflows
//
//   - Seal: encrypts every string value of a JSON file
//   - Init: writes a default .sealedconf.toml
//   - Doctor: checks hardware identifiers, key derivation and the secrets file
//
// Workflows that change files record an audit entry.
package workflows
