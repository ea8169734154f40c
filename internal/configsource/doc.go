// Package configsource assembles the live configuration from an ordered list
// of sources and merges them into one case-insensitive key space.
//
// Sources later in the list override earlier ones. A [FileSource] reads a
// JSON file; with a transform attached it becomes a secret source whose
// string leaves are decrypted while loading. [Builder.DecryptSecretFile]
// swaps the conventional plain "secrets.json" source for a decrypting one
// over the same path, keeping its position so precedence does not change:
//
//	b := configsource.NewBuilder()
//	b.AddJSONFile("appsettings.json", false, true)
//	b.AddJSONFile("secrets.json", true, false)
//	b.AddEnvironment("APP_")
//	b.DecryptSecretFile(configsource.DefaultSecretsFile, cipher.Decrypt, true, true)
//	root, err := b.Build(ctx)
//
// Build is all-or-nothing. A missing optional file contributes no keys and
// is not an error; every other failure aborts the build and nothing is
// merged.
//
// A [Watcher] rebuilds the root when a reload-enabled file changes. A failed
// rebuild keeps serving the previous root.
package configsource
