// Package jsonconf flattens JSON configuration documents into colon-delimited
// key paths, decrypting string leaves on the way.
//
// Loading is split in two steps. [ParseDocument] reads a document into an
// immutable [Node] tree; comments and trailing commas are accepted, field
// order and repeated field names are preserved. [Flatten] walks the tree and
// returns a [Config]:
//
//	{"A": {"B": "<sealed>", "C": 5}, "D": []}
//
// becomes
//
//	A:B = <decrypted>
//	A:C = 5
//	D   = null
//
// Only string leaves go through the transform; numbers and booleans keep
// their literal text. JSON null and empty objects or arrays below the root
// all become a null entry. Keys compare case-insensitively, and two leaves
// flattening to the same key are an error.
//
// Loading is all-or-nothing: on any error no Config is returned.
package jsonconf
