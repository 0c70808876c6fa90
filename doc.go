// Package vecmodel maps application record types to a canonical vector-store
// collection schema.
//
// A schema is a validated, ordered list of fields classified as key, data or
// vector, with per-field storage metadata (index kind, distance function,
// dimensionality, full-text indexing). Definitions are derived from struct
// tags via Extract, from explicit field descriptors via ExtractFields, or
// hand-built through a Builder for tabular record shapes. A Registry memoizes
// one definition per record type for the process lifetime.
//
// vecmodel performs no network I/O and computes no embeddings; it hands a
// validated schema contract to storage-client code and converts record rows
// to and from a bulk container representation.
package vecmodel
