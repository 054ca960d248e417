// Package hexvault implements cell-partitioned, three-layer cascading
// encryption. Data lives inside named cells; each payload is sealed
// through one, two or all three cascading AES-256-GCM layers (AtRest,
// AccessGated, SessionBound), always starting from AtRest, each keyed by HKDF-SHA256 over a master key
// with an info string scoped to the owning cell, the layer, and whatever
// context identifiers that layer requires. No layer key is ever stored —
// every key is re-derived on demand and zeroised immediately after use.
//
// The only way a payload moves between cells is Vault.Traverse, which
// peels it under the source cell's keys, re-seals it under the
// destination cell's keys, and appends a record to an audit log that is
// fanned out synchronously to every registered sink.
package hexvault
