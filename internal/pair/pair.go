// Package pair manages key-value pairs, the sole currency of the kvboard
// demo: a pair is stored (or overwritten), listed, and deleted via the web
// UI, and persisted in postgres.
package pair

// Pair is a stored key-value pair. Key uniquely identifies the pair.
type Pair struct {
	Key   string
	Value string
}
