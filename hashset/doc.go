// Package hashset provides the presence-only key set used by the sequence
// engine's deduplication and set operators.
package hashset
