// Package seq provides a deferred-execution sequence engine.
//
// Building a chain performs no work: every operator returns a new *Seq that
// closes over its parent and a factory producing a fresh, private context.
// Work happens only when a realization (ToList, Count, First, ...) pulls from
// the chain, and each realization obtains its own context graph, so one
// built chain can be consumed any number of times independently.
//
// # Sources
//
// Any Iterable can feed a chain: slices (FromSlice, From, Of), maps
// (FromMap), other chains, sort results, lookups, raw iteration triples
// (FromTriple) and bare step functions (FromStep). Range and Repeat generate
// integer runs and repeated values.
//
// # Operators
//
// Lazy:
//
//   - Where, WhereAt: keep elements matching a predicate
//   - Select: project each element (1-based position)
//   - SelectMany: project each element to an Iterable and flatten
//   - Concat, Append, Prepend: join sequences or inject one element
//   - Distinct, Union: deduplicate by key
//   - Zip, ZipWith: pair two sequences in lockstep
//   - Take, Skip, TakeWhile, SkipWhile, DefaultIfEmpty
//
// Partially or fully materializing on first pull:
//
//   - Except, Intersect: drain the second source into a key set
//   - GroupBy, GroupBySelect, GroupByResult: drain into a Lookup
//   - Sort, SortBy, SortFunc (+Descending), ThenBy: drain and sort
//   - Reverse
//
// Traced passes a chain through unchanged and wraps each traversal in an
// OpenTelemetry span.
//
// # Errors
//
// Chaining an operator with a missing argument panics with an
// *errors.AppError; Build turns that panic into a returned error. Everything
// that goes wrong while pulling is returned by the realization.
//
// # Settings
//
// Configure and Apply install the logger, metric instruments and sort
// stability used by every chain. Reset restores the defaults.
//
// # Usage
//
//	adults := seq.From(people).Where(func(p Person) bool { return p.Age > 25 })
//	names := seq.Select(adults, func(p Person, _ int) string { return p.Name })
//	sorted := seq.Sort(names)
//	list, err := seq.ToList(sorted)
package seq
