// Package reduce turns simulation output into summary tables: time-weighted
// occupancy histograms, per-position occupation probabilities, transition
// counts, averages over replicate runs, and comparisons against the
// grand-canonical prediction of package tonks.
package reduce
