// Package trajectory reads the text output of lattice simulations.
//
// Two formats are understood:
//
//   - frame streams, one record per line: a time, a tab, and the
//     comma-separated lattice positions occupied at that time
//     (no second field means an empty lattice)
//   - numeric column files such as "time<TAB>count" or "index<TAB>value",
//     separated by any mix of whitespace and commas
//
// Lines starting with '#' are headers and are skipped. [Open] picks a
// decoder from the file name: .zst and .gz are decompressed on the fly,
// anything else is memory mapped.
package trajectory
