// Package trace records the events observed by scenario subscribers as a
// flat, ordered log.
//
// Every recorded entry is stamped with a logical sequence number, not wall time,
// so re-running the same scenario produces the same trace byte for byte.
// Values are rendered as text and normalised to Unicode NFC before they are
// stored, which keeps traces comparable across platforms and persisted runs.
package trace
