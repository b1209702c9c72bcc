// Package scenario loads pipeline scenarios from YAML and runs them.
//
// A scenario names a source of integers, a list of operator stages and,
// optionally, a subject that multicasts the source to several subscribers.
// Files are checked against an embedded CUE schema before they are decoded,
// then Build turns the stages into an rx pipeline and Run records every
// subscriber's events into a trace.
package scenario
