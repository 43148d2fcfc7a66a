// Package parallel runs independent jobs, one per image, on a fixed set of
// worker goroutines.
package parallel
