// Package world owns a collection of rigid bodies and advances them in time.
//
// Each call to Step runs a fixed number of sub-steps. A sub-step integrates
// every body, collects candidate pairs whose bounding boxes overlap, then for
// each pair that truly collides pushes the bodies apart and resolves the
// contact with sequential impulses.
//
// A World is not safe for concurrent use. Bodies may only be added or removed
// between calls to Step.
package world
