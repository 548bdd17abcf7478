// Package export renders scenes and body trajectories as SVG.
package export
