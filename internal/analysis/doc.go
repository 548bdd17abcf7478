// Package analysis inspects recorded body trajectories.
//
//   - [PowerSpectrum] and [DominantFrequency]: spectrum of a sampled signal
//   - [NewPhasePortrait]: position against velocity for one axis of a body
//   - [DetectBounces]: impacts found from velocity sign changes
//
// A circle bouncing on the ground shows up as a shrinking spiral in its
// (y, vy) portrait, and the ratio of rebound to impact speed at each bounce
// approximates the pair's effective restitution.
package analysis
