// Package collision implements the geometric tests of the engine.
//
// All functions are pure: they read body geometry and never mutate velocities.
//
//   - [IntersectAABBs]: broad phase bounding-box overlap
//   - [Collide]: exact overlap with separating axis tests, returning the
//     unit normal (pointing from the first body toward the second) and depth
//   - [FindContactPoints]: up to two world-space contact points
//
// Touching shapes (zero-width overlap) count as separated in every test.
package collision
