// Package body defines the rigid bodies simulated by the world.
//
// Bodies are created only through the validated factories [NewCircle] and
// [NewBox]. A factory returns either a body or a [*ValidationError], never both.
//
// World-space geometry is derived lazily: [Body.TransformedVertices] and
// [Body.AABB] recompute only after a position or angle change marked them stale.
//
// # Thread Safety
//
// Bodies are NOT thread-safe. The owning world mutates them in place during a
// step and assumes exclusive access.
package body
