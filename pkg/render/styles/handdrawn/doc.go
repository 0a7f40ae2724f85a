// Package handdrawn provides a sketchy, pen-on-paper visual style.
//
// # Visual Elements
//
//   - Wobbly lines: quadratic Béziers with jittered end and control points
//   - Doubled strokes: every border line is drawn twice, slightly apart
//   - Zig-zag hachure: fills are laid down as a continuous zig-zag at the
//     cell's hachure angle
//   - Paper grain: an <feTurbulence> displacement filter roughens fills
//
// # Reproducible Randomness
//
// All jitter derives from the style seed and the block ID:
//
//	style := handdrawn.New(42) // same seed = same wobble
//
// A scene rendered twice with the same seed is byte-identical, which keeps
// rendered artifacts cacheable.
package handdrawn
