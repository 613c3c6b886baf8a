// Package mat3 provides fixed-size 3-vector and 3×3 matrix primitives
// for geometric transforms in double precision, plus a single-precision
// bridge for callers that store points as float32.
//
// Design:
//
//   - Vec3 and Mat3 are plain arrays ([3]float64, [3][3]float64).
//     They are copied by value, compared with ==, and never allocate.
//   - Every operation is pure: methods take value receivers and return
//     new values; nothing mutates in place.
//   - There are no error returns. Solve and Invert on a singular matrix
//     divide through anyway and yield non-finite components (±Inf/NaN)
//     per IEEE-754 — they never panic. Callers that must know can check
//     Det() themselves.
//
// The package exists to serve Newton-style iteration on 3-D coordinate
// mappings, where the inner loop solves J·δ = r thousands of times and
// any interface indirection or heap traffic would dominate the cost.
//
// Complexity: all operations are O(1) with small constants
// (Solve and Invert are each around 40 flops).
package mat3
