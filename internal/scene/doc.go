// Package scene loads warp scenarios from YAML documents.
//
// A scene names one warp shape with its parameters, the points to push
// through it, the transform direction, and optional solver overrides.
// Documents are gated on schema_version so old files fail loudly instead
// of half-parsing. Shape kinds resolve through a registry, so callers can
// add their own builders next to the built-in ones (identity, affine,
// sine, twist, radial, grid).
//
// Structure:
//
//	scene.go    - document schema, validation, Scene, Load/Parse
//	builders.go - kind registry and the built-in shape builders
package scene
