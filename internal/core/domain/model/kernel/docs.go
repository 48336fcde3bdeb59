// Package kernel provides the core domain primitives shared by every EcoLoop
// aggregate.
//
// The package includes:
//   - UUID: a value object for entity identifiers with validation and comparison
//   - Money helpers: cent rounding and percentage application for settlement math
//   - ConstructorGuard: a pattern ensuring aggregates come through their constructors
//
// These primitives are immutable and safe for concurrent use; they enforce
// the validation rules that keep domain objects in a valid state.
package kernel
