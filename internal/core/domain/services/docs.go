// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the recycling system. It implements
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - Settler: A domain service computing order settlements from the price
//     snapshot, measured weight, impurity deduction, and tiered bonus rules
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
