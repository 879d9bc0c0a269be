// Package kernel provides core domain primitives for the transit back office.
// It implements fundamental building blocks following Domain-Driven Design
// principles that are used throughout the domain model.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - Actor: A value object identifying the acting user and their privilege level
//   - Role: The privilege tiers that gate mutation, cancellation and financial visibility
//
// These primitives enforce domain invariants and validation rules, ensuring that
// domain objects are always in a valid state. They are designed to be immutable
// and thread-safe, making them suitable for concurrent use.
package kernel
