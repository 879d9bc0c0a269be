// Package guard provides a defensive programming pattern that ensures value
// objects, commands, and entities are only created through their designated
// constructor functions. Embedding a ConstructorGuard in a struct makes a
// zero-value instance distinguishable from a properly constructed one.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a
// nil validation error, so validation always fails with a meaningful message.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as constructed through its factory function.
// The zero value is "not constructed" and fails Validate.
//
// Example usage:
//
//	type Money struct {
//	    amount   int
//	    currency string
//	    guard    guard.ConstructorGuard
//	}
//
//	func NewMoney(amount int, currency string) (Money, error) {
//	    // validate inputs...
//	    return Money{amount: amount, currency: currency, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (m Money) Validate() error {
//	    return m.guard.Validate(ErrMoneyNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks the embedding object as
// properly constructed. Call it in the object's constructor.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil if the object was constructed through its constructor,
// otherwise the provided validation error (or ErrDefaultConstructorGuard when
// validationError is nil).
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
