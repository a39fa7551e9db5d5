// Package guard provides ConstructorGuard, a marker embedded in value objects,
// entities and commands to detect zero-value instances that bypassed their
// constructor (and therefore its validation).
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether its owner was built through a constructor.
//
// Example:
//
//	type SplitLine struct {
//	    lineID kernel.UUID
//	    qty    int
//	    guard  guard.ConstructorGuard
//	}
//
//	func (l SplitLine) Validate() error {
//	    return l.guard.Validate(ErrSplitLineIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil)
// if the owner was not built through its constructor.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
