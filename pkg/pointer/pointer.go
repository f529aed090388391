// Copyright (c) 2026 OpsDesk. All rights reserved.

/*
Package pointer provides utilities for working with pointers in Go.

It heavily utilizes generics to simplify the dereferencing of pointers
cleanly, avoiding boilerplate code in the application logic.
*/
package pointer

// Val safely dereferences a pointer.
// If the pointer is nil, it returns the zero value of the underlying type.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
