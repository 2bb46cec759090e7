// Package errors provides structured error types for the memcap library.
//
// Errors are categorized by Kind. The recoverable failures in this library
// are few and flat, so there is no builder: use the convenience
// constructors and match with the standard errors.Is against the exported
// sentinels:
//
//	addr, err := memcap.New[memcap.Writable](p)
//	if errors.Is(err, memcaperrors.ErrNilPointer) {
//		// p was nil
//	}
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
