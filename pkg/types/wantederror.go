package types

import "fmt"

// WantedError describes an expected error in tests. Each error kind in this
// package implements it.
type WantedError interface {
	CompareErr(error) error
}

// NilError expects no error at all.
type NilError struct{}

func (NilError) CompareErr(other error) error {
	if other == nil {
		return nil
	}
	return fmt.Errorf("wanted `nil`; found `%T`: %v", other, other)
}

// WantedErrFunc adapts a comparison function to `WantedError`.
type WantedErrFunc func(error) error

func (wef WantedErrFunc) CompareErr(other error) error {
	return wef(other)
}

// CompareErr checks `found` against `wanted`. A nil `wanted` expects no
// error.
func CompareErr(wanted WantedError, found error) error {
	if wanted == nil {
		wanted = NilError{}
	}
	if found == nil {
		if _, ok := wanted.(NilError); !ok {
			return fmt.Errorf("wanted an error; found `nil`")
		}
		return nil
	}
	return wanted.CompareErr(found)
}
