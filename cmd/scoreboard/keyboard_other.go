//go:build !linux && !darwin

package main

// makeRaw is a no-op here; keys are delivered after Enter.
func makeRaw(fd int) (func(), error) {
	return func() {}, nil
}
