//go:build darwin

package main

import "golang.org/x/sys/unix"

// makeRaw turns off line buffering and echo on fd so single keys can be
// read. The returned func restores the previous state.
func makeRaw(fd int) (func(), error) {
	old, err := unix.IoctlGetTermios(fd, unix.TIOCGETA)
	if err != nil {
		return nil, err
	}

	raw := *old
	raw.Lflag &^= unix.ICANON | unix.ECHO
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(fd, unix.TIOCSETA, &raw); err != nil {
		return nil, err
	}

	return func() { unix.IoctlSetTermios(fd, unix.TIOCSETA, old) }, nil
}
