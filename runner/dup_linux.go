//go:build linux

package runner

import "golang.org/x/sys/unix"

// dupTo makes newfd refer to the same file as oldfd. Linux lacks dup2 on
// newer architectures, so go through dup3.
func dupTo(oldfd, newfd int) error {
	return unix.Dup3(oldfd, newfd, 0)
}
