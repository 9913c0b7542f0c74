package main

import "errors"

// exitError carries a process exit status without a message; output has
// already been printed by the command.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return ""
}

func exitCodeFor(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 2
}
