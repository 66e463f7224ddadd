package app

import "errors"

// ErrQuit signals a clean shutdown request from the input loop.
var ErrQuit = errors.New("quit")
