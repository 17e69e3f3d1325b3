package controllers

import "errors"

// ErrInvalidRequest marks structurally invalid input; routes answer it with 400.
var ErrInvalidRequest = errors.New("invalid request")
