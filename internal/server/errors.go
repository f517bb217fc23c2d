package server

import "errors"

var (
	errNoHTTPAddress = errors.New("no HTTP address to listen on")
)
