package tools

import "errors"

var (
	ErrConfiguration = errors.New("tool configuration error")
	ErrUpstream      = errors.New("upstream call failed")
	ErrInvalidArgs   = errors.New("invalid tool arguments")
)
