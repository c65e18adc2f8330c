package services

import "errors"

var (
	// ErrUpstreamUnavailable means the remote service could not be reached or
	// answered with something that is not a valid payload
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
	// ErrUpstreamRejected means the remote service answered success=false
	ErrUpstreamRejected  = errors.New("upstream service rejected the request")
	ErrInvalidPeriod     = errors.New("invalid period")
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskNotReady      = errors.New("export is not ready")
	ErrInvalidToken      = errors.New("invalid token")
)
