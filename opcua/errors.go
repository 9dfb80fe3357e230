package opcua

import "errors"

// Sentinel errors returned by Client, mirroring the ua package's
// ErrXxx convention.
var (
	ErrNotConnected  = errors.New("opcua: client is not connected")
	ErrClosed        = errors.New("opcua: client is closed")
	ErrNoEndpoint    = errors.New("opcua: no endpoint matches the requested security policy/mode")
	ErrNoUserPolicy  = errors.New("opcua: identity has no matching UserTokenPolicy on this endpoint")
	ErrRequestTimeout = errors.New("opcua: request timed out waiting for a response")
)
