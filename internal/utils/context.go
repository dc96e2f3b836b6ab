// Package utils provides small helpers shared across packages: type-safe
// context keys, JWT generation and validation for device sessions, and
// JSON response writing.
package utils

import "context"

// contextKey is a private type for context keys. Using a dedicated type
// instead of a plain string prevents collisions with other packages that
// store string-keyed values in the context.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// DeviceIDCtxKey is the key under which the authenticated device id is
// stored in a request context by the auth middleware.
var DeviceIDCtxKey = contextKey("deviceID")

// GetDeviceIDFromContext retrieves the authenticated device id from the
// context. ok is false when the value is missing or has the wrong type.
func GetDeviceIDFromContext(ctx context.Context) (string, bool) {
	deviceID, ok := ctx.Value(DeviceIDCtxKey).(string)
	return deviceID, ok
}
