// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, hashing,
// HTTP response writing, HTTP client initialization, JWT token generation
// and validation, and other common operations.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// DeviceIDCtxKey is the key used to store the device identifier in the
// context. Used together with GetDeviceIDFromContext for type-safe retrieval
// of the device ID from context.Context.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.DeviceIDCtxKey, "instance-42")
var DeviceIDCtxKey = contextKey("deviceID")

// GetDeviceIDFromContext retrieves the device identifier from the context.
//
// Returns the device ID and an ok flag:
//   - ok == true  — value is found and has the correct string type
//   - ok == false — value is missing or has an unexpected type
//
// Example usage:
//
//	deviceID, ok := utils.GetDeviceIDFromContext(ctx)
//	if !ok {
//	    // handle missing device in context
//	}
func GetDeviceIDFromContext(ctx context.Context) (string, bool) {
	deviceID, ok := ctx.Value(DeviceIDCtxKey).(string)
	return deviceID, ok
}
