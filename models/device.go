package models

import "time"

// DeviceRegistration is the body a device submits to open a feed session.
// The account credential travels in the Authorization header, not here.
type DeviceRegistration struct {
	DeviceID   string `json:"device_id"`
	DeviceName string `json:"device_name"`
}

// Device is a registered device as tracked by the server.
type Device struct {
	DeviceID   string    `json:"device_id"`
	DeviceName string    `json:"device_name"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

// ZoneDeclaration asks the server to idempotently create a record
// namespace. Creating an existing zone succeeds without effect.
type ZoneDeclaration struct {
	Name string `json:"name"`
}
