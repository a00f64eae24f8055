package service

import "errors"

var (
	ErrApplianceNotFound = errors.New("configured appliance not found")
	ErrDeviceIDMissing   = errors.New("appliance has no device id")
	ErrDeviceNotFound    = errors.New("device not found")
	ErrTelemetryMissing  = errors.New("device reports no room temperature")
	ErrNoAirConditioners = errors.New("no air conditioners on this account")
	ErrSetupCancelled    = errors.New("setup cancelled")
	ErrEmptyToken        = errors.New("access token is empty")
)
