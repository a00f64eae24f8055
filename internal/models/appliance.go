package models

// ButtonPowerOff is the settings.button value the gateway reports for a unit
// that is switched off. Any other value, including "", means powered on.
const ButtonPowerOff = "power-off"

// ApplianceTypeAirCon is the appliance type of air conditioners.
const ApplianceTypeAirCon = "AC"

// Appliance is a live snapshot of one appliance, fetched per run.
type Appliance struct {
	ID             string `json:"id"`
	Type           string `json:"type"`
	Nickname       string `json:"nickname"`
	DeviceID       string `json:"device_id"`       // sensor device the appliance is attached to
	SetTemperature string `json:"set_temperature"` // as reported, e.g. "28"
	PowerOn        bool   `json:"power_on"`
}

// Device is a live snapshot of a sensor device.
type Device struct {
	ID              string  `json:"id"`
	RoomTemperature float64 `json:"room_temperature"`
	HasTemperature  bool    `json:"has_temperature"`
}

// PowerOnFromButton maps the reported button state to a power flag.
func PowerOnFromButton(button string) bool {
	return button != ButtonPowerOff
}

// IsAirCon reports whether the appliance is an air conditioner.
func (a Appliance) IsAirCon() bool {
	return a.Type == ApplianceTypeAirCon
}
