package models

// Credentials is the configuration record written by setup.
type Credentials struct {
	Token       string `json:"-"` // never exposed
	ApplianceID string `json:"appliance_id"`
}

// Complete reports whether both the token and the appliance id are set.
func (c Credentials) Complete() bool {
	return c.Token != "" && c.ApplianceID != ""
}
