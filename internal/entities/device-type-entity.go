package entities

// DeviceType is one entry of the admin-curated device-name catalog used to
// populate batch device choices.
type DeviceType struct {
	ID   uint64 `json:"deviceTypeId"`
	Name string `json:"deviceName"`
}
