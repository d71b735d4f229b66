package dto

type BatchDeviceDTO struct {
	DeviceType   string `json:"deviceType" validate:"required"`
	SerialNumber string `json:"serialNumber" validate:"required"`
}

type CreateBatchDTO struct {
	SchoolCode string `json:"schoolCode" validate:"required"`
	SchoolName string `json:"schoolName" validate:"required"`
	// SendDate in YYYY-MM-DD.
	SendDate string           `json:"sendDate" validate:"required,datetime=2006-01-02"`
	Devices  []BatchDeviceDTO `json:"devices" validate:"required,min=1,dive"`
}

type CreatedBatchDTO struct {
	BatchID      uint64 `json:"batchId"`
	BatchNumber  string `json:"batchNumber"`
	Status       string `json:"status"`
	ReceivedDate string `json:"receivedDate,omitempty"`
}
