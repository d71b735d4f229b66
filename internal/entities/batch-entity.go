package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

type Batch struct {
	ID          uint64 `json:"batchId"`
	BatchNumber string `json:"batchNumber"`
	SchoolCode  string `json:"schoolCode"`
	SchoolName  string `json:"schoolName"`
	// SendDate is a date-only value; time-of-day is never significant.
	SendDate time.Time `json:"sendDate"`
	Status   string    `json:"status"`
	// ReceivedDate is set iff the batch reached Delivered, CancelledDate
	// iff it was Cancelled.
	ReceivedDate  null.Time `json:"receivedDate"`
	CancelledDate null.Time `json:"cancelledDate"`
	CreatedAt     time.Time `json:"createdAt"`
}

// BatchDevice is owned exclusively by its batch. Serial numbers are unique
// system-wide.
type BatchDevice struct {
	ID           uint64 `json:"batchDevicesId"`
	BatchID      uint64 `json:"batchId"`
	DeviceType   string `json:"deviceType"`
	SerialNumber string `json:"serialNumber"`
}
