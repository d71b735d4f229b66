package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

type Ticket struct {
	ID           uint64      `json:"ticketId"`
	TicketNumber string      `json:"ticketNumber"`
	Requestor    string      `json:"requestor"`
	Category     string      `json:"category"`
	Request      string      `json:"request"`
	Comments     null.String `json:"comments"`
	Attachments  []string    `json:"attachments"`
	Status       string      `json:"status"`
	BatchID      null.Uint64 `json:"batchId"`
	CreatedAt    time.Time   `json:"date"`
	// ClosedAt is set iff Status == Completed.
	ClosedAt null.Time `json:"closedAt"`
	Archived bool      `json:"archived"`
}

// TicketDeviceRow is the joined view of one device association on a ticket:
// ticket -> ticket_devices -> batch_devices -> batches.
type TicketDeviceRow struct {
	TicketNumber     string `json:"ticketNumber"`
	Requestor        string `json:"requestor"`
	BatchID          uint64 `json:"batchId"`
	BatchNumber      string `json:"batchNumber"`
	DeviceType       string `json:"deviceType"`
	SerialNumber     string `json:"serialNumber"`
	IssueDescription string `json:"issueDescription"`
}
