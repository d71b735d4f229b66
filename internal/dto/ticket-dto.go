package dto

// CreateTicketDTO arrives as multipart form fields; attachments are handled
// separately by the controller.
type CreateTicketDTO struct {
	Requestor string `json:"requestor" validate:"required"`
	Category  string `json:"category" validate:"required,oneof='Hardware' 'Software'"`
	Request   string `json:"request" validate:"required"`
	Comments  string `json:"comments"`
	// BatchID is required when Category is Hardware; checked in the
	// service so the error can name the field.
	BatchID         *uint64              `json:"batch"`
	SelectedDevices []DeviceSelectionDTO `json:"selectedDevices" validate:"dive"`
}

// DeviceSelectionDTO picks one physical device out of the ticket's batch by
// serial number.
type DeviceSelectionDTO struct {
	SerialNumber string `json:"deviceId" validate:"required"`
	Description  string `json:"description"`
}

type CreatedTicketDTO struct {
	TicketID     uint64 `json:"ticketId"`
	TicketNumber string `json:"ticketNumber"`
}

type UpdateTicketStatusDTO struct {
	Status string `json:"status" validate:"required"`
}
