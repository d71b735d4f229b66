package dto

type CreateDeviceTypeDTO struct {
	Name string `json:"deviceName" validate:"required"`
}
