package constants

// User roles. Role gates compare against these exact values from the token.
const (
	RoleAdmin = "Admin"
	RoleStaff = "Staff"
)

// Ticket categories.
const (
	CategoryHardware = "Hardware"
	CategorySoftware = "Software"
)

// Number prefixes for the account workflows; transaction lookup dispatches on
// these case-sensitively.
const (
	AccountRequestPrefix = "REQ-"
	AccountResetPrefix   = "RST-"
)
