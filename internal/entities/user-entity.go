package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// User is a portal account: the division admin or one staff account per
// school. Accounts are never hard-deleted.
type User struct {
	ID            uint64      `json:"userId"`
	Username      string      `json:"username"`
	Password      string      `json:"-"`
	Role          string      `json:"role"`
	District      null.String `json:"district"`
	SchoolCode    null.String `json:"schoolCode"`
	School        null.String `json:"school"`
	Address       null.String `json:"address"`
	Principal     null.String `json:"principal"`
	ContactNumber null.String `json:"number"`
	Email         null.String `json:"email"`
	CreatedAt     time.Time   `json:"createdAt"`
}
