package constants

import "strings"

// Ticket statuses. Admins may move a ticket between any two of these; the
// engine only controls the closedAt side effect.
const (
	TicketStatusPending    = "Pending"
	TicketStatusInProgress = "In Progress"
	TicketStatusOnHold     = "On Hold"
	TicketStatusCompleted  = "Completed"
	TicketStatusRejected   = "Rejected"
)

var TicketStatuses = []string{
	TicketStatusPending,
	TicketStatusInProgress,
	TicketStatusOnHold,
	TicketStatusCompleted,
	TicketStatusRejected,
}

// Batch statuses. Pending is the only non-terminal state.
const (
	BatchStatusPending   = "Pending"
	BatchStatusDelivered = "Delivered"
	BatchStatusCancelled = "Cancelled"
)

var BatchStatuses = []string{
	BatchStatusPending,
	BatchStatusDelivered,
	BatchStatusCancelled,
}

// Account request / reset request statuses.
const (
	RequestStatusPending    = "Pending"
	RequestStatusInProgress = "In Progress"
	RequestStatusCompleted  = "Completed"
	RequestStatusRejected   = "Rejected"
)

var RequestStatuses = []string{
	RequestStatusPending,
	RequestStatusInProgress,
	RequestStatusCompleted,
	RequestStatusRejected,
}

// batchTransitions is the explicit from-state table: a batch may only leave
// Pending, and only for Delivered or Cancelled.
var batchTransitions = map[string][]string{
	BatchStatusPending:   {BatchStatusDelivered, BatchStatusCancelled},
	BatchStatusDelivered: {},
	BatchStatusCancelled: {},
}

func IsValidTicketStatus(s string) bool { return contains(TicketStatuses, s) }

func IsValidBatchStatus(s string) bool { return contains(BatchStatuses, s) }

func IsValidRequestStatus(s string) bool { return contains(RequestStatuses, s) }

// CanTransitionBatch reports whether a batch in `from` may move to `to`.
func CanTransitionBatch(from, to string) bool {
	return contains(batchTransitions[from], to)
}

// NormalizeStatus resolves a case-insensitive status filter value against the
// closed enum for the entity; returns "" when the value is unknown.
func NormalizeStatus(valid []string, s string) string {
	for _, v := range valid {
		if strings.EqualFold(v, s) {
			return v
		}
	}
	return ""
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
