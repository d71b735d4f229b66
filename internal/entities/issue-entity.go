package entities

// Issue is one entry of the admin-curated catalog used to populate ticket
// subcategory choices.
type Issue struct {
	ID       uint64 `json:"issueId"`
	Name     string `json:"issueName"`
	Category string `json:"issueCategory"`
}
