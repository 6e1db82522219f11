package models

// CountResponse reports how many records an operation affected
// (anonymization sweeps, purges).
type CountResponse struct {
	Count int `json:"count"`
}

// ExpiredResponse lists the subjects whose retention period has ended.
type ExpiredResponse struct {
	Expired []ExpiredSubject `json:"expired"`

	// Length is the total number of entries in Expired.
	Length int `json:"length"`
}

// AuditLogResponse carries audit entries, most recent first.
type AuditLogResponse struct {
	Entries []AuditEntry `json:"entries"`

	// Length is the total number of entries in Entries.
	Length int `json:"length"`
}
