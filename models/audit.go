package models

import "time"

// AuditAction is the closed set of action tags recorded in the audit log.
type AuditAction string

const (
	ActionLogin          AuditAction = "login"
	ActionAddSubject     AuditAction = "add_subject"
	ActionViewSubjects   AuditAction = "view_subjects"
	ActionViewSubject    AuditAction = "view_subject"
	ActionAnonymizeAll   AuditAction = "anonymize_all"
	ActionEncrypt        AuditAction = "encrypt_data"
	ActionDecrypt        AuditAction = "decrypt_data"
	ActionRestore        AuditAction = "restore_data"
	ActionSetRetention   AuditAction = "set_retention"
	ActionSetConsent     AuditAction = "set_consent"
	ActionCheckExpired   AuditAction = "check_expired"
	ActionPurgeExpired   AuditAction = "delete_expired"
	ActionViewAuditLog   AuditAction = "view_audit_log"
	ActionExportAuditLog AuditAction = "export_audit_log"
	ActionViewActivity   AuditAction = "view_activity"
)

// AuditOutcome tags whether the audited operation succeeded.
type AuditOutcome string

const (
	OutcomeSuccess AuditOutcome = "success"
	OutcomeFailure AuditOutcome = "failure"
)

// AuditEntry is one immutable row of the "audit_log" table.
// Detail carries identifiers and counts only, never names, contacts or
// diagnoses.
type AuditEntry struct {
	ID        int64        `json:"id"`
	ActorID   int64        `json:"actor_id"`
	ActorRole string       `json:"actor_role"`
	Action    AuditAction  `json:"action"`
	Outcome   AuditOutcome `json:"outcome"`
	Timestamp time.Time    `json:"timestamp"`
	Detail    string       `json:"detail"`
}

// TableName returns the name of the database table associated with AuditEntry.
func (a AuditEntry) TableName() string {
	return "audit_log"
}

// ActivityStat is the number of audit entries recorded on one calendar day.
type ActivityStat struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}
