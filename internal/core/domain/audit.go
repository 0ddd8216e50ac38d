package domain

import "time"

// AuditAction identifies the kind of mutation recorded in the audit trail.
type AuditAction string

const (
	AuditCreated       AuditAction = "created"
	AuditUpdated       AuditAction = "updated"
	AuditDeleted       AuditAction = "deleted"
	AuditStatusChanged AuditAction = "status_changed"
)

// AuditEvent records a single mutation applied to a report.
type AuditEvent struct {
	ReportID  string      `json:"report_id" bson:"report_id"`
	Action    AuditAction `json:"action" bson:"action"`
	Actor     string      `json:"actor" bson:"actor"`
	Detail    string      `json:"detail,omitempty" bson:"detail,omitempty"`
	Timestamp time.Time   `json:"timestamp" bson:"timestamp"`
}
