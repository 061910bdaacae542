package models

import "time"

// AuditAction constants represent actions recorded in the audit trail.
const (
	AuditActionLogin          = "LOGIN"
	AuditActionStudentCreate  = "STUDENT_CREATE"
	AuditActionTeacherCreate  = "TEACHER_CREATE"
	AuditActionUserDeactivate = "USER_DEACTIVATE"
	AuditActionUserReactivate = "USER_REACTIVATE"
	AuditActionUserPurge      = "USER_PURGE"
	AuditActionClassReassign  = "CLASS_REASSIGN"
	AuditActionOrphanedUser   = "ORPHANED_USER"
)

// AuditLog represents an audit trail record kept in the local database.
type AuditLog struct {
	ID         string    `db:"id" json:"id"`
	ActorID    *string   `db:"actor_id" json:"actor_id,omitempty"`
	Action     string    `db:"action" json:"action"`
	Resource   string    `db:"resource" json:"resource"`
	ResourceID *string   `db:"resource_id" json:"resource_id,omitempty"`
	OldValues  []byte    `db:"old_values" json:"old_values,omitempty"`
	NewValues  []byte    `db:"new_values" json:"new_values,omitempty"`
	IPAddress  string    `db:"ip_address" json:"ip_address"`
	UserAgent  string    `db:"user_agent" json:"user_agent"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// AuditLogFilter captures criteria for listing audit entries.
type AuditLogFilter struct {
	Action   string
	Resource string
	Page     int
	PageSize int
}
