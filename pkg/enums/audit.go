package enums

// AuditAction identifies the privileged mutation an audit row records.
type AuditAction string

const (
	AuditActionCreateAdmin    AuditAction = "CREATE_ADMIN"
	AuditActionDeleteAdmin    AuditAction = "DELETE_ADMIN"
	AuditActionRestoreAdmin   AuditAction = "RESTORE_ADMIN"
	AuditActionApproveTeacher AuditAction = "APPROVE_TEACHER"
	AuditActionRejectTeacher  AuditAction = "REJECT_TEACHER"
)

// String implements fmt.Stringer.
func (a AuditAction) String() string {
	return string(a)
}

// AuditEntity identifies the entity family an audit row points at.
type AuditEntity string

const (
	AuditEntityUser AuditEntity = "USER"
)

// String implements fmt.Stringer.
func (a AuditEntity) String() string {
	return string(a)
}
