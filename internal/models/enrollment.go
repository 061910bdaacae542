package models

// StudentEnrollmentResult summarises a successful student creation.
type StudentEnrollmentResult struct {
	Success   bool     `json:"success"`
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	Role      UserRole `json:"role"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	GradeID   string   `json:"grade_id"`
	SectionID string   `json:"section_id"`
}

// AssignmentError records one failed (subject, grade, section) tuple with
// enough context to diagnose it after the fact.
type AssignmentError struct {
	SubjectID string `json:"subject_id"`
	GradeID   string `json:"grade_id,omitempty"`
	SectionID string `json:"section_id,omitempty"`
	Message   string `json:"message"`
}

// TeacherCreationResult summarises a teacher creation. Success means the user
// and profile exist; callers must inspect AssignmentsFailed to know whether
// any class assignments need remediation.
type TeacherCreationResult struct {
	Success            bool              `json:"success"`
	ID                 string            `json:"id"`
	Email              string            `json:"email"`
	Role               UserRole          `json:"role"`
	FirstName          string            `json:"first_name"`
	LastName           string            `json:"last_name"`
	AssignmentsCreated int               `json:"assignments_created"`
	AssignmentsFailed  int               `json:"assignments_failed"`
	Errors             []AssignmentError `json:"errors,omitempty"`
}

// DependencyReport is the pre-deletion impact summary for a user. Kinds with a
// zero count are omitted from Dependencies.
type DependencyReport struct {
	UserID       string         `json:"user_id"`
	Dependencies map[string]int `json:"dependencies"`
	TotalImpact  int            `json:"total_impact"`
}

// ReassignmentResult summarises a best-effort class reassignment between two
// teachers.
type ReassignmentResult struct {
	OldTeacherID string            `json:"old_teacher_id"`
	NewTeacherID string            `json:"new_teacher_id"`
	Reassigned   int               `json:"reassigned"`
	Failed       int               `json:"failed"`
	Errors       []AssignmentError `json:"errors,omitempty"`
}
