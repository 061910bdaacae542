package models

// Grade is a year-level cohort (stored in the classes collection).
type Grade struct {
	ID           string        `json:"id"`
	Code         string        `json:"code"`
	Name         LocalizedText `json:"name"`
	DisplayOrder int           `json:"display_order"`
	IsActive     bool          `json:"is_active"`
}

// Section is a named sub-group within a Grade, bounded by MaxStudents.
type Section struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	GradeID     string `json:"grade_id"`
	MaxStudents int    `json:"max_students"`
	IsActive    bool   `json:"is_active"`
}

// Subject is a teachable course area (stored in the courses collection).
type Subject struct {
	ID       string        `json:"id"`
	Code     string        `json:"code"`
	Name     LocalizedText `json:"name"`
	Icon     string        `json:"icon,omitempty"`
	Color    string        `json:"color,omitempty"`
	IsActive bool          `json:"is_active"`
}

// TeacherSubject is the many-to-many edge between a teacher and a subject.
type TeacherSubject struct {
	ID        string `json:"id"`
	TeacherID string `json:"teacher_id"`
	SubjectID string `json:"subject_id"`
}

// TeacherClassAssignment says a teacher teaches one subject to one specific
// grade and section. Multiple rows per TeacherSubject are normal.
type TeacherClassAssignment struct {
	ID        string `json:"id"`
	TeacherID string `json:"teacher_id"`
	SubjectID string `json:"subject_id"`
	GradeID   string `json:"grade_id"`
	SectionID string `json:"section_id"`
}
