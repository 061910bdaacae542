package models

// UserRole represents the available portal roles.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleTeacher UserRole = "teacher"
	RoleStudent UserRole = "student"
)

// User represents an account in the record store's users collection.
// Timestamps stay in the store's string form; this subsystem never does
// arithmetic on them.
type User struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	FullName  string   `json:"full_name"`
	Role      UserRole `json:"role"`
	Active    bool     `json:"active"`
	DeletedAt string   `json:"deleted_at,omitempty"`
	CreatedAt string   `json:"created_at,omitempty"`
}

// Profile is the 1:1 extension record owned by a User. Students carry a
// consistent (GradeID, SectionID) pair; teachers leave both empty.
type Profile struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	FirstNameAr    string `json:"first_name_ar"`
	LastNameAr     string `json:"last_name_ar"`
	GradeID        string `json:"grade_id,omitempty"`
	SectionID      string `json:"section_id,omitempty"`
	ParentPhone    string `json:"parent_phone,omitempty"`
	DateOfBirth    string `json:"date_of_birth,omitempty"`
	EnrollmentDate string `json:"enrollment_date,omitempty"`
}

// UserFilter captures filtering criteria for listing users.
type UserFilter struct {
	Role     *UserRole
	Active   *bool
	Search   string
	Page     int
	PageSize int
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
