package domain

// Instructor is a driving instructor lessons are scheduled against
type Instructor struct {
	ID       int64
	SchoolID int64
	OfficeID *int64 // Office the instructor is assigned to, nil if not assigned
	Name     string
}

// InstructorDirectoryEntry is the public part of an instructor shown on the grid
type InstructorDirectoryEntry struct {
	Name string
}

// InstructorDirectory maps instructor IDs to their display data
type InstructorDirectory map[int64]InstructorDirectoryEntry

// NewInstructorDirectory builds a directory from a list of instructors
func NewInstructorDirectory(instructors []*Instructor) InstructorDirectory {
	dir := make(InstructorDirectory, len(instructors))
	for _, in := range instructors {
		dir[in.ID] = InstructorDirectoryEntry{Name: in.Name}
	}
	return dir
}
