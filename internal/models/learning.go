package models

import "time"

type ExplainRequest struct {
	Concept string `json:"concept" validate:"required,max=500"`
	Context string `json:"context" validate:"max=4000"`
}

type ClassroomCourse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Section string `json:"section,omitempty"`
	Room    string `json:"room,omitempty"`
	Link    string `json:"link,omitempty"`
}

type ClassroomAssignment struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	CourseName  string    `json:"courseName"`
}
