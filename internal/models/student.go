package models

import "time"

// Gender codes used on registration forms.
const (
	GenderMale   = "L"
	GenderFemale = "P"
)

// Student represents a child registered in the kindergarten.
type Student struct {
	ID                 string    `db:"id" json:"id"`
	RegistrationNumber string    `db:"registration_number" json:"registration_number"`
	Name               string    `db:"name" json:"name"`
	Gender             string    `db:"gender" json:"gender"`
	BirthDate          time.Time `db:"birth_date" json:"birth_date"`
	Address            string    `db:"address" json:"address"`
	Phone              string    `db:"phone" json:"phone"`
	GuardianName       string    `db:"guardian_name" json:"guardian_name"`
	TuitionAmount      int64     `db:"tuition_amount" json:"tuition_amount"`
	ClassID            string    `db:"class_id" json:"class_id"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// StudentFilter encapsulates allowed search parameters for listing students.
type StudentFilter struct {
	Search    string
	ClassID   string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// StudentDetail contains student information with its class name.
type StudentDetail struct {
	Student
	ClassName string `db:"class_name" json:"class_name"`
}
