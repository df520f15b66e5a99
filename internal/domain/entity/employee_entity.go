package entity

import "time"

// Employee is the HR profile attached one-to-one to a User.
type Employee struct {
	UserID       int64
	EmployeeID   string
	Phone        string
	Address      string
	FathersName  string
	AadharNo     string
	DateOfBirth  time.Time
	WorkPosition string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
