package application

import (
	"time"

	"github.com/oksasatya/go-hrm-service/internal/domain/entity"
)

// UserProfile is the public projection of a user returned by auth and admin
// endpoints. It never carries the password hash.
type UserProfile struct {
	UserID       int64            `json:"user_id"`
	Email        string           `json:"email"`
	FullName     string           `json:"full_name"`
	ProfilePhoto string           `json:"profile_photo,omitempty"`
	IsActive     bool             `json:"is_active"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	LastActive   *time.Time       `json:"last_active,omitempty"`
	Role         string           `json:"role,omitempty"`
	Roles        []string         `json:"roles"`
	Employee     *EmployeeProfile `json:"employee,omitempty"`
}

type EmployeeProfile struct {
	EmployeeID   string    `json:"employee_id"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	FathersName  string    `json:"fathers_name"`
	AadharNo     string    `json:"aadhar_no"`
	DateOfBirth  time.Time `json:"date_of_birth"`
	WorkPosition string    `json:"work_position"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toUserProfile(u *entity.User, roles []string, e *entity.Employee) *UserProfile {
	if roles == nil {
		roles = []string{}
	}
	p := &UserProfile{
		UserID:       u.ID,
		Email:        u.Email,
		FullName:     u.FullName,
		ProfilePhoto: u.ProfilePhoto,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
		LastActive:   u.LastActive,
		Roles:        roles,
	}
	if len(roles) > 0 {
		p.Role = roles[0]
	}
	if e != nil {
		p.Employee = &EmployeeProfile{
			EmployeeID:   e.EmployeeID,
			Phone:        e.Phone,
			Address:      e.Address,
			FathersName:  e.FathersName,
			AadharNo:     e.AadharNo,
			DateOfBirth:  e.DateOfBirth,
			WorkPosition: e.WorkPosition,
			CreatedAt:    e.CreatedAt,
			UpdatedAt:    e.UpdatedAt,
		}
	}
	return p
}
