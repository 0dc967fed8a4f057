// Package repository provides persistence implementations for the
// development server's user and organization records.
package repository

import (
	"errors"

	"github.com/itroyan/staffdesk/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// User is the server-side account record.
type User struct {
	// ID is the unique identifier for the user.
	ID int64
	// Name is the user's display name.
	Name string
	// Email is the unique sign-in address.
	Email string
	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash []byte
	// Department the user works in.
	Department string
	// Position is the user's job title.
	Position string
	// Role is the user's authorization level.
	Role models.Role
	// JoinDate is the employment start date (YYYY-MM-DD).
	JoinDate string
	// Phone is an optional contact number.
	Phone string
	// Address is an optional postal address.
	Address string
	// OrganizationID links the user to an organization; 0 means the
	// user is still pending onboarding.
	OrganizationID int64
}

// Organization is the server-side organization record.
type Organization struct {
	// ID is the unique identifier for the organization.
	ID int64
	// Name is the display name.
	Name string
	// Description is an optional free-form description.
	Description string
}
