// Package models defines the core data structures shared by the StaffDesk
// client and the development server: roles, view modes, user profiles and
// organizations.
package models

// Role is the authorization level assigned to a user account.
// Roles form a flat, unordered set; every access decision is a
// membership check against an allowed set, never a rank comparison.
type Role string

const (
	// RoleOwner is the account that registered the organization.
	RoleOwner Role = "Owner"
	// RoleHRAdmin manages employees and HR records.
	RoleHRAdmin Role = "HR Admin"
	// RoleManager manages a team within the organization.
	RoleManager Role = "Manager"
	// RoleEmployee is the default role for staff accounts.
	RoleEmployee Role = "Employee"
)

// AdminCapableRoles is the set of roles allowed to use the admin view
// and to switch between the admin and employee views.
var AdminCapableRoles = []Role{RoleOwner, RoleHRAdmin, RoleManager}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleHRAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// ViewMode selects which dashboard variant an admin-capable user sees.
type ViewMode string

const (
	// ViewAdmin shows the administration dashboard and navigation.
	ViewAdmin ViewMode = "admin"
	// ViewEmployee shows the regular employee dashboard.
	ViewEmployee ViewMode = "employee"
)

// Organization identifies the company a user belongs to.
// It is never mutated client-side, only replaced as part of a profile refresh.
type Organization struct {
	// ID is the backend identifier of the organization.
	ID int64 `json:"id"`
	// Name is the display name of the organization.
	Name string `json:"name"`
	// Description is an optional free-form description.
	Description string `json:"description,omitempty"`
}

// UserProfile is the authenticated principal as known to the client.
// It is replaced wholesale on every successful login or profile fetch.
type UserProfile struct {
	// ID is the backend identifier of the user.
	ID int64 `json:"id"`
	// Name is the user's display name.
	Name string `json:"name"`
	// Email is the user's sign-in address.
	Email string `json:"email"`
	// Department the user works in.
	Department string `json:"department"`
	// Position is the user's job title.
	Position string `json:"position"`
	// Role is the user's authorization level.
	Role Role `json:"role"`
	// JoinDate is the employment start date (YYYY-MM-DD).
	JoinDate string `json:"joinDate"`
	// Avatar is an optional avatar URL.
	Avatar string `json:"avatar,omitempty"`
	// Phone is an optional contact number.
	Phone string `json:"phone,omitempty"`
	// Address is an optional postal address.
	Address string `json:"address,omitempty"`
	// Organization the user belongs to. Absent while the user is
	// pending onboarding.
	Organization *Organization `json:"organization,omitempty"`
}

// LoginRequest is the JSON payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the successful login body: a bearer credential plus
// the authenticated user's profile.
type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	User        UserProfile `json:"user"`
}

// RegisterOwnerRequest is the JSON payload for owner self-registration.
type RegisterOwnerRequest struct {
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	OrganizationName string `json:"organizationName"`
}

// CreateOrganizationRequest is the JSON payload for the onboarding
// completion step.
type CreateOrganizationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CreateEmployeeRequest is the JSON payload for creating an employee account.
type CreateEmployeeRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Department string `json:"department"`
	Position   string `json:"position"`
	Role       Role   `json:"role"`
	JoinDate   string `json:"joinDate"`
}
