// Package service implements the development server's business logic:
// credential checks, owner registration, onboarding and employee
// management, delegating persistence to a Directory.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/itroyan/staffdesk/internal/models"
	"github.com/itroyan/staffdesk/internal/repository"
)

// Directory defines the persistence operations required by the service.
type Directory interface {
	// UserByEmail returns the user registered under email.
	UserByEmail(ctx context.Context, email string) (*repository.User, error)
	// UserByID returns the user with the given id.
	UserByID(ctx context.Context, id int64) (*repository.User, error)
	// CreateUser stores a new user and returns its assigned id.
	CreateUser(ctx context.Context, u *repository.User) (int64, error)
	// CreateOrganization stores a new organization and returns its id.
	CreateOrganization(ctx context.Context, o *repository.Organization) (int64, error)
	// OrganizationByID returns the organization with the given id.
	OrganizationByID(ctx context.Context, id int64) (*repository.Organization, error)
	// AssignOrganization links a user to an organization.
	AssignOrganization(ctx context.Context, userID, orgID int64) error
	// ListUsersByOrganization returns every user belonging to orgID.
	ListUsersByOrganization(ctx context.Context, orgID int64) ([]*repository.User, error)
}

// TokenIssuer signs bearer tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID int64) (string, error)
}

var (
	// ErrInvalidCredentials is returned when the email/password pair
	// does not match an account.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken is returned when registering an email that exists.
	ErrEmailTaken = errors.New("email is already registered")
	// ErrNoOrganization is returned for employee operations while the
	// requester has no organization yet.
	ErrNoOrganization = errors.New("no organization provisioned")
)

// Service implements the HR operations by delegating to a Directory and
// a TokenIssuer.
type Service struct {
	repo   Directory
	tokens TokenIssuer
}

// NewService constructs a Service using the provided repository and
// token issuer.
func NewService(repo Directory, tokens TokenIssuer) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Login verifies the credentials and, on success, returns a signed bearer
// token together with the user's profile.
func (s *Service) Login(ctx context.Context, email, password string) (string, *models.UserProfile, error) {
	user, err := s.repo.UserByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("look up user: %w", err)
	}
	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	profile, err := s.profileOf(ctx, user)
	if err != nil {
		return "", nil, err
	}
	return tok, profile, nil
}

// Profile returns the profile for the given user id.
func (s *Service) Profile(ctx context.Context, userID int64) (*models.UserProfile, error) {
	user, err := s.repo.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.profileOf(ctx, user)
}

// RegisterOwner creates an Owner account together with its organization.
func (s *Service) RegisterOwner(ctx context.Context, req models.RegisterOwnerRequest) (*models.UserProfile, error) {
	if _, err := s.repo.UserByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("look up user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	orgID, err := s.repo.CreateOrganization(ctx, &repository.Organization{Name: req.OrganizationName})
	if err != nil {
		return nil, fmt.Errorf("create organization: %w", err)
	}

	user := &repository.User{
		Name:           req.FirstName + " " + req.LastName,
		Email:          req.Email,
		PasswordHash:   hash,
		Position:       "Owner",
		Role:           models.RoleOwner,
		JoinDate:       time.Now().Format("2006-01-02"),
		OrganizationID: orgID,
	}
	id, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	user.ID = id
	return s.profileOf(ctx, user)
}

// CreateOrganization provisions an organization for a user who has none
// (the onboarding-completion step) and links the user to it.
func (s *Service) CreateOrganization(ctx context.Context, userID int64, req models.CreateOrganizationRequest) (*models.Organization, error) {
	orgID, err := s.repo.CreateOrganization(ctx, &repository.Organization{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("create organization: %w", err)
	}
	if err := s.repo.AssignOrganization(ctx, userID, orgID); err != nil {
		return nil, fmt.Errorf("assign organization: %w", err)
	}
	return &models.Organization{ID: orgID, Name: req.Name, Description: req.Description}, nil
}

// ListEmployees returns the profiles of everyone in the requester's
// organization.
func (s *Service) ListEmployees(ctx context.Context, requesterID int64) ([]models.UserProfile, error) {
	requester, err := s.repo.UserByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if requester.OrganizationID == 0 {
		return nil, ErrNoOrganization
	}
	users, err := s.repo.ListUsersByOrganization(ctx, requester.OrganizationID)
	if err != nil {
		return nil, err
	}
	out := make([]models.UserProfile, 0, len(users))
	for _, u := range users {
		p, err := s.profileOf(ctx, u)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

// CreateEmployee creates an account inside the requester's organization.
func (s *Service) CreateEmployee(ctx context.Context, requesterID int64, req models.CreateEmployeeRequest) (*models.UserProfile, error) {
	requester, err := s.repo.UserByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if requester.OrganizationID == 0 {
		return nil, ErrNoOrganization
	}
	if _, err := s.repo.UserByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("look up user: %w", err)
	}

	role := req.Role
	if !role.Valid() {
		role = models.RoleEmployee
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &repository.User{
		Name:           req.Name,
		Email:          req.Email,
		PasswordHash:   hash,
		Department:     req.Department,
		Position:       req.Position,
		Role:           role,
		JoinDate:       req.JoinDate,
		OrganizationID: requester.OrganizationID,
	}
	id, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	user.ID = id
	return s.profileOf(ctx, user)
}

// profileOf maps a stored user to the wire profile, resolving its
// organization reference.
func (s *Service) profileOf(ctx context.Context, u *repository.User) (*models.UserProfile, error) {
	profile := &models.UserProfile{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Department: u.Department,
		Position:   u.Position,
		Role:       u.Role,
		JoinDate:   u.JoinDate,
		Phone:      u.Phone,
		Address:    u.Address,
	}
	if u.OrganizationID != 0 {
		org, err := s.repo.OrganizationByID(ctx, u.OrganizationID)
		if err != nil {
			return nil, fmt.Errorf("resolve organization: %w", err)
		}
		profile.Organization = &models.Organization{
			ID:          org.ID,
			Name:        org.Name,
			Description: org.Description,
		}
	}
	return profile, nil
}
