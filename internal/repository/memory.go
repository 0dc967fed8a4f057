package repository

import (
	"context"
	"sync"
)

// Memory is an in-process repository used when no database is configured.
// It is safe for concurrent use.
type Memory struct {
	mu      sync.Mutex
	users   map[int64]*User
	orgs    map[int64]*Organization
	byEmail map[string]int64
	nextID  int64
	nextOrg int64
}

// NewMemory returns an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{
		users:   make(map[int64]*User),
		orgs:    make(map[int64]*Organization),
		byEmail: make(map[string]int64),
		nextID:  1,
		nextOrg: 1,
	}
}

// UserByEmail returns the user registered under email.
func (m *Memory) UserByEmail(_ context.Context, email string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	u := *m.users[id]
	return &u, nil
}

// UserByID returns the user with the given id.
func (m *Memory) UserByID(_ context.Context, id int64) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *u
	return &copied, nil
}

// CreateUser stores a new user and returns its assigned id.
// ErrNotFound is never returned; a duplicate email is the caller's
// responsibility to check first.
func (m *Memory) CreateUser(_ context.Context, u *User) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	stored := *u
	stored.ID = id
	m.users[id] = &stored
	m.byEmail[stored.Email] = id
	return id, nil
}

// CreateOrganization stores a new organization and returns its assigned id.
func (m *Memory) CreateOrganization(_ context.Context, o *Organization) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextOrg
	m.nextOrg++
	stored := *o
	stored.ID = id
	m.orgs[id] = &stored
	return id, nil
}

// OrganizationByID returns the organization with the given id.
func (m *Memory) OrganizationByID(_ context.Context, id int64) (*Organization, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orgs[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *o
	return &copied, nil
}

// AssignOrganization links a user to an organization.
func (m *Memory) AssignOrganization(_ context.Context, userID, orgID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.OrganizationID = orgID
	return nil
}

// ListUsersByOrganization returns every user belonging to orgID.
func (m *Memory) ListUsersByOrganization(_ context.Context, orgID int64) ([]*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*User
	for _, u := range m.users {
		if u.OrganizationID == orgID {
			copied := *u
			out = append(out, &copied)
		}
	}
	return out, nil
}
