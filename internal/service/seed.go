package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/itroyan/staffdesk/internal/models"
	"github.com/itroyan/staffdesk/internal/repository"
)

// SeedDemoAccounts provisions one demo account per role plus one account
// still pending onboarding, all with the password "password". It is a
// no-op when the owner account already exists, so restarts against a
// persistent database stay clean.
func (s *Service) SeedDemoAccounts(ctx context.Context) error {
	if _, err := s.repo.UserByEmail(ctx, "owner@staffdesk.local"); err == nil {
		return nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	owner, err := s.RegisterOwner(ctx, models.RegisterOwnerRequest{
		FirstName:        "Olivia",
		LastName:         "Reed",
		Email:            "owner@staffdesk.local",
		Password:         "password",
		OrganizationName: "Acme Corp",
	})
	if err != nil {
		return fmt.Errorf("seed owner: %w", err)
	}

	staff := []models.CreateEmployeeRequest{
		{Name: "Harper Quinn", Email: "hr@staffdesk.local", Password: "password",
			Department: "People", Position: "HR Lead", Role: models.RoleHRAdmin, JoinDate: "2023-02-01"},
		{Name: "Miles Teller", Email: "manager@staffdesk.local", Password: "password",
			Department: "Engineering", Position: "Engineering Manager", Role: models.RoleManager, JoinDate: "2023-05-15"},
		{Name: "Jane Doe", Email: "employee@staffdesk.local", Password: "password",
			Department: "Engineering", Position: "Software Engineer", Role: models.RoleEmployee, JoinDate: "2024-01-08"},
	}
	for _, req := range staff {
		if _, err := s.CreateEmployee(ctx, owner.ID, req); err != nil {
			return fmt.Errorf("seed %s: %w", req.Email, err)
		}
	}

	// One account without an organization, to exercise the onboarding flow.
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}
	_, err = s.repo.CreateUser(ctx, &repository.User{
		Name:         "Noah Park",
		Email:        "newhire@staffdesk.local",
		PasswordHash: hash,
		Role:         models.RoleEmployee,
		JoinDate:     "2024-06-01",
	})
	if err != nil {
		return fmt.Errorf("seed pending user: %w", err)
	}
	return nil
}
