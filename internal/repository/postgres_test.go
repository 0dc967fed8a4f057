package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/itroyan/staffdesk/internal/models"
)

func setupMock(t *testing.T) (*Postgres, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgres(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "email", "password_hash", "department", "position",
		"role", "join_date", "phone", "address", "organization_id",
	})
}

func TestUserByEmail_Found(t *testing.T) {
	repo, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT ` + userColumns + ` FROM users WHERE email = $1`)).
		WithArgs("jane@x.com").
		WillReturnRows(userRows().AddRow(
			1, "Jane", "jane@x.com", []byte("hash"), "Engineering", "Engineer",
			"Employee", "2024-01-08", "", "", 5,
		))

	u, err := repo.UserByEmail(context.Background(), "jane@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != 1 || u.Role != models.RoleEmployee || u.OrganizationID != 5 {
		t.Errorf("unexpected user: %+v", u)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestUserByEmail_NotFound(t *testing.T) {
	repo, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT ` + userColumns + ` FROM users WHERE email = $1`)).
		WithArgs("ghost@x.com").
		WillReturnRows(userRows())

	_, err := repo.UserByEmail(context.Background(), "ghost@x.com")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCreateUser_ReturnsID(t *testing.T) {
	repo, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs("Jane", "jane@x.com", []byte("hash"), "Engineering", "Engineer",
			models.RoleEmployee, "2024-01-08", "", "", int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	id, err := repo.CreateUser(context.Background(), &User{
		Name: "Jane", Email: "jane@x.com", PasswordHash: []byte("hash"),
		Department: "Engineering", Position: "Engineer", Role: models.RoleEmployee,
		JoinDate: "2024-01-08", OrganizationID: 5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 7 {
		t.Errorf("expected id 7, got %d", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestAssignOrganization_NotFound(t *testing.T) {
	repo, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET organization_id = $1 WHERE id = $2`)).
		WithArgs(int64(5), int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.AssignOrganization(context.Background(), 99, 5)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestOrganizationByID_Found(t *testing.T) {
	repo, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, COALESCE(description, '') FROM organizations WHERE id = $1`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description"}).AddRow(5, "Acme", ""))

	org, err := repo.OrganizationByID(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if org.Name != "Acme" {
		t.Errorf("unexpected organization: %+v", org)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestListUsersByOrganization_QueryError(t *testing.T) {
	repo, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT ` + userColumns + ` FROM users WHERE organization_id = $1 ORDER BY id`)).
		WithArgs(int64(5)).
		WillReturnError(errors.New("query failed"))

	if _, err := repo.ListUsersByOrganization(context.Background(), 5); err == nil {
		t.Errorf("expected error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
