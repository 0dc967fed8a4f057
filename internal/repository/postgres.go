package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Postgres implements the repository operations against a PostgreSQL
// database.
type Postgres struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgres creates a Postgres repository with the given database
// connection. db must be a valid *sql.DB connected to a PostgreSQL instance.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{DB: db}
}

const userColumns = `id, name, email, password_hash, department, position, role, join_date, phone, address, COALESCE(organization_id, 0)`

func scanUser(row *sql.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Department,
		&u.Position, &u.Role, &u.JoinDate, &u.Phone, &u.Address, &u.OrganizationID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UserByEmail returns the user registered under email.
func (p *Postgres) UserByEmail(ctx context.Context, email string) (*User, error) {
	row := p.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// UserByID returns the user with the given id.
func (p *Postgres) UserByID(ctx context.Context, id int64) (*User, error) {
	row := p.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// CreateUser inserts a new user and returns its assigned id.
func (p *Postgres) CreateUser(ctx context.Context, u *User) (int64, error) {
	var orgID any
	if u.OrganizationID != 0 {
		orgID = u.OrganizationID
	}
	var id int64
	err := p.DB.QueryRowContext(ctx,
		`INSERT INTO users (name, email, password_hash, department, position, role, join_date, phone, address, organization_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
		u.Name, u.Email, u.PasswordHash, u.Department, u.Position, u.Role,
		u.JoinDate, u.Phone, u.Address, orgID,
	).Scan(&id)
	return id, err
}

// CreateOrganization inserts a new organization and returns its assigned id.
func (p *Postgres) CreateOrganization(ctx context.Context, o *Organization) (int64, error) {
	var id int64
	err := p.DB.QueryRowContext(ctx,
		`INSERT INTO organizations (name, description) VALUES ($1, $2) RETURNING id`,
		o.Name, o.Description,
	).Scan(&id)
	return id, err
}

// OrganizationByID returns the organization with the given id.
func (p *Postgres) OrganizationByID(ctx context.Context, id int64) (*Organization, error) {
	var o Organization
	err := p.DB.QueryRowContext(ctx,
		`SELECT id, name, COALESCE(description, '') FROM organizations WHERE id = $1`, id,
	).Scan(&o.ID, &o.Name, &o.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// AssignOrganization links a user to an organization.
func (p *Postgres) AssignOrganization(ctx context.Context, userID, orgID int64) error {
	res, err := p.DB.ExecContext(ctx,
		`UPDATE users SET organization_id = $1 WHERE id = $2`, orgID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListUsersByOrganization returns every user belonging to orgID.
func (p *Postgres) ListUsersByOrganization(ctx context.Context, orgID int64) ([]*User, error) {
	rows, err := p.DB.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE organization_id = $1 ORDER BY id`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Department,
			&u.Position, &u.Role, &u.JoinDate, &u.Phone, &u.Address, &u.OrganizationID); err != nil {
			return nil, err
		}
		out = append(out, &u)
	}
	return out, rows.Err()
}
