package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	errNoAdminSession     = errors.New("no admin session")
	errInvalidCredentials = errors.New("invalid credentials")
)

const adminSessionTTL = 7 * 24 * time.Hour

// AdminStore checks the admin password and keeps admin sessions in the
// admin_sessions table.
type AdminStore struct {
	db           *sql.DB
	passwordHash []byte
	now          func() time.Time
}

// NewAdminStore returns nil when passwordHash is empty, which disables the
// admin routes.
func NewAdminStore(db *sql.DB, passwordHash string) (*AdminStore, error) {
	if passwordHash == "" {
		return nil, nil
	}
	if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return nil, fmt.Errorf("parsing admin password hash: %w", err)
	}
	return &AdminStore{db: db, passwordHash: []byte(passwordHash), now: time.Now}, nil
}

// Login verifies password and opens a session.
func (s *AdminStore) Login(ctx context.Context, password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", errInvalidCredentials
	}

	id := uuid.NewString()
	now := s.now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO admin_sessions (id, created_at, expires_at) VALUES (?, ?, ?)`,
		id, now.Format(time.RFC3339), now.Add(adminSessionTTL).Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("creating admin session: %w", err)
	}
	return id, nil
}

// Session returns errNoAdminSession for unknown or expired sessions.
func (s *AdminStore) Session(ctx context.Context, id string) error {
	var expires string
	err := s.db.QueryRowContext(ctx,
		`SELECT expires_at FROM admin_sessions WHERE id = ?`, id,
	).Scan(&expires)
	if errors.Is(err, sql.ErrNoRows) {
		return errNoAdminSession
	}
	if err != nil {
		return err
	}

	at, err := time.Parse(time.RFC3339, expires)
	if err != nil || !s.now().Before(at) {
		return errNoAdminSession
	}
	return nil
}

func (s *AdminStore) Logout(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE id = ?`, id)
	return err
}
