package server

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/summitkit/checkin/internal/checkin"
	"github.com/summitkit/checkin/internal/database"
	"github.com/summitkit/checkin/internal/migrations"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := migrations.Run(db); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	return db
}

type testEnv struct {
	db      *sql.DB
	kv      *KVStore
	ctrl    *checkin.Controller
	srv     *Server
	handler http.Handler
}

type envOption func(t *testing.T, db *sql.DB, d *Deps)

// withAdminPassword enables the admin routes behind password.
func withAdminPassword(password string) envOption {
	return func(t *testing.T, db *sql.DB, d *Deps) {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("hashing password: %v", err)
		}
		admin, err := NewAdminStore(db, string(hash))
		if err != nil {
			t.Fatalf("admin store: %v", err)
		}
		d.Admin = admin
	}
}

func withStaticDir(dir string) envOption {
	return func(_ *testing.T, _ *sql.DB, d *Deps) { d.StaticDir = dir }
}

func withPublicURL(u string) envOption {
	return func(_ *testing.T, _ *sql.DB, d *Deps) { d.PublicURL = u }
}

// newTestEnv wires the full router over a fresh in-memory database.
func newTestEnv(t *testing.T, goal int, opts ...envOption) *testEnv {
	t.Helper()
	db := setupTestDB(t)
	kv := NewKVStore(db)

	ctrl, err := checkin.NewController(context.Background(), checkin.Options{
		Storage:        kv,
		Goal:           goal,
		GreetingTTL:    time.Hour,
		CelebrationTTL: time.Hour,
		Logger:         discardLogger(),
	})
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}

	deps := Deps{
		Controller: ctrl,
		Checks:     map[string]Checker{"sqlite": kv},
		EventName:  "Test Summit",
	}
	for _, opt := range opts {
		opt(t, db, &deps)
	}

	srv := New(":0", discardLogger(), deps)
	t.Cleanup(srv.broker.Close)

	return &testEnv{db: db, kv: kv, ctrl: ctrl, srv: srv, handler: srv.Handler()}
}
