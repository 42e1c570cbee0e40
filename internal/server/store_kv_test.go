package server

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/summitkit/checkin/internal/checkin"
)

func TestKVStoreGetMissing(t *testing.T) {
	kv := NewKVStore(setupTestDB(t))

	_, err := kv.Get(context.Background(), "nope")
	if !errors.Is(err, checkin.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestKVStorePutOverwrites(t *testing.T) {
	ctx := context.Background()
	kv := NewKVStore(setupTestDB(t))

	if err := kv.Put(ctx, "k", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := kv.Put(ctx, "k", []byte(`{"b":2}`)); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := kv.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `{"b":2}` {
		t.Fatalf("got %s", got)
	}

	var rows int
	if err := kv.db.QueryRow(`SELECT COUNT(*) FROM kv`).Scan(&rows); err != nil {
		t.Fatalf("count: %v", err)
	}
	if rows != 1 {
		t.Fatalf("rows = %d, want 1", rows)
	}
}

func TestStateStoreOverKV(t *testing.T) {
	ctx := context.Background()
	kv := NewKVStore(setupTestDB(t))
	store := checkin.NewStateStore(kv, "", discardLogger())

	st, err := store.AddAttendee(ctx, checkin.DefaultState(), "Ada", checkin.TeamZero, time.UnixMilli(1_700_000_000_000))
	if err != nil {
		t.Fatalf("add attendee: %v", err)
	}

	if got := store.Load(ctx); !reflect.DeepEqual(got, st) {
		t.Fatalf("Load = %+v, want %+v", got, st)
	}
}

func TestStateStoreOverKVMalformed(t *testing.T) {
	ctx := context.Background()
	kv := NewKVStore(setupTestDB(t))
	if err := kv.Put(ctx, checkin.DefaultStorageKey, []byte(`{"total":"x","attendees":{}}`)); err != nil {
		t.Fatalf("put: %v", err)
	}

	got := checkin.NewStateStore(kv, "", discardLogger()).Load(ctx)
	if !reflect.DeepEqual(got, checkin.DefaultState()) {
		t.Fatalf("Load = %+v, want default", got)
	}
}
