package checkin

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type failingGet struct{ *MemoryStorage }

func (failingGet) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("storage unavailable")
}

func TestStateStoreLoadDefaults(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		storage Storage
	}{
		{name: "absent", storage: NewMemoryStorage()},
		{name: "unparsable", storage: seeded(t, "{not json")},
		{name: "empty", storage: seeded(t, "")},
		{name: "array", storage: seeded(t, "[]")},
		{name: "read error", storage: failingGet{NewMemoryStorage()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewStateStore(tt.storage, "", discardLogger()).Load(ctx)
			if !reflect.DeepEqual(got, DefaultState()) {
				t.Errorf("Load = %+v, want default", got)
			}
		})
	}
}

func seeded(t *testing.T, data string) *MemoryStorage {
	t.Helper()
	m := NewMemoryStorage()
	if err := m.Put(context.Background(), DefaultStorageKey, []byte(data)); err != nil {
		t.Fatalf("seeding: %v", err)
	}
	return m
}

func TestStateStoreSaveLoad(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStorage()
	store := NewStateStore(mem, "event-key", discardLogger())

	st, err := store.AddAttendee(ctx, DefaultState(), "Ada", TeamPower, time.UnixMilli(42))
	if err != nil {
		t.Fatalf("add attendee: %v", err)
	}

	if _, err := mem.Get(ctx, DefaultStorageKey); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected nothing under the default key, got %v", err)
	}

	got := store.Load(ctx)
	if !reflect.DeepEqual(got, st) {
		t.Fatalf("Load = %+v, want %+v", got, st)
	}
}

func TestStateStoreSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	store := NewStateStore(NewMemoryStorage(), "", discardLogger())

	first := DefaultState().WithAttendee("Ada", TeamWater, time.UnixMilli(1))
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(ctx, DefaultState()); err != nil {
		t.Fatalf("save: %v", err)
	}

	if got := store.Load(ctx); !reflect.DeepEqual(got, DefaultState()) {
		t.Fatalf("Load = %+v, want default after overwrite", got)
	}
}

func TestStateStoreAddAttendeeWriteFailure(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStorage()
	mem.FailPuts(errors.New("quota exceeded"))
	store := NewStateStore(mem, "", discardLogger())

	st, err := store.AddAttendee(ctx, DefaultState(), "Ada", TeamWater, time.Now())
	if err == nil {
		t.Fatal("expected write error")
	}
	if st.Total != 1 || len(st.Attendees) != 1 {
		t.Fatalf("state not advanced on write failure: %+v", st)
	}
	if mem.Puts() != 0 {
		t.Fatalf("puts = %d, want 0", mem.Puts())
	}
}
