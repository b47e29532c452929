package app

import (
	"context"
	"errors"
	"testing"

	"github.com/dori/zendo/internal/config"
	"github.com/dori/zendo/internal/model"
	"github.com/dori/zendo/internal/tasks"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Notify.Enabled = false
	return cfg
}

func TestNewPersistsAcrossSessions(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	a, err := New(ctx, cfg, Options{Lock: true})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	task, ok := a.Tasks.Add("Water the plant daily", model.CategoryRituals, tasks.AddOptions{})
	if !ok {
		t.Fatal("Expected task to be added")
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	b, err := New(ctx, cfg, Options{Lock: true})
	if err != nil {
		t.Fatalf("Second New failed: %v", err)
	}
	defer b.Close()

	got, ok := b.Tasks.Get(task.ID)
	if !ok {
		t.Fatal("Expected task to survive a restart")
	}
	if got.Recurring != model.RecurrenceDaily || got.Text != "Water the plant" {
		t.Errorf("Unexpected reloaded task: %+v", got)
	}
}

func TestSingleWriterLock(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	a, err := New(ctx, cfg, Options{Lock: true})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer a.Close()

	if _, err := New(ctx, cfg, Options{Lock: true}); !errors.Is(err, ErrLocked) {
		t.Errorf("Expected ErrLocked, got %v", err)
	}

	// Readers do not need the lock
	r, err := New(ctx, cfg, Options{})
	if err != nil {
		t.Fatalf("Read-only New failed: %v", err)
	}
	r.Close()
}

func TestFoldedProjectTokenDoesNotCorruptStore(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	a, err := New(ctx, cfg, Options{Lock: true})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	keep, _ := a.Tasks.Add("keep me", model.CategoryToday, tasks.AddOptions{})
	odd, _ := a.Tasks.Add("call mom @perſonal", model.CategoryToday, tasks.AddOptions{})
	if !odd.Project.Valid() {
		t.Fatalf("Stored an unknown project %q", odd.Project)
	}
	a.Close()

	b, err := New(ctx, cfg, Options{Lock: true})
	if err != nil {
		t.Fatalf("Second New failed: %v", err)
	}
	if len(b.Tasks.All()) != 2 {
		t.Fatalf("Expected both tasks after reload, got %d", len(b.Tasks.All()))
	}
	b.Tasks.Add("another", model.CategoryToday, tasks.AddOptions{})
	b.Close()

	c, err := New(ctx, cfg, Options{})
	if err != nil {
		t.Fatalf("Third New failed: %v", err)
	}
	defer c.Close()
	if _, ok := c.Tasks.Get(keep.ID); !ok {
		t.Error("Expected the first task to survive later saves")
	}
}
