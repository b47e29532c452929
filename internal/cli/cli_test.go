package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/dori/zendo/internal/api"
	"github.com/dori/zendo/internal/calendar"
	"github.com/dori/zendo/internal/model"
	"github.com/dori/zendo/internal/parser"
	"github.com/dori/zendo/internal/tasks"
)

type testEnv struct {
	configPath string
	seq        int
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	color.NoColor = true
	t.Setenv("ZENDO_API_SECRET", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	cfg := fmt.Sprintf("data_dir: %s\nnotify:\n  enabled: false\n", filepath.Join(dir, "data"))
	if err := os.WriteFile(path, []byte(cfg), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return &testEnv{configPath: path}
}

// run executes one command in a fresh session, like a separate process
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := &cli{
		version: "test",
		managerOpts: []tasks.Option{
			tasks.WithClock(calendar.ClockFunc(func() time.Time {
				return time.Date(2024, time.January, 8, 9, 0, 0, 0, time.Local)
			})),
			tasks.WithIDGenerator(func() string {
				e.seq++
				return fmt.Sprintf("task%04d-%d", e.seq, e.seq)
			}),
		},
	}
	cmd := newRootCmd(c)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", e.configPath}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (e *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	if err != nil {
		t.Fatalf("%v failed: %v", args, err)
	}
	return out
}

func TestAddAndList(t *testing.T) {
	e := newTestEnv(t)

	out := e.mustRun(t, "add", "Submit", "report", "!must", "@work")
	if !strings.Contains(out, "Added task0001") || !strings.Contains(out, "!must") {
		t.Errorf("Unexpected add output: %q", out)
	}
	e.mustRun(t, "add", "Meditate daily", "--category", "rituals", "--why", "stay calm")

	out = e.mustRun(t, "list")
	for _, want := range []string{"Today (1)", "Rituals (1)", "Submit report", "@work", "why: stay calm"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected list output to contain %q, got:\n%s", want, out)
		}
	}

	out = e.mustRun(t, "list", "--category", "rituals")
	if strings.Contains(out, "Submit report") {
		t.Errorf("Category filter leaked other tasks:\n%s", out)
	}

	if _, err := e.run(t, "list", "--priority", "urgent"); err == nil {
		t.Error("Expected an unknown priority to be rejected")
	}
	if _, err := e.run(t, "add", "x", "--category", "later"); err == nil {
		t.Error("Expected an unknown category to be rejected")
	}
}

func TestDoneByPrefix(t *testing.T) {
	e := newTestEnv(t)
	e.mustRun(t, "add", "Meditate daily")
	e.mustRun(t, "add", "Call mom")

	out := e.mustRun(t, "done", "task0001", "--mood", "great")
	if !strings.Contains(out, "Completed") || !strings.Contains(out, "Next") {
		t.Errorf("Expected a completion and a successor, got:\n%s", out)
	}
	if !strings.Contains(out, "Streak: 1 day(s)") {
		t.Errorf("Expected the streak line, got:\n%s", out)
	}

	if _, err := e.run(t, "done", "task"); err == nil || !strings.Contains(err.Error(), "ambiguous") {
		t.Errorf("Expected ambiguous prefix error, got %v", err)
	}
	if _, err := e.run(t, "done", "nope"); !errors.Is(err, errNotFound) {
		t.Errorf("Expected errNotFound, got %v", err)
	}
	if _, err := e.run(t, "done", "task0002", "--mood", "sleepy"); err == nil {
		t.Error("Expected an unknown mood to be rejected")
	}

	out = e.mustRun(t, "undo", "task0001")
	if !strings.Contains(out, "Reopened") || !strings.Contains(out, "[ ]") {
		t.Errorf("Unexpected undo output: %q", out)
	}

	e.mustRun(t, "rm", "task0002")
	out = e.mustRun(t, "list")
	if strings.Contains(out, "Call mom") {
		t.Errorf("Expected deleted task to be gone:\n%s", out)
	}
}

func TestParseDoesNotSave(t *testing.T) {
	e := newTestEnv(t)

	out := e.mustRun(t, "parse", "Call mom !should @personal weekly")
	var res parser.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("Expected JSON output, got %q: %v", out, err)
	}
	if res.Text != "Call mom" || res.Priority != "should" || res.Project != "personal" || res.Recurring != "weekly" {
		t.Errorf("Unexpected parse result: %+v", res)
	}

	out = e.mustRun(t, "list")
	if !strings.Contains(out, "No tasks.") {
		t.Errorf("parse must not add tasks, list shows:\n%s", out)
	}
}

func TestNotes(t *testing.T) {
	e := newTestEnv(t)

	out := e.mustRun(t, "note", "add", "buy", "stamps")
	id := strings.TrimSpace(strings.TrimPrefix(out, "Saved note "))
	if id == "" {
		t.Fatalf("Unexpected note add output: %q", out)
	}

	e.mustRun(t, "note", "edit", id, "buy stamps and envelopes")
	out = e.mustRun(t, "note", "list")
	if !strings.Contains(out, "buy stamps and envelopes") {
		t.Errorf("Expected edited note in list, got:\n%s", out)
	}

	e.mustRun(t, "note", "rm", id)
	out = e.mustRun(t, "note", "list")
	if !strings.Contains(out, "No notes.") {
		t.Errorf("Expected no notes, got:\n%s", out)
	}
}

func TestTokenAndServeNeedSecret(t *testing.T) {
	e := newTestEnv(t)

	if _, err := e.run(t, "serve"); !errors.Is(err, api.ErrNoSecret) {
		t.Errorf("Expected serve to need a secret, got %v", err)
	}
	if _, err := e.run(t, "token"); !errors.Is(err, api.ErrNoSecret) {
		t.Errorf("Expected token to need a secret, got %v", err)
	}

	t.Setenv("ZENDO_API_SECRET", "s3cr3t")
	out := e.mustRun(t, "token", "--subject", "phone", "--ttl", "1h")
	subject, err := api.ParseToken([]byte("s3cr3t"), strings.TrimSpace(out))
	if err != nil {
		t.Fatalf("Minted token did not validate: %v", err)
	}
	if subject != "phone" {
		t.Errorf("Expected subject phone, got %q", subject)
	}

	out = e.mustRun(t, "config", "show")
	if strings.Contains(out, "s3cr3t") {
		t.Errorf("config show leaked the secret:\n%s", out)
	}
}

func TestConfigInit(t *testing.T) {
	color.NoColor = true
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	root := newRootCmd(&cli{version: "test"})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--config", path, "config", "init"})
	if err := root.Execute(); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Expected config file to exist: %v", err)
	}

	root = newRootCmd(&cli{version: "test"})
	root.SetOut(&out)
	root.SetArgs([]string{"--config", path, "config", "init"})
	if err := root.Execute(); err == nil {
		t.Error("Expected second init to refuse overwriting")
	}
}

func TestResolveNote(t *testing.T) {
	notes := []model.Note{{ID: "abc123"}, {ID: "abd456"}, {ID: "abc"}}

	tests := []struct {
		arg     string
		want    string
		wantErr bool
	}{
		{arg: "abc", want: "abc"}, // exact id beats a longer prefix match
		{arg: "abc1", want: "abc123"},
		{arg: "abd", want: "abd456"},
		{arg: "ab", wantErr: true},
		{arg: "zz", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := resolveNote(notes, tt.arg)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected an error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got.ID != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got.ID)
			}
		})
	}
}
