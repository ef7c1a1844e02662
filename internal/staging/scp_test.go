package staging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/najamsyed/ESPA/internal/config"
	"github.com/najamsyed/ESPA/internal/logger"
)

func stagerConfig(mode string) *config.Config {
	return &config.Config{
		StagingMode:    mode,
		SourceHost:     "host",
		OrderDirectory: "/orders/abc",
	}
}

// fakeExecutor records every command line and answers from a script.
type fakeExecutor struct {
	commands []string
	respond  func(command string) (string, error)
}

func (f *fakeExecutor) Run(_ context.Context, command string) (string, error) {
	f.commands = append(f.commands, command)
	if f.respond != nil {
		return f.respond(command)
	}
	return "", nil
}

func quietLogger() *logger.Logger {
	return logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard})
}

func TestSCPFetch(t *testing.T) {
	exec := &fakeExecutor{}
	stager := NewSCPStager("espa@edclxs67", "/orders/user@host.com-0123", exec, quietLogger())

	localDir := filepath.Join(t.TempDir(), "lpcs_statistics")
	if err := stager.Fetch(context.Background(), localDir); err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	if len(exec.commands) != 1 {
		t.Fatalf("ran %d commands, want 1", len(exec.commands))
	}
	cmd := exec.commands[0]
	if !strings.HasPrefix(cmd, "scp ") {
		t.Errorf("command %q does not invoke scp", cmd)
	}
	if !strings.Contains(cmd, "espa@edclxs67:/orders/user@host.com-0123/stats") {
		t.Errorf("command %q misses the remote stats directory", cmd)
	}
	if !strings.Contains(cmd, localDir) {
		t.Errorf("command %q misses the local directory", cmd)
	}
}

func TestSCPFetchClearsPreviousWorkingCopy(t *testing.T) {
	localDir := filepath.Join(t.TempDir(), "lpcs_statistics")
	if err := os.MkdirAll(localDir, 0755); err != nil {
		t.Fatal(err)
	}
	stale := filepath.Join(localDir, "stale.stats")
	if err := os.WriteFile(stale, []byte("MINIMUM=1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	stager := NewSCPStager("host", "/orders/abc", &fakeExecutor{}, quietLogger())
	if err := stager.Fetch(context.Background(), localDir); err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("previous working copy should have been removed")
	}
}

func TestSCPFetchFailure(t *testing.T) {
	exec := &fakeExecutor{respond: func(string) (string, error) {
		return "connection refused", fmt.Errorf("exit status 1")
	}}
	stager := NewSCPStager("host", "/orders/abc", exec, quietLogger())

	if err := stager.Fetch(context.Background(), t.TempDir()); err == nil {
		t.Error("failed scp should have failed the fetch")
	}
}

func TestSCPPush(t *testing.T) {
	localDir := filepath.Join(t.TempDir(), "lpcs_statistics")
	if err := os.MkdirAll(localDir, 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"terra_ndvi_stats.csv", "terra_ndvi_mean_plot.png"} {
		if err := os.WriteFile(filepath.Join(localDir, name), []byte(name), 0644); err != nil {
			t.Fatal(err)
		}
	}

	exec := &fakeExecutor{respond: func(command string) (string, error) {
		if strings.Contains(command, "cksum") {
			// Identical answers locally and remotely.
			return "1912603968 21 file", nil
		}
		return "", nil
	}}
	stager := NewSCPStager("host", "/orders/abc", exec, quietLogger())

	if err := stager.Push(context.Background(), localDir); err != nil {
		t.Fatalf("Push returned error: %v", err)
	}

	// mkdir, transfer, then a local and remote cksum per file.
	if len(exec.commands) != 6 {
		t.Fatalf("ran %d commands, want 6: %v", len(exec.commands), exec.commands)
	}
	if !strings.Contains(exec.commands[0], "mkdir -p /orders/abc/lpcs_statistics") {
		t.Errorf("first command %q is not the remote mkdir", exec.commands[0])
	}
	if !strings.Contains(exec.commands[1], "host:/orders/abc/lpcs_statistics") {
		t.Errorf("second command %q is not the transfer", exec.commands[1])
	}
}

func TestSCPPushChecksumMismatch(t *testing.T) {
	localDir := filepath.Join(t.TempDir(), "lpcs_statistics")
	if err := os.MkdirAll(localDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(localDir, "a.csv"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	calls := 0
	exec := &fakeExecutor{respond: func(command string) (string, error) {
		if strings.Contains(command, "cksum") {
			calls++
			return fmt.Sprintf("%d 1 a.csv", calls), nil
		}
		return "", nil
	}}
	stager := NewSCPStager("host", "/orders/abc", exec, quietLogger())

	err := stager.Push(context.Background(), localDir)
	if err == nil {
		t.Fatal("diverging checksums should have failed the push")
	}
	if !strings.Contains(err.Error(), "checksum mismatch") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNewStagerUnsupportedMode(t *testing.T) {
	cfg := stagerConfig("carrier-pigeon")
	if _, err := NewStager(context.Background(), cfg, quietLogger()); err == nil {
		t.Error("unsupported staging mode should have failed")
	}
}

func TestNewStagerSCP(t *testing.T) {
	cfg := stagerConfig("scp")
	stager, err := NewStager(context.Background(), cfg, quietLogger())
	if err != nil {
		t.Fatalf("NewStager returned error: %v", err)
	}
	defer stager.Close()
	if _, ok := stager.(*SCPStager); !ok {
		t.Errorf("stager is %T, want *SCPStager", stager)
	}
}
