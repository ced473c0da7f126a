// Package integration drives the bce binary end to end.
package integration

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

var (
	// bceBin is the path to the built bce binary.
	bceBin string
	// buildErr captures any build error.
	buildErr error
)

// BuildError wraps a build error with output.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return e.Err.Error() + ": " + e.Output
}

// FindProjectRoot finds the project root by walking up and looking for go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// TestEnv is an isolated config and data directory for one test.
type TestEnv struct {
	t       *testing.T
	TempDir string
	Config  string
	DataDir string
}

// NewTestEnv creates a new isolated test environment.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	if buildErr != nil {
		t.Fatalf("failed to build bce: %v", buildErr)
	}
	if bceBin == "" {
		t.Fatal("bce binary not built")
	}

	tempDir := t.TempDir()
	return &TestEnv{
		t:       t,
		TempDir: tempDir,
		Config:  filepath.Join(tempDir, "config"),
		DataDir: filepath.Join(tempDir, "data"),
	}
}

// DBPath is where bce keeps the grammar database for this environment.
func (e *TestEnv) DBPath() string {
	return filepath.Join(e.DataDir, "completion.db")
}

// WriteFile writes content under the environment's temp dir and returns
// the path.
func (e *TestEnv) WriteFile(name, content string) string {
	e.t.Helper()
	path := filepath.Join(e.TempDir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		e.t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// CmdResult holds the result of a bce invocation.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Lines splits stdout into lines, dropping the trailing newline.
func (r CmdResult) Lines() []string {
	out := strings.TrimSuffix(r.Stdout, "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// RunBCE executes bce with the given arguments. Directories are passed
// through BCE_CONFIG_DIR and BCE_DATA_DIR so that `complete`, which takes no
// flags, sees the same store.
func (e *TestEnv) RunBCE(args ...string) CmdResult {
	e.t.Helper()
	return e.run(nil, args...)
}

// Complete runs `bce complete` the way bash does for `complete -C`.
func (e *TestEnv) Complete(line string, point int) CmdResult {
	e.t.Helper()
	return e.run(map[string]string{
		"COMP_LINE":  line,
		"COMP_POINT": strconv.Itoa(point),
	}, "complete", "--")
}

func (e *TestEnv) run(extra map[string]string, args ...string) CmdResult {
	e.t.Helper()
	cmd := exec.Command(bceBin, args...)

	env := []string{"BCE_CONFIG_DIR=" + e.Config, "BCE_DATA_DIR=" + e.DataDir, "NO_COLOR=1"}
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "COMP_") || strings.HasPrefix(kv, "BCE_") {
			continue
		}
		env = append(env, kv)
	}
	for k, v := range extra {
		env = append(env, k+"="+v)
	}
	cmd.Env = env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	exitCode := 0
	if err := cmd.Run(); err != nil {
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			e.t.Fatalf("failed to run bce: %v", err)
		}
		exitCode = exitErr.ExitCode()
	}
	return CmdResult{Stdout: stdout.String(), Stderr: stderr.String(), ExitCode: exitCode}
}

// MustRunBCE executes bce and fails the test if it returns non-zero.
func (e *TestEnv) MustRunBCE(args ...string) CmdResult {
	e.t.Helper()
	result := e.RunBCE(args...)
	if result.ExitCode != 0 {
		e.t.Fatalf("bce %v failed with exit code %d:\nstdout: %s\nstderr: %s",
			args, result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}
