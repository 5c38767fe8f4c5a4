package testutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
)

var (
	buildOnce sync.Once
	binPath   string
	binErr    error
)

// CLIResult is one `navport --json` run: the decoded envelope plus the raw
// streams and exit status.
type CLIResult struct {
	OK       bool
	Data     map[string]interface{}
	Error    *CLIError
	Warnings []CLIWarning
	Meta     *CLIMeta

	RawJSON  string
	Stderr   string
	ExitCode int
}

type CLIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

type CLIWarning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Ref     string `json:"ref,omitempty"`
}

type CLIMeta struct {
	Count int `json:"count,omitempty"`
}

// BuildCLI compiles ./cmd/navport into a temp dir on first use and returns
// the binary path. Later calls reuse it.
func BuildCLI(t *testing.T) string {
	t.Helper()
	buildOnce.Do(func() {
		binPath, binErr = compileNavport()
	})
	if binErr != nil {
		t.Fatalf("building navport: %v", binErr)
	}
	return binPath
}

func compileNavport() (string, error) {
	modDir, err := moduleDir()
	if err != nil {
		return "", err
	}
	outDir, err := os.MkdirTemp("", "navport-bin-*")
	if err != nil {
		return "", err
	}
	name := "navport"
	if runtime.GOOS == "windows" {
		name = "navport.exe"
	}
	bin := filepath.Join(outDir, name)

	build := exec.Command("go", "build", "-o", bin, "./cmd/navport")
	build.Dir = modDir
	if out, err := build.CombinedOutput(); err != nil {
		return "", fmt.Errorf("%w\n%s", err, out)
	}
	return bin, nil
}

// moduleDir is the nearest ancestor of the working directory holding go.mod.
func moduleDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for dir != filepath.Dir(dir) {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		dir = filepath.Dir(dir)
	}
	return "", errors.New("go.mod not found above working directory")
}

// RunCLI runs navport against the site with --json. Only stdout is decoded;
// log lines on stderr land in Stderr.
func (s *TestSite) RunCLI(args ...string) *CLIResult {
	s.t.Helper()

	cmd := exec.Command(BuildCLI(s.t), append([]string{"--site-path", s.Path, "--json"}, args...)...)
	cmd.Dir = s.Path
	// Point HOME and XDG at the site so a developer's global config never leaks in.
	cmd.Env = append(os.Environ(), "HOME="+s.Path, "XDG_CONFIG_HOME="+filepath.Join(s.Path, ".config"))

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r := &CLIResult{}
	var exitErr *exec.ExitError
	switch err := cmd.Run(); {
	case err == nil:
	case errors.As(err, &exitErr):
		r.ExitCode = exitErr.ExitCode()
	default:
		r.ExitCode = -1
	}
	r.RawJSON = stdout.String()
	r.Stderr = stderr.String()

	var env struct {
		OK       bool                   `json:"ok"`
		Data     map[string]interface{} `json:"data"`
		Error    *CLIError              `json:"error"`
		Warnings []CLIWarning           `json:"warnings"`
		Meta     *CLIMeta               `json:"meta"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &env); err != nil {
		r.Error = &CLIError{Code: "PARSE_ERROR", Message: "stdout is not a JSON envelope: " + err.Error()}
		return r
	}
	r.OK, r.Data, r.Error, r.Warnings, r.Meta = env.OK, env.Data, env.Error, env.Warnings, env.Meta
	return r
}

func (r *CLIResult) dump() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "exit=%d\nstdout: %s", r.ExitCode, r.RawJSON)
	if r.Stderr != "" {
		fmt.Fprintf(&sb, "\nstderr: %s", r.Stderr)
	}
	return sb.String()
}

// MustSucceed stops the test unless the run returned ok with exit status 0.
func (r *CLIResult) MustSucceed(t *testing.T) *CLIResult {
	t.Helper()
	if !r.OK || r.ExitCode != 0 {
		reason := "no error reported"
		if r.Error != nil {
			reason = r.Error.Code + ": " + r.Error.Message
		}
		t.Fatalf("expected success, got %s\n%s", reason, r.dump())
	}
	return r
}

// MustFail stops the test unless the run failed with code and a non-zero exit.
func (r *CLIResult) MustFail(t *testing.T, code string) *CLIResult {
	t.Helper()
	switch {
	case r.OK:
		t.Fatalf("expected %s, but the command succeeded\n%s", code, r.dump())
	case r.Error == nil:
		t.Fatalf("expected %s, got a failure without an error object\n%s", code, r.dump())
	case r.Error.Code != code:
		t.Fatalf("expected %s, got %s (%s)\n%s", code, r.Error.Code, r.Error.Message, r.dump())
	case r.ExitCode == 0:
		t.Fatalf("%s reported with exit status 0", code)
	}
	return r
}

func (r *CLIResult) DataList(key string) []interface{} {
	list, _ := r.Data[key].([]interface{})
	return list
}

func (r *CLIResult) DataMap(key string) map[string]interface{} {
	m, _ := r.Data[key].(map[string]interface{})
	return m
}

// DataInt reads a numeric field. JSON numbers decode as float64.
func (r *CLIResult) DataInt(key string) int {
	f, _ := r.Data[key].(float64)
	return int(f)
}
