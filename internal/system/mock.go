package system

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/errors"
)

// MockRunner implements Runner for testing.
type MockRunner struct {
	mu sync.Mutex

	// Calls records the argv of every Run and RunInteractive call.
	Calls [][]string

	// Spawned records the argv of every Spawn call.
	Spawned [][]string

	// Responses maps argv prefixes to responses. Key format:
	// "command arg1 arg2...". The longest matching prefix wins.
	Responses map[string]MockResult

	// DefaultResponse is used when no matching response is found.
	DefaultResponse MockResult

	// Paths maps executable names to the path LookPath reports. Names
	// missing from the map are not found.
	Paths map[string]string

	// SpawnErr is returned by Spawn if set.
	SpawnErr error
}

// MockResult defines the response for a command.
type MockResult struct {
	Stdout string
	Stderr string

	// ExitCode, when non-zero, makes the call fail with a KindExecution error.
	ExitCode int

	// NotFound makes the call fail with a KindCommandNotFound error.
	NotFound bool

	// Err, when set, is returned as-is.
	Err error
}

// NewMockRunner creates a new MockRunner.
func NewMockRunner() *MockRunner {
	return &MockRunner{
		Responses: make(map[string]MockResult),
		Paths:     make(map[string]string),
	}
}

// AddResponse sets the successful output for an argv prefix.
func (m *MockRunner) AddResponse(prefix, stdout string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[prefix] = MockResult{Stdout: stdout}
}

// AddFailure makes commands matching prefix exit with status 1 and the given stderr.
func (m *MockRunner) AddFailure(prefix, stderr string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[prefix] = MockResult{Stderr: stderr, ExitCode: 1}
}

// AddPath makes LookPath find name.
func (m *MockRunner) AddPath(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Paths[name] = "/usr/bin/" + name
}

func (m *MockRunner) Run(ctx context.Context, argv ...string) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, append([]string(nil), argv...))
	return m.respond(argv)
}

func (m *MockRunner) RunInteractive(ctx context.Context, argv ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, append([]string(nil), argv...))
	_, err := m.respond(argv)
	return err
}

func (m *MockRunner) LookPath(name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p, ok := m.Paths[name]; ok {
		return p, nil
	}
	return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
}

func (m *MockRunner) Spawn(argv ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Spawned = append(m.Spawned, append([]string(nil), argv...))
	return m.SpawnErr
}

func (m *MockRunner) respond(argv []string) (Result, error) {
	resp := m.DefaultResponse
	best := -1
	for prefix, r := range m.Responses {
		if matchesPrefix(argv, prefix) && len(prefix) > best {
			resp, best = r, len(prefix)
		}
	}

	res := Result{Stdout: resp.Stdout, Stderr: resp.Stderr}
	switch {
	case resp.Err != nil:
		return res, resp.Err
	case resp.NotFound:
		return res, errors.CommandNotFound(argv, exec.ErrNotFound)
	case resp.ExitCode != 0:
		return res, errors.CommandFailed(argv, resp.Stderr, fmt.Errorf("exit status %d", resp.ExitCode))
	}
	return res, nil
}

func matchesPrefix(argv []string, prefix string) bool {
	fields := strings.Fields(prefix)
	if len(fields) == 0 || len(fields) > len(argv) {
		return false
	}
	for i, f := range fields {
		if argv[i] != f {
			return false
		}
	}
	return true
}

// CallsFor returns recorded Run calls whose argv starts with prefix.
func (m *MockRunner) CallsFor(prefix string) [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out [][]string
	for _, c := range m.Calls {
		if matchesPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}

// CommandLines returns every recorded Run call joined with spaces.
func (m *MockRunner) CommandLines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, len(m.Calls))
	for i, c := range m.Calls {
		out[i] = strings.Join(c, " ")
	}
	return out
}

// LastCommand returns the most recently executed command.
func (m *MockRunner) LastCommand() ([]string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return nil, false
	}
	return m.Calls[len(m.Calls)-1], true
}

// Reset clears all recorded calls.
func (m *MockRunner) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = nil
	m.Spawned = nil
}

var (
	_ Runner     = (*MockRunner)(nil)
	_ FileSystem = (*MockFS)(nil)
)
