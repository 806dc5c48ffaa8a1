package backend

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/catalog"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/system"
)

// MockBackend is a mock implementation of Backend for testing
type MockBackend struct {
	mu sync.RWMutex

	// KindValue is returned by Kind()
	KindValue Kind

	// Available is returned by IsAvailable()
	Available bool

	// VersionValue is returned by Version()
	VersionValue string

	// Instances is the ordered instance table returned by List()
	Instances []RawInstance

	// ExecResults maps instance names to predefined exec results
	ExecResults map[string]system.Result

	// Errors allows injecting errors for specific operations
	Errors map[string]error

	// CallLog records all method calls for verification
	CallLog []MockCall

	// Shells records the names passed to OpenShell
	Shells []string
}

// MockCall represents a recorded method call
type MockCall struct {
	Method string
	Args   []any
}

// NewMockBackend creates an available mock backend of the given kind
func NewMockBackend(kind Kind) *MockBackend {
	return &MockBackend{
		KindValue:    kind,
		Available:    true,
		VersionValue: "mock 1.0",
		ExecResults:  make(map[string]system.Result),
		Errors:       make(map[string]error),
		CallLog:      make([]MockCall, 0),
	}
}

func (m *MockBackend) record(method string, args ...any) {
	m.CallLog = append(m.CallLog, MockCall{Method: method, Args: args})
}

// SetError sets an error to be returned for a specific operation
func (m *MockBackend) SetError(operation string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors[operation] = err
}

// SetAvailable toggles the availability probe result
func (m *MockBackend) SetAvailable(available bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Available = available
}

// AddInstance adds an instance with the given raw status to the mock
func (m *MockBackend) AddInstance(name, rawStatus string, mounts ...Mount) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if mounts == nil {
		mounts = []Mount{}
	}
	m.Instances = append(m.Instances, RawInstance{
		Name:      name,
		RawStatus: rawStatus,
		IP:        IPNotAvailable,
		Mounts:    mounts,
	})
}

// Instance returns a copy of the named instance
func (m *MockBackend) Instance(name string) (RawInstance, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i := m.index(name)
	if i < 0 {
		return RawInstance{}, false
	}
	return m.Instances[i], true
}

func (m *MockBackend) index(name string) int {
	return slices.IndexFunc(m.Instances, func(inst RawInstance) bool {
		return inst.Name == name
	})
}

func (m *MockBackend) setStatus(name, raw string) error {
	i := m.index(name)
	if i < 0 {
		return fmt.Errorf("instance not found: %s", name)
	}
	m.Instances[i].RawStatus = raw
	return nil
}

// GetCalls returns all recorded calls
func (m *MockBackend) GetCalls() []MockCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	calls := make([]MockCall, len(m.CallLog))
	copy(calls, m.CallLog)
	return calls
}

// GetCallsFor returns all calls for a specific method
func (m *MockBackend) GetCallsFor(method string) []MockCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var calls []MockCall
	for _, call := range m.CallLog {
		if call.Method == method {
			calls = append(calls, call)
		}
	}
	return calls
}

// Methods returns the recorded method names in call order
func (m *MockBackend) Methods() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	methods := make([]string, len(m.CallLog))
	for i, call := range m.CallLog {
		methods[i] = call.Method
	}
	return methods
}

// Reset clears all state
func (m *MockBackend) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Instances = nil
	m.ExecResults = make(map[string]system.Result)
	m.Errors = make(map[string]error)
	m.CallLog = make([]MockCall, 0)
	m.Shells = nil
}

func (m *MockBackend) Kind() Kind {
	return m.KindValue
}

func (m *MockBackend) IsAvailable(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("IsAvailable")
	return m.Available
}

func (m *MockBackend) Version(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Version")
	if err, ok := m.Errors["Version"]; ok {
		return "", err
	}
	return m.VersionValue, nil
}

func (m *MockBackend) List(ctx context.Context) ([]RawInstance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("List")

	if err, ok := m.Errors["List"]; ok {
		return nil, err
	}

	instances := make([]RawInstance, len(m.Instances))
	copy(instances, m.Instances)
	return instances, nil
}

// Create adds the instance as running
func (m *MockBackend) Create(ctx context.Context, name string, tmpl catalog.Template, mounts []Mount, res Resources) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Create", name, tmpl, mounts, res)

	if err, ok := m.Errors["Create"]; ok {
		return err
	}

	if mounts == nil {
		mounts = []Mount{}
	}
	m.Instances = append(m.Instances, RawInstance{
		Name:      name,
		RawStatus: "Running",
		IP:        "10.0.0.2",
		Mounts:    mounts,
	})
	return nil
}

func (m *MockBackend) Start(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Start", name)

	if err, ok := m.Errors["Start"]; ok {
		return err
	}
	return m.setStatus(name, "Running")
}

func (m *MockBackend) Stop(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Stop", name)

	if err, ok := m.Errors["Stop"]; ok {
		return err
	}
	return m.setStatus(name, "Stopped")
}

func (m *MockBackend) Delete(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Delete", name)

	if err, ok := m.Errors["Delete"]; ok {
		return err
	}

	i := m.index(name)
	if i < 0 {
		return fmt.Errorf("instance not found: %s", name)
	}
	m.Instances = slices.Delete(m.Instances, i, i+1)
	return nil
}

func (m *MockBackend) Exec(ctx context.Context, name string, command []string) (system.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Exec", name, command)

	if err, ok := m.Errors["Exec"]; ok {
		return system.Result{}, err
	}
	return m.ExecResults[name], nil
}

func (m *MockBackend) ExecInteractive(ctx context.Context, name string, command []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("ExecInteractive", name, command)

	if err, ok := m.Errors["ExecInteractive"]; ok {
		return err
	}
	return nil
}

func (m *MockBackend) ShellCommand(name string) []string {
	return []string{"mock", "shell", name}
}

func (m *MockBackend) OpenShell(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("OpenShell", name)

	if err, ok := m.Errors["OpenShell"]; ok {
		return err
	}
	m.Shells = append(m.Shells, name)
	return nil
}

func (m *MockBackend) Info(ctx context.Context, name string) (*Info, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Info", name)

	if err, ok := m.Errors["Info"]; ok {
		return nil, err
	}

	i := m.index(name)
	if i < 0 {
		return nil, fmt.Errorf("instance not found: %s", name)
	}
	return &Info{
		Name:    name,
		Backend: m.KindValue,
		Details: map[string]any{"state": m.Instances[i].RawStatus},
		Mounts:  m.Instances[i].Mounts,
	}, nil
}

var _ Backend = (*MockBackend)(nil)
