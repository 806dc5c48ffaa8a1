package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/catalog"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/logging"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/operation"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/reconcile"
)

// Manager is the set of environment operations the picker drives.
// *reconcile.Reconciler satisfies it.
type Manager interface {
	List(ctx context.Context) []reconcile.Environment
	Create(ctx context.Context, spec reconcile.CreateSpec) error
	Start(ctx context.Context, name string) (bool, error)
	Stop(ctx context.Context, name string) (bool, error)
	Delete(ctx context.Context, name string) error
	OpenShell(ctx context.Context, name string) error
}

// PickerOptions configures the picker.
type PickerOptions struct {
	// AllowCreate enables the creation wizard on "n".
	AllowCreate bool
	Templates   []catalog.Template
	Defaults    CreateDefaults
}

// envItem implements list.Item for environment display.
type envItem struct {
	env     reconcile.Environment
	pending string
}

func (i envItem) Title() string {
	return i.env.Name
}

func (i envItem) Description() string {
	desc := fmt.Sprintf("%s %s | %s | %s | %s",
		StatusIcon(i.env.Status),
		i.env.Status,
		i.env.Template,
		i.env.Backend,
		i.env.IP,
	)
	if i.pending != "" {
		desc += " | " + i.pending + "..."
	}
	return desc
}

func (i envItem) FilterValue() string {
	return i.env.Name
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))
)

// opDoneMsg reports that a dispatched operation has finished.
type opDoneMsg struct {
	op *operation.Operation
}

// refreshMsg carries a fresh listing.
type refreshMsg struct {
	envs []reconcile.Environment
}

// Model is the bubbletea model for the environment picker. Mutating
// operations run as operation futures; the model stays responsive and
// refreshes the listing when each one completes.
type Model struct {
	ctx  context.Context
	mgr  Manager
	opts PickerOptions

	list    list.Model
	spinner spinner.Model
	envs    []reconcile.Environment

	// pending holds the operation in flight for each environment name.
	pending map[string]*operation.Operation

	confirmDelete string
	wizard        *wizardModel

	status    string
	statusErr bool

	quitting bool
	width    int
	height   int
}

// NewPicker creates a picker showing envs.
func NewPicker(ctx context.Context, mgr Manager, envs []reconcile.Environment, opts PickerOptions) Model {
	l := list.New(nil, newGroupedDelegate(), 80, 20)
	l.Title = "Ubuntu Dev Manager"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	m := Model{
		ctx:     ctx,
		mgr:     mgr,
		opts:    opts,
		list:    l,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		envs:    envs,
		pending: map[string]*operation.Operation{},
	}
	m.refreshItems()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) refreshItems() {
	m.list.SetItems(buildGroupedItems(m.envs, m.pending))
	skipHeaders(&m.list, 1)
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusErr = isErr
}

func (m Model) selected() (reconcile.Environment, bool) {
	if item, ok := m.list.SelectedItem().(envItem); ok {
		return item.env, true
	}
	return reconcile.Environment{}, false
}

// refresh lists environments off the update loop.
func (m Model) refresh() tea.Cmd {
	ctx, mgr := m.ctx, m.mgr
	return func() tea.Msg {
		return refreshMsg{envs: mgr.List(ctx)}
	}
}

func waitFor(op *operation.Operation) tea.Cmd {
	return func() tea.Msg {
		<-op.Done()
		return opDoneMsg{op: op}
	}
}

// dispatch starts fn as an operation on name. At most one operation per
// environment is in flight.
func (m *Model) dispatch(kind, name string, fn func(context.Context) error) tea.Cmd {
	if inFlight, busy := m.pending[name]; busy {
		m.setStatus(fmt.Sprintf("%s: %s already in progress", name, inFlight.Kind), true)
		return nil
	}

	op := operation.Go(m.ctx, kind, name, fn)
	first := len(m.pending) == 0
	m.pending[name] = op
	m.refreshItems()
	m.setStatus(fmt.Sprintf("%s %s...", kind, name), false)

	if first {
		return tea.Batch(waitFor(op), m.spinner.Tick)
	}
	return waitFor(op)
}

func (m *Model) start(name string) tea.Cmd {
	mgr := m.mgr
	return m.dispatch("start", name, func(ctx context.Context) error {
		_, err := mgr.Start(ctx, name)
		return err
	})
}

func (m *Model) stop(name string) tea.Cmd {
	mgr := m.mgr
	return m.dispatch("stop", name, func(ctx context.Context) error {
		_, err := mgr.Stop(ctx, name)
		return err
	})
}

func (m *Model) remove(name string) tea.Cmd {
	mgr := m.mgr
	return m.dispatch("delete", name, func(ctx context.Context) error {
		return mgr.Delete(ctx, name)
	})
}

func (m *Model) shell(name string) tea.Cmd {
	mgr := m.mgr
	return m.dispatch("shell", name, func(ctx context.Context) error {
		return mgr.OpenShell(ctx, name)
	})
}

func (m *Model) create(spec reconcile.CreateSpec) tea.Cmd {
	mgr := m.mgr
	return m.dispatch("create", spec.Name, func(ctx context.Context) error {
		return mgr.Create(ctx, spec)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		if m.wizard != nil {
			m.wizard.Update(msg)
		}
		return m, nil

	case opDoneMsg:
		op := msg.op
		delete(m.pending, op.Target)
		if err := op.Err(); err != nil {
			logging.Debug("operation failed", "id", op.ID, "kind", op.Kind, "target", op.Target, "error", err)
			m.setStatus(err.Error(), true)
		} else {
			m.setStatus(fmt.Sprintf("%s %s: done in %s", op.Kind, op.Target, op.Duration().Round(100*time.Millisecond)), false)
		}
		m.refreshItems()
		return m, m.refresh()

	case refreshMsg:
		m.envs = msg.envs
		m.refreshItems()
		return m, nil

	case spinner.TickMsg:
		if len(m.pending) == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.wizard != nil {
		done, spec, cmd := m.wizard.Update(msg)
		if !done {
			return m, cmd
		}
		m.wizard = nil
		if spec == nil {
			return m, nil
		}
		return m, m.create(*spec)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if m.confirmDelete != "" {
			name := m.confirmDelete
			m.confirmDelete = ""
			if keyMsg.String() == "y" {
				return m, m.remove(name)
			}
			m.setStatus("delete cancelled", false)
			return m, nil
		}

		if m.list.FilterState() != list.Filtering {
			if cmd, handled := m.handleKey(keyMsg); handled {
				return m, cmd
			}
		}

		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		if isHeaderSelected(&m.list) {
			skipHeaders(&m.list, navigationDirection(keyMsg))
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleKey runs the picker's own key bindings. It reports false for keys
// the list should handle.
func (m *Model) handleKey(keyMsg tea.KeyMsg) (tea.Cmd, bool) {
	env, hasEnv := m.selected()

	switch keyMsg.String() {
	case "enter":
		if hasEnv {
			return m.shell(env.Name), true
		}
	case "u":
		if hasEnv {
			return m.start(env.Name), true
		}
	case "d":
		if hasEnv {
			return m.stop(env.Name), true
		}
	case "x":
		if hasEnv {
			m.confirmDelete = env.Name
			return nil, true
		}
	case "r":
		return m.refresh(), true
	case "n":
		if m.opts.AllowCreate {
			w := newWizardModel(m.opts.Templates, m.opts.Defaults)
			w.width, w.height = m.width, m.height
			m.wizard = &w
			return w.Init(), true
		}
	case "q", "esc":
		m.quitting = true
		return tea.Quit, true
	}
	return nil, false
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.wizard != nil {
		return m.wizard.View()
	}

	var b strings.Builder
	if len(m.envs) == 0 {
		b.WriteString(titleStyle.Render("Ubuntu Dev Manager"))
		b.WriteString("\n\nNo environments found.\n")
	} else {
		b.WriteString(m.list.View())
		items := m.list.Items()
		fmt.Fprintf(&b, "\n%d environment(s)", len(items)-headerCount(items))
	}
	b.WriteString("\n")

	if n := len(m.pending); n > 0 {
		fmt.Fprintf(&b, "%s %d operation(s) running\n", m.spinner.View(), n)
	}

	switch {
	case m.confirmDelete != "":
		b.WriteString(errorStyle.Render(fmt.Sprintf("Delete %s? This cannot be undone. [y/N]", m.confirmDelete)))
		b.WriteString("\n")
	case m.status != "" && m.statusErr:
		b.WriteString(errorStyle.Render(m.status))
		b.WriteString("\n")
	case m.status != "":
		b.WriteString(successStyle.Render(m.status))
		b.WriteString("\n")
	}

	help := "[enter] Shell  [u] Start  [d] Stop  [x] Delete  [r] Refresh  [/] Filter  [q] Quit"
	if m.opts.AllowCreate {
		help = "[enter] Shell  [u] Start  [d] Stop  [x] Delete  [n] New  [r] Refresh  [/] Filter  [q] Quit"
	}
	b.WriteString(helpStyle.Render(help))

	return b.String()
}

// Wait blocks until every operation the picker dispatched has finished.
func (m Model) Wait() {
	for _, op := range m.pending {
		op.Wait()
	}
}

// RunPicker runs the interactive environment picker until the user quits.
// Operations still in flight when the picker exits keep running until
// their external command returns; RunPicker waits for them.
func RunPicker(ctx context.Context, mgr Manager, opts PickerOptions) error {
	m := NewPicker(ctx, mgr, mgr.List(ctx), opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.Wait()
	}
	return err
}

// Summary renders a non-interactive listing of envs.
func Summary(envs []reconcile.Environment) string {
	var sb strings.Builder

	sb.WriteString("Ubuntu Dev Manager - Environments\n")
	sb.WriteString(strings.Repeat("─", 60) + "\n\n")

	if len(envs) == 0 {
		sb.WriteString("No environments found.\n")
		sb.WriteString("Create one with: udm create <name> -t <template>\n")
		return sb.String()
	}

	for i, env := range envs {
		fmt.Fprintf(&sb, "%d. %s %s (%s)\n", i+1, StatusIcon(env.Status), env.Name, env.Template)
		fmt.Fprintf(&sb, "   Backend: %s | IP: %s\n\n", env.Backend, env.IP)
	}

	return sb.String()
}
