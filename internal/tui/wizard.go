package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/backend"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/catalog"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/config"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/reconcile"
)

// guestHome is where a project directory is mounted inside the guest.
const guestHome = "/home/ubuntu"

// CreateDefaults seeds the wizard's advanced step.
type CreateDefaults struct {
	Backend   backend.Kind
	Resources backend.Resources
}

type wizardStep int

const (
	stepPath wizardStep = iota
	stepTemplate
	stepName
	stepAdvanced
	stepConfirm
)

type advancedField int

const (
	advBackend advancedField = iota
	advCPUs
	advMemory
	advDisk
	advFieldCount
)

// wizardModel drives the multi-step creation wizard.
type wizardModel struct {
	step      wizardStep
	templates []catalog.Template
	defaults  CreateDefaults

	pathInput    textinput.Model
	templateList list.Model
	nameInput    textinput.Model

	advCursor   advancedField
	backendKind backend.Kind
	cpuInput    textinput.Model
	memoryInput textinput.Model
	diskInput   textinput.Model

	selectedMount    *backend.Mount
	selectedTemplate string
	selectedName     string
	resources        backend.Resources

	err string

	width  int
	height int
}

type templateItem struct {
	id          string
	name        string
	description string
	custom      bool
}

func (t templateItem) Title() string {
	if t.custom {
		return t.id + " (custom)"
	}
	return t.id
}
func (t templateItem) Description() string { return t.name + " - " + t.description }
func (t templateItem) FilterValue() string { return t.id }

var (
	wizardTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				MarginBottom(1)

	wizardStepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	wizardActiveStepStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39"))

	wizardLabelStyle = lipgloss.NewStyle().
				Bold(true).
				MarginBottom(1)

	wizardValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39"))

	wizardDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	wizardErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196"))
)

func newNumberInput(value int, placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 6
	ti.Width = 10
	if value > 0 {
		ti.SetValue(strconv.Itoa(value))
	}
	return ti
}

func newWizardModel(templates []catalog.Template, defaults CreateDefaults) wizardModel {
	pi := textinput.New()
	pi.Placeholder = "/path/to/project (optional)"
	pi.Focus()
	pi.CharLimit = 256
	pi.Width = 60
	pi.ShowSuggestions = true

	ni := textinput.New()
	ni.Placeholder = "environment-name"
	ni.CharLimit = 63
	ni.Width = 40

	if defaults.Backend == "" {
		defaults.Backend = backend.KindVM
	}

	return wizardModel{
		step:        stepPath,
		templates:   templates,
		defaults:    defaults,
		pathInput:   pi,
		nameInput:   ni,
		backendKind: defaults.Backend,
		cpuInput:    newNumberInput(defaults.Resources.CPUs, "cpus"),
		memoryInput: newNumberInput(defaults.Resources.MemoryMB, "MB"),
		diskInput:   newNumberInput(defaults.Resources.DiskGB, "GB"),
		resources:   defaults.Resources,
	}
}

func (w *wizardModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update processes a message and returns (done, spec, cmd).
// done=true with a non-nil spec means the wizard completed.
// done=true with a nil spec means it was cancelled.
func (w *wizardModel) Update(msg tea.Msg) (bool, *reconcile.CreateSpec, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		w.width = size.Width
		w.height = size.Height
		return false, nil, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyCtrlC:
			return true, nil, nil
		case tea.KeyEsc:
			return w.handleBack()
		}
	}

	switch w.step {
	case stepPath:
		return w.updatePath(msg)
	case stepTemplate:
		return w.updateTemplate(msg)
	case stepName:
		return w.updateName(msg)
	case stepAdvanced:
		return w.updateAdvanced(msg)
	case stepConfirm:
		return w.updateConfirm(msg)
	}

	return false, nil, nil
}

func (w *wizardModel) handleBack() (bool, *reconcile.CreateSpec, tea.Cmd) {
	w.err = ""
	switch w.step {
	case stepPath:
		return true, nil, nil
	case stepTemplate:
		w.step = stepPath
		w.pathInput.Focus()
		return false, nil, textinput.Blink
	case stepName:
		w.step = stepTemplate
		w.nameInput.Blur()
		return false, nil, nil
	case stepAdvanced, stepConfirm:
		w.blurAllAdvInputs()
		w.step = stepName
		w.nameInput.Focus()
		return false, nil, textinput.Blink
	}
	return false, nil, nil
}

func (w *wizardModel) updatePath(msg tea.Msg) (bool, *reconcile.CreateSpec, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
		mount, err := projectMount(strings.TrimSpace(w.pathInput.Value()))
		if err != nil {
			w.err = err.Error()
			return false, nil, nil
		}
		w.err = ""
		w.selectedMount = mount
		w.step = stepTemplate
		w.pathInput.Blur()
		w.loadTemplates()
		return false, nil, nil
	}

	var cmd tea.Cmd
	w.pathInput, cmd = w.pathInput.Update(msg)
	w.updatePathSuggestions()

	return false, nil, cmd
}

func (w *wizardModel) updateTemplate(msg tea.Msg) (bool, *reconcile.CreateSpec, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
		if item, ok := w.templateList.SelectedItem().(templateItem); ok {
			w.selectedTemplate = item.id
			w.step = stepName
			w.nameInput.Focus()
			path := ""
			if w.selectedMount != nil {
				path = w.selectedMount.HostPath
			}
			w.nameInput.SetValue(suggestName(path, w.selectedTemplate))
			return false, nil, textinput.Blink
		}
		return false, nil, nil
	}

	var cmd tea.Cmd
	w.templateList, cmd = w.templateList.Update(msg)
	return false, nil, cmd
}

func (w *wizardModel) updateName(msg tea.Msg) (bool, *reconcile.CreateSpec, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter, tea.KeyCtrlA:
			name := strings.TrimSpace(w.nameInput.Value())
			if err := config.ValidateEnvironmentName(name); err != nil {
				w.err = err.Error()
				return false, nil, nil
			}
			w.err = ""
			w.selectedName = name
			w.nameInput.Blur()
			if keyMsg.Type == tea.KeyCtrlA {
				w.step = stepAdvanced
				return false, nil, w.focusCurrentField()
			}
			w.step = stepConfirm
			return false, nil, nil
		}
	}

	var cmd tea.Cmd
	w.nameInput, cmd = w.nameInput.Update(msg)
	return false, nil, cmd
}

func (w *wizardModel) activeInput() *textinput.Model {
	switch w.advCursor {
	case advCPUs:
		return &w.cpuInput
	case advMemory:
		return &w.memoryInput
	case advDisk:
		return &w.diskInput
	}
	return nil
}

func (w *wizardModel) blurAllAdvInputs() {
	w.cpuInput.Blur()
	w.memoryInput.Blur()
	w.diskInput.Blur()
}

func (w *wizardModel) focusCurrentField() tea.Cmd {
	w.blurAllAdvInputs()
	if ti := w.activeInput(); ti != nil {
		ti.Focus()
		return textinput.Blink
	}
	return nil
}

func (w *wizardModel) moveCursor(delta int) tea.Cmd {
	w.advCursor = (w.advCursor + advancedField(delta) + advFieldCount) % advFieldCount
	return w.focusCurrentField()
}

// cycleBackend advances the backend choice through backend.Kinds.
func (w *wizardModel) cycleBackend() {
	i := slices.Index(backend.Kinds, w.backendKind)
	w.backendKind = backend.Kinds[(i+1)%len(backend.Kinds)]
}

func (w *wizardModel) updateAdvanced(msg tea.Msg) (bool, *reconcile.CreateSpec, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if isKey {
		switch keyMsg.Type {
		case tea.KeyEnter:
			res, err := w.parseResources()
			if err != nil {
				w.err = err.Error()
				return false, nil, nil
			}
			w.err = ""
			w.resources = res
			w.blurAllAdvInputs()
			w.step = stepConfirm
			return false, nil, nil
		case tea.KeyUp, tea.KeyShiftTab:
			return false, nil, w.moveCursor(-1)
		case tea.KeyDown, tea.KeyTab:
			return false, nil, w.moveCursor(1)
		}
	}

	if ti := w.activeInput(); ti != nil {
		var cmd tea.Cmd
		*ti, cmd = ti.Update(msg)
		return false, nil, cmd
	}

	if isKey {
		switch keyMsg.String() {
		case "j":
			return false, nil, w.moveCursor(1)
		case "k":
			return false, nil, w.moveCursor(-1)
		case " ", "left", "right", "h", "l":
			w.cycleBackend()
		}
	}
	return false, nil, nil
}

// parseResources reads the advanced inputs. An empty input leaves the
// backend default in place.
func (w *wizardModel) parseResources() (backend.Resources, error) {
	var res backend.Resources
	fields := []struct {
		label string
		input *textinput.Model
		dst   *int
		min   int
		max   int
	}{
		{"cpus", &w.cpuInput, &res.CPUs, 1, 32},
		{"memory", &w.memoryInput, &res.MemoryMB, 512, 32768},
		{"disk", &w.diskInput, &res.DiskGB, 5, 1000},
	}

	for _, f := range fields {
		raw := strings.TrimSpace(f.input.Value())
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < f.min || n > f.max {
			return backend.Resources{}, fmt.Errorf("%s must be between %d and %d", f.label, f.min, f.max)
		}
		*f.dst = n
	}
	return res, nil
}

func (w *wizardModel) spec() *reconcile.CreateSpec {
	spec := &reconcile.CreateSpec{
		Name:      w.selectedName,
		Template:  w.selectedTemplate,
		Backend:   w.backendKind,
		Resources: w.resources,
	}
	if w.selectedMount != nil {
		spec.Mounts = []backend.Mount{*w.selectedMount}
	}
	return spec
}

func (w *wizardModel) updateConfirm(msg tea.Msg) (bool, *reconcile.CreateSpec, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter", "y":
			return true, w.spec(), nil
		case "n":
			*w = newWizardModel(w.templates, w.defaults)
			return false, nil, textinput.Blink
		}
	}
	return false, nil, nil
}

func (w *wizardModel) View() string {
	var b strings.Builder

	b.WriteString(wizardTitleStyle.Render("Create New Environment"))
	b.WriteString("\n")
	b.WriteString(w.progressBar())
	b.WriteString("\n\n")

	switch w.step {
	case stepPath:
		b.WriteString(wizardLabelStyle.Render("Project directory:"))
		b.WriteString("\n")
		b.WriteString(w.pathInput.View())
		b.WriteString("\n\n")
		b.WriteString(wizardDimStyle.Render("Mounted at " + guestHome + "/<dir>. Leave empty to skip. Tab to complete."))
	case stepTemplate:
		b.WriteString(wizardLabelStyle.Render("Select template:"))
		b.WriteString("\n")
		b.WriteString(w.templateList.View())
	case stepName:
		b.WriteString(wizardLabelStyle.Render("Environment name:"))
		b.WriteString("\n")
		b.WriteString(w.nameInput.View())
		b.WriteString("\n\n")
		b.WriteString(wizardDimStyle.Render("Enter to confirm, Ctrl+A for backend and resources."))
	case stepAdvanced:
		b.WriteString(wizardLabelStyle.Render("Backend and resources:"))
		b.WriteString("\n\n")
		b.WriteString(w.renderField(advBackend, "Backend", fmt.Sprintf("%s (%s)", w.backendKind, w.backendKind.Class()), "Space to switch"))
		b.WriteString("\n")
		b.WriteString(w.renderInput(advCPUs, "CPUs", &w.cpuInput))
		b.WriteString("\n")
		b.WriteString(w.renderInput(advMemory, "Memory (MB)", &w.memoryInput))
		b.WriteString("\n")
		b.WriteString(w.renderInput(advDisk, "Disk (GB)", &w.diskInput))
		b.WriteString("\n\n")
		b.WriteString(wizardDimStyle.Render("Tab/arrows to move, Enter to continue, Esc to go back."))
	case stepConfirm:
		b.WriteString(wizardLabelStyle.Render("Confirm:"))
		b.WriteString("\n\n")
		fmt.Fprintf(&b, "  Name:     %s\n", wizardValueStyle.Render(w.selectedName))
		fmt.Fprintf(&b, "  Template: %s\n", wizardValueStyle.Render(w.selectedTemplate))
		fmt.Fprintf(&b, "  Backend:  %s\n", wizardValueStyle.Render(string(w.backendKind)))
		if w.selectedMount != nil {
			fmt.Fprintf(&b, "  Mount:    %s\n", wizardValueStyle.Render(w.selectedMount.String()))
		}
		if r := w.resources; r.CPUs > 0 || r.MemoryMB > 0 || r.DiskGB > 0 {
			fmt.Fprintf(&b, "  Limits:   %s\n", wizardValueStyle.Render(formatResources(r)))
		}
		b.WriteString("\n")
		b.WriteString(wizardDimStyle.Render("Enter to create, n to restart, Esc to go back."))
	}

	if w.err != "" {
		b.WriteString("\n\n")
		b.WriteString(wizardErrorStyle.Render(w.err))
	}

	return b.String()
}

func formatResources(r backend.Resources) string {
	var parts []string
	if r.CPUs > 0 {
		parts = append(parts, fmt.Sprintf("%d cpus", r.CPUs))
	}
	if r.MemoryMB > 0 {
		parts = append(parts, fmt.Sprintf("%d MB", r.MemoryMB))
	}
	if r.DiskGB > 0 {
		parts = append(parts, fmt.Sprintf("%d GB disk", r.DiskGB))
	}
	return strings.Join(parts, ", ")
}

func (w *wizardModel) progressBar() string {
	steps := []string{"Path", "Template", "Name", "Confirm"}

	current := int(w.step)
	switch w.step {
	case stepAdvanced:
		current = int(stepName)
	case stepConfirm:
		current = 3
	}

	parts := make([]string, len(steps))
	for i, name := range steps {
		label := fmt.Sprintf("%d. %s", i+1, name)
		if i == current {
			parts[i] = wizardActiveStepStyle.Render(label)
		} else {
			parts[i] = wizardStepStyle.Render(label)
		}
	}

	return strings.Join(parts, wizardDimStyle.Render(" > "))
}

func (w *wizardModel) renderField(field advancedField, name, value, desc string) string {
	cursor := " "
	if w.advCursor == field {
		cursor = ">"
	}
	line := fmt.Sprintf("  %s %s: %s", cursor, name, value)
	if w.advCursor == field {
		return selectedStyle.Render(line) + "\n" + wizardDimStyle.Render("      "+desc)
	}
	return line
}

func (w *wizardModel) renderInput(field advancedField, name string, ti *textinput.Model) string {
	if w.advCursor == field {
		return selectedStyle.Render(fmt.Sprintf("  > %s: ", name)) + ti.View()
	}
	val := strings.TrimSpace(ti.Value())
	if val == "" {
		val = "(backend default)"
	}
	return fmt.Sprintf("    %s: %s", name, val)
}

func (w *wizardModel) loadTemplates() {
	items := make([]list.Item, 0, len(w.templates))
	for _, t := range w.templates {
		items = append(items, templateItem{id: t.ID, name: t.Name, description: t.Description, custom: t.Custom})
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	l := list.New(items, delegate, 60, 14)
	l.Title = ""
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	if w.width > 0 {
		l.SetWidth(w.width - 4)
	}
	if w.height > 0 {
		l.SetHeight(w.height - 10)
	}

	w.templateList = l
}

// projectMount turns the path step's input into a mount of the directory
// under guestHome. An empty input means no mount.
func projectMount(input string) (*backend.Mount, error) {
	if input == "" {
		return nil, nil
	}

	path := expandHome(input)
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("cannot use %s: %w", input, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", input)
	}

	mount, err := backend.ParseMount(abs + ":" + guestHome + "/" + filepath.Base(abs))
	if err != nil {
		return nil, err
	}
	return &mount, nil
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			return home + path[1:]
		}
	}
	return path
}

func (w *wizardModel) updatePathSuggestions() {
	val := w.pathInput.Value()
	if val == "" {
		w.pathInput.SetSuggestions(nil)
		return
	}

	expanded := expandHome(val)
	dir := expanded
	prefix := ""

	info, err := os.Stat(expanded)
	if err != nil || !info.IsDir() {
		dir = filepath.Dir(expanded)
		prefix = filepath.Base(expanded)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		w.pathInput.SetSuggestions(nil)
		return
	}

	home, _ := os.UserHomeDir()
	var suggestions []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if prefix != "" && !strings.HasPrefix(strings.ToLower(name), strings.ToLower(prefix)) {
			continue
		}
		full := filepath.Join(dir, name)
		if strings.HasPrefix(val, "~") && home != "" {
			full = "~" + strings.TrimPrefix(full, home)
		}
		suggestions = append(suggestions, full)
	}

	w.pathInput.SetSuggestions(suggestions)
}

var invalidNameChars = regexp.MustCompile(`[^a-z0-9-]+`)

// suggestName derives an environment name from the project directory and
// template. The result always passes config.ValidateEnvironmentName.
func suggestName(path, template string) string {
	base := ""
	if path != "" {
		base = strings.ToLower(filepath.Base(path))
		base = invalidNameChars.ReplaceAllString(base, "-")
		base = strings.Trim(base, "-")
	}
	if base == "" || base == "." {
		base = "env"
	}
	if base[0] < 'a' || base[0] > 'z' {
		base = "env-" + base
	}

	name := base
	if template != "" {
		name = base + "-" + invalidNameChars.ReplaceAllString(strings.ToLower(template), "-")
	}
	if len(name) > 63 {
		name = name[:63]
	}
	return strings.TrimRight(name, "-")
}

// wizardProgram runs the wizard on its own, outside the picker.
type wizardProgram struct {
	wizard wizardModel
	spec   *reconcile.CreateSpec
	done   bool
}

func (p *wizardProgram) Init() tea.Cmd {
	return p.wizard.Init()
}

func (p *wizardProgram) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	done, spec, cmd := p.wizard.Update(msg)
	if done {
		p.done = true
		p.spec = spec
		return p, tea.Quit
	}
	return p, cmd
}

func (p *wizardProgram) View() string {
	if p.done {
		return ""
	}
	return p.wizard.View()
}

// RunWizard runs the creation wizard and returns the collected spec, or
// nil when the user cancels.
func RunWizard(templates []catalog.Template, defaults CreateDefaults) (*reconcile.CreateSpec, error) {
	p := &wizardProgram{wizard: newWizardModel(templates, defaults)}
	if _, err := tea.NewProgram(p).Run(); err != nil {
		return nil, err
	}
	return p.spec, nil
}
