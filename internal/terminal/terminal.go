// Package terminal opens environment shells in a new host terminal window.
package terminal

import (
	"fmt"
	"os"
	"slices"

	"github.com/kballard/go-shellquote"

	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/errors"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/logging"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/system"
)

// Auto selects the first emulator found on the host.
const Auto = "auto"

// Emulator describes how to hand a command line to one terminal program.
type Emulator struct {
	// Name is the executable name.
	Name string
	// Exec is the argument that introduces the command to run.
	Exec []string
	// Title returns the arguments that set the window title, if supported.
	Title func(title string) []string
}

// Emulators lists the supported terminal programs in probe order.
var Emulators = []Emulator{
	{Name: "gnome-terminal", Exec: []string{"--"}, Title: func(t string) []string { return []string{"--title=" + t} }},
	{Name: "konsole", Exec: []string{"-e"}, Title: func(t string) []string { return []string{"-p", "tabtitle=" + t} }},
	{Name: "xterm", Exec: []string{"-e"}, Title: func(t string) []string { return []string{"-T", t} }},
	{Name: "alacritty", Exec: []string{"-e"}, Title: func(t string) []string { return []string{"--title", t} }},
	{Name: "wezterm", Exec: []string{"start", "--"}},
	{Name: "terminator", Exec: []string{"-x"}, Title: func(t string) []string { return []string{"-T", t} }},
}

// Lookup returns the emulator with the given executable name.
func Lookup(name string) (Emulator, bool) {
	i := slices.IndexFunc(Emulators, func(e Emulator) bool { return e.Name == name })
	if i < 0 {
		return Emulator{}, false
	}
	return Emulators[i], true
}

// Launcher spawns shells in a detached terminal window.
type Launcher struct {
	runner    system.Runner
	preferred string
	getenv    func(string) string
}

// NewLauncher creates a launcher. preferred is a name from Emulators or Auto.
func NewLauncher(runner system.Runner, preferred string) *Launcher {
	if runner == nil {
		runner = system.DefaultRunner()
	}
	if preferred == "" {
		preferred = Auto
	}
	return &Launcher{runner: runner, preferred: preferred, getenv: os.Getenv}
}

// Detect picks the emulator to use. An explicit preference must be
// installed. In auto mode the terminal hosting this process wins when it
// is installed, then the probe order applies.
func (l *Launcher) Detect() (Emulator, error) {
	if l.preferred != Auto {
		e, ok := Lookup(l.preferred)
		if !ok {
			return Emulator{}, fmt.Errorf("unsupported terminal emulator %q", l.preferred)
		}
		if _, err := l.runner.LookPath(e.Name); err != nil {
			return Emulator{}, fmt.Errorf("terminal emulator %s not found", e.Name)
		}
		return e, nil
	}

	if name := hostEmulator(l.getenv); name != "" {
		if _, err := l.runner.LookPath(name); err == nil {
			e, _ := Lookup(name)
			logging.Debug("using host terminal", "emulator", name)
			return e, nil
		}
	}

	for _, e := range Emulators {
		if _, err := l.runner.LookPath(e.Name); err == nil {
			return e, nil
		}
	}
	return Emulator{}, fmt.Errorf("no supported terminal emulator found")
}

// Command builds the host argv that runs shell in e. The window stays
// open after the guest shell exits.
func Command(e Emulator, title string, shell []string) []string {
	argv := []string{e.Name}
	if e.Title != nil && title != "" {
		argv = append(argv, e.Title(title)...)
	}
	argv = append(argv, e.Exec...)
	return append(argv, "bash", "-c", shellquote.Join(shell...)+"; exec bash")
}

// Launch opens shell in a new terminal window and returns once the
// terminal has been spawned.
func (l *Launcher) Launch(title string, shell []string) error {
	e, err := l.Detect()
	if err != nil {
		return errors.OperationFailed("open shell", title, err)
	}

	argv := Command(e, title, shell)
	logging.Debug("opening terminal", "emulator", e.Name, "argv", argv)
	if err := l.runner.Spawn(argv...); err != nil {
		return errors.OperationFailed("open shell", title, err)
	}
	return nil
}
