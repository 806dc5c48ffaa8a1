package tui

import (
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/backend"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/operation"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/reconcile"
)

// headerItem is a non-selectable group separator in the picker list.
type headerItem struct {
	label string
}

func (h headerItem) FilterValue() string { return "" }
func (h headerItem) Title() string       { return h.label }
func (h headerItem) Description() string { return "" }

// groupLabel returns the header shown above a backend's environments.
func groupLabel(kind backend.Kind) string {
	return fmt.Sprintf("%s (%s)", kind, kind.Class())
}

// buildGroupedItems groups environments by backend and returns list items
// with headerItem separators. Groups follow backend order; environments
// keep the order the backend reported them in. Backends with no
// environments get no header.
func buildGroupedItems(envs []reconcile.Environment, pending map[string]*operation.Operation) []list.Item {
	if len(envs) == 0 {
		return nil
	}

	byKind := make(map[backend.Kind][]reconcile.Environment)
	var order []backend.Kind
	for _, env := range envs {
		if _, ok := byKind[env.Backend]; !ok {
			order = append(order, env.Backend)
		}
		byKind[env.Backend] = append(byKind[env.Backend], env)
	}

	var items []list.Item
	for _, kind := range orderKinds(order) {
		items = append(items, headerItem{label: groupLabel(kind)})
		for _, env := range byKind[kind] {
			item := envItem{env: env}
			if op, ok := pending[env.Name]; ok {
				item.pending = op.Kind
			}
			items = append(items, item)
		}
	}
	return items
}

// orderKinds puts known backends first in their canonical order, followed
// by anything else in first-seen order.
func orderKinds(seen []backend.Kind) []backend.Kind {
	out := make([]backend.Kind, 0, len(seen))
	for _, k := range backend.Kinds {
		if slices.Contains(seen, k) {
			out = append(out, k)
		}
	}
	for _, s := range seen {
		if !slices.Contains(backend.Kinds, s) {
			out = append(out, s)
		}
	}
	return out
}

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("241")).
	PaddingLeft(2)

// groupedDelegate renders both headerItem and envItem in the picker list.
type groupedDelegate struct {
	inner list.DefaultDelegate
}

func newGroupedDelegate() groupedDelegate {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	return groupedDelegate{inner: delegate}
}

func (d groupedDelegate) Height() int                             { return d.inner.Height() }
func (d groupedDelegate) Spacing() int                            { return d.inner.Spacing() }
func (d groupedDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d groupedDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	if h, ok := item.(headerItem); ok {
		fmt.Fprint(w, headerStyle.Render(h.label))
		return
	}
	d.inner.Render(w, m, index, item)
}

// skipHeaders moves the cursor off a headerItem, preferring direction
// (1 for down, -1 for up).
func skipHeaders(l *list.Model, direction int) {
	items := l.Items()
	if len(items) == 0 {
		return
	}

	idx := l.Index()
	if idx >= len(items) {
		idx = len(items) - 1
		l.Select(idx)
	}
	if _, ok := items[idx].(headerItem); !ok {
		return
	}

	next := idx + direction
	if next >= 0 && next < len(items) {
		if _, ok := items[next].(headerItem); !ok {
			l.Select(next)
			return
		}
	}

	opposite := idx - direction
	if opposite >= 0 && opposite < len(items) {
		if _, ok := items[opposite].(headerItem); !ok {
			l.Select(opposite)
			return
		}
	}

	for i := 0; i < len(items); i++ {
		candidate := (idx + i*direction + len(items)) % len(items)
		if _, ok := items[candidate].(headerItem); !ok {
			l.Select(candidate)
			return
		}
	}
}

func isHeaderSelected(l *list.Model) bool {
	if item := l.SelectedItem(); item != nil {
		_, ok := item.(headerItem)
		return ok
	}
	return false
}

// navigationDirection returns -1 for up/k keys and 1 for everything else.
func navigationDirection(msg tea.KeyMsg) int {
	switch msg.String() {
	case "up", "k":
		return -1
	default:
		return 1
	}
}

func headerCount(items []list.Item) int {
	count := 0
	for _, item := range items {
		if _, ok := item.(headerItem); ok {
			count++
		}
	}
	return count
}
