package tui

import (
	"context"
	"reflect"
	"testing"

	"github.com/charmbracelet/bubbles/list"

	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/backend"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/operation"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/reconcile"
)

func testEnv(name string, kind backend.Kind, status backend.Status) reconcile.Environment {
	return reconcile.Environment{
		Name:     name,
		Status:   status,
		Backend:  kind,
		IP:       "10.0.0.2",
		Template: "ubuntu-basic",
	}
}

func TestBuildGroupedItems(t *testing.T) {
	t.Run("empty environments", func(t *testing.T) {
		items := buildGroupedItems(nil, nil)
		if items != nil {
			t.Errorf("expected nil, got %d items", len(items))
		}
	})

	t.Run("single group", func(t *testing.T) {
		envs := []reconcile.Environment{
			testEnv("web", backend.KindVM, backend.StatusRunning),
			testEnv("scratch", backend.KindVM, backend.StatusStopped),
		}
		items := buildGroupedItems(envs, nil)

		if len(items) != 3 {
			t.Fatalf("expected 3 items, got %d", len(items))
		}
		h, ok := items[0].(headerItem)
		if !ok {
			t.Fatal("first item should be a headerItem")
		}
		if h.label != "multipass (vm)" {
			t.Errorf("header label = %q, want %q", h.label, "multipass (vm)")
		}
		for i, want := range []string{"web", "scratch"} {
			item, ok := items[i+1].(envItem)
			if !ok {
				t.Fatalf("item %d should be an envItem", i+1)
			}
			if item.env.Name != want {
				t.Errorf("item %d = %q, want %q", i+1, item.env.Name, want)
			}
		}
	})

	t.Run("groups follow backend order", func(t *testing.T) {
		envs := []reconcile.Environment{
			testEnv("api", backend.KindContainer, backend.StatusRunning),
			testEnv("web", backend.KindVM, backend.StatusRunning),
			testEnv("db", backend.KindContainer, backend.StatusStopped),
		}
		items := buildGroupedItems(envs, nil)

		var got []string
		for _, item := range items {
			switch it := item.(type) {
			case headerItem:
				got = append(got, "# "+it.label)
			case envItem:
				got = append(got, it.env.Name)
			}
		}
		want := []string{"# multipass (vm)", "web", "# lxd (container)", "api", "db"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("items = %v, want %v", got, want)
		}
	})

	t.Run("pending operation is shown", func(t *testing.T) {
		op := operation.Go(t.Context(), "start", "web", func(_ context.Context) error { return nil })
		op.Wait()

		items := buildGroupedItems([]reconcile.Environment{testEnv("web", backend.KindVM, backend.StatusStopped)},
			map[string]*operation.Operation{"web": op})
		item := items[1].(envItem)
		if item.pending != "start" {
			t.Errorf("pending = %q, want %q", item.pending, "start")
		}
	})
}

func TestOrderKinds(t *testing.T) {
	got := orderKinds([]backend.Kind{"other", backend.KindContainer, backend.KindVM})
	want := []backend.Kind{backend.KindVM, backend.KindContainer, "other"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("orderKinds() = %v, want %v", got, want)
	}
}

func TestHeaderItem(t *testing.T) {
	h := headerItem{label: "Test Group"}

	if h.FilterValue() != "" {
		t.Error("headerItem.FilterValue() should return empty string")
	}
	if h.Title() != "Test Group" {
		t.Errorf("Title() = %q, want %q", h.Title(), "Test Group")
	}
	if h.Description() != "" {
		t.Errorf("Description() = %q, want empty", h.Description())
	}
}

func TestHeaderCount(t *testing.T) {
	items := []list.Item{
		headerItem{label: "multipass (vm)"},
		envItem{env: reconcile.Environment{Name: "a"}},
		envItem{env: reconcile.Environment{Name: "b"}},
		headerItem{label: "lxd (container)"},
		envItem{env: reconcile.Environment{Name: "c"}},
	}

	if count := headerCount(items); count != 2 {
		t.Errorf("headerCount() = %d, want 2", count)
	}
}

func TestSkipHeaders(t *testing.T) {
	items := []list.Item{
		headerItem{label: "multipass (vm)"},
		envItem{env: reconcile.Environment{Name: "a"}},
		headerItem{label: "lxd (container)"},
		envItem{env: reconcile.Environment{Name: "b"}},
	}
	l := list.New(items, newGroupedDelegate(), 80, 40)

	l.Select(0)
	skipHeaders(&l, 1)
	if l.Index() != 1 {
		t.Errorf("down from header: index = %d, want 1", l.Index())
	}

	l.Select(2)
	skipHeaders(&l, -1)
	if l.Index() != 1 {
		t.Errorf("up onto header: index = %d, want 1", l.Index())
	}

	l.Select(2)
	skipHeaders(&l, 1)
	if l.Index() != 3 {
		t.Errorf("down onto header: index = %d, want 3", l.Index())
	}

	l.Select(0)
	skipHeaders(&l, -1)
	if l.Index() != 1 {
		t.Errorf("up at top: index = %d, want 1", l.Index())
	}
}
