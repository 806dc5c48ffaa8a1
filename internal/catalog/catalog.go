// Package catalog provides the template catalog: the built-in templates
// plus any custom templates stored as TOML files in the templates
// directory. A Catalog is immutable once loaded.
package catalog

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/logging"
)

const templateExt = ".toml"

// Catalog holds every known template keyed by ID.
type Catalog struct {
	templates map[string]Template
	order     []string
}

// Builtin returns a catalog holding only the built-in templates.
func Builtin() *Catalog {
	c := &Catalog{templates: make(map[string]Template)}
	for id, t := range builtins() {
		t.ID = id
		c.templates[id] = t
	}
	c.order = slices.Clone(builtinOrder)
	return c
}

// Load returns the built-in templates plus, when includeCustom is set,
// every valid custom template in dir. Invalid custom files are skipped
// with a warning. Custom templates cannot shadow built-ins.
func Load(dir string, includeCustom bool) (*Catalog, error) {
	c := Builtin()
	if !includeCustom {
		return c, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("failed to read templates directory: %w", err)
	}

	var custom []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != templateExt {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), templateExt)
		if IsBuiltin(id) {
			logging.Warn("custom template shadows a built-in, skipping", "id", id)
			continue
		}

		t, err := LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			logging.Warn("skipping invalid custom template", "id", id, "error", err)
			continue
		}
		t.ID = id
		t.Custom = true
		c.templates[id] = *t
		custom = append(custom, id)
	}

	slices.Sort(custom)
	c.order = append(c.order, custom...)
	return c, nil
}

// Get returns the template with the given ID.
func (c *Catalog) Get(id string) (Template, bool) {
	t, ok := c.templates[id]
	return t, ok
}

// List returns every template, built-ins first in their fixed order,
// then custom templates by ID.
func (c *Catalog) List() []Template {
	out := make([]Template, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.templates[id])
	}
	return out
}

// IDs returns every template ID in listing order.
func (c *Catalog) IDs() []string {
	return slices.Clone(c.order)
}

// IsBuiltin reports whether id names a built-in template.
func IsBuiltin(id string) bool {
	return slices.Contains(builtinOrder, id)
}

// templateFile is the on-disk shape of a custom template.
type templateFile struct {
	Name        string   `toml:"name"`
	Description string   `toml:"description"`
	BaseImage   string   `toml:"base_image"`
	Packages    []string `toml:"packages"`
	SetupScript string   `toml:"setup_script"`
}

// LoadFile decodes and validates a custom template file.
func LoadFile(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates custom template TOML.
func Parse(data []byte) (*Template, error) {
	var f templateFile
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown template field: %s", undecoded[0])
	}

	t := &Template{
		Name:        f.Name,
		Description: f.Description,
		BaseImage:   f.BaseImage,
		Packages:    f.Packages,
		SetupScript: ScriptLines(f.SetupScript),
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Encode renders t in the custom template file format.
func Encode(t Template) ([]byte, error) {
	f := templateFile{
		Name:        t.Name,
		Description: t.Description,
		BaseImage:   t.BaseImage,
		Packages:    t.Packages,
		SetupScript: strings.Join(t.SetupScript, "\n"),
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(f); err != nil {
		return nil, fmt.Errorf("failed to encode template: %w", err)
	}
	return buf.Bytes(), nil
}

// customPath resolves id to a file inside dir. IDs that would escape dir
// are rejected.
func customPath(dir, id string) (string, error) {
	if id == "" || strings.ContainsRune(id, filepath.Separator) || id == "." || id == ".." {
		return "", fmt.Errorf("invalid template id %q", id)
	}
	return securejoin.SecureJoin(dir, id+templateExt)
}

// AddCustom validates t and writes it to dir under id. Built-in IDs are reserved.
func AddCustom(dir, id string, t Template) error {
	if IsBuiltin(id) {
		return fmt.Errorf("template %s is built-in and cannot be replaced", id)
	}
	if err := t.Validate(); err != nil {
		return err
	}

	path, err := customPath(dir, id)
	if err != nil {
		return err
	}

	data, err := Encode(t)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create templates directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write template: %w", err)
	}
	return nil
}

// RemoveCustom deletes the custom template id from dir.
func RemoveCustom(dir, id string) error {
	if IsBuiltin(id) {
		return fmt.Errorf("template %s is built-in and cannot be removed", id)
	}

	path, err := customPath(dir, id)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("template %s not found", id)
		}
		return fmt.Errorf("failed to remove template: %w", err)
	}
	return nil
}
