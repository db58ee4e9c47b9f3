// Package templates loads named estimate templates from YAML. A template is a
// list of line blueprints applied to an estimate in one step.
package templates

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/mmynk/estimator/internal/models"
)

//go:embed builtin/*.yaml
var builtin embed.FS

var (
	ErrNotFound        = errors.New("template not found")
	ErrInvalidTemplate = errors.New("invalid template")
)

// Amount is a decimal read verbatim from a YAML scalar, so "0.32" stays
// exactly 0.32.
type Amount struct {
	decimal.Decimal
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *Amount) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a number", node.Line)
	}
	d, err := decimal.NewFromString(strings.TrimSpace(node.Value))
	if err != nil {
		return fmt.Errorf("line %d: invalid number %q", node.Line, node.Value)
	}
	a.Decimal = d
	return nil
}

// Line is one line blueprint.
type Line struct {
	Key         string  `yaml:"key"`
	Description string  `yaml:"description"`
	Quantity    *Amount `yaml:"quantity"`
	Unit        string  `yaml:"unit"`
	UnitPrice   *Amount `yaml:"unit_price"`
	Category    string  `yaml:"category"`
	Formula     string  `yaml:"formula"`
	Vendor      string  `yaml:"vendor"`
}

// Template is a named list of lines.
type Template struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Lines       []Line `yaml:"lines"`
}

// TemplateLines converts the template for insertion. A missing quantity
// defaults to 1 and a missing unit price to 0.
func (t Template) TemplateLines() []models.TemplateLine {
	out := make([]models.TemplateLine, 0, len(t.Lines))
	for _, l := range t.Lines {
		line := models.TemplateLine{
			Key:         l.Key,
			Description: l.Description,
			Quantity:    decimal.NewFromInt(1),
			Unit:        l.Unit,
			UnitPrice:   decimal.Zero,
			Category:    models.Category(strings.ToLower(strings.TrimSpace(l.Category))),
			Formula:     l.Formula,
			VendorName:  l.Vendor,
		}
		if l.Quantity != nil {
			line.Quantity = l.Quantity.Decimal
		}
		if l.UnitPrice != nil {
			line.UnitPrice = l.UnitPrice.Decimal
		}
		out = append(out, line)
	}
	return out
}

// Parse decodes and checks one template document.
func Parse(data []byte) (Template, error) {
	var t Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Template{}, fmt.Errorf("failed to parse template: %w", err)
	}
	if err := t.validate(); err != nil {
		return Template{}, err
	}
	return t, nil
}

func (t Template) validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidTemplate)
	}
	if len(t.Lines) == 0 {
		return fmt.Errorf("%w %q: no lines", ErrInvalidTemplate, t.Name)
	}
	keys := make(map[string]struct{})
	for i, l := range t.Lines {
		if l.Category != "" {
			if _, err := models.ParseCategory(l.Category); err != nil {
				return fmt.Errorf("%w %q line %d: %v", ErrInvalidTemplate, t.Name, i+1, err)
			}
		}
		if l.Key == "" {
			continue
		}
		if _, dup := keys[l.Key]; dup {
			return fmt.Errorf("%w %q: duplicate key %q", ErrInvalidTemplate, t.Name, l.Key)
		}
		keys[l.Key] = struct{}{}
	}
	return nil
}

// Catalog holds templates by name.
type Catalog struct {
	byName map[string]Template
}

// NewCatalog creates a catalog from templates. A later template replaces an
// earlier one with the same name.
func NewCatalog(ts ...Template) *Catalog {
	c := &Catalog{byName: make(map[string]Template, len(ts))}
	for _, t := range ts {
		c.byName[t.Name] = t
	}
	return c
}

// Builtin returns the templates shipped with the binary.
func Builtin() (*Catalog, error) {
	return LoadFS(builtin, "builtin")
}

// LoadDir reads every .yaml and .yml file in dir.
func LoadDir(dir string) (*Catalog, error) {
	return LoadFS(os.DirFS(dir), ".")
}

// LoadFS reads every .yaml and .yml file in dir of fsys.
func LoadFS(fsys fs.FS, dir string) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read templates directory: %w", err)
	}

	var ts []Template
	for _, e := range entries {
		ext := path.Ext(e.Name())
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %w", e.Name(), err)
		}
		t, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		ts = append(ts, t)
	}
	return NewCatalog(ts...), nil
}

// Merge adds other's templates, replacing same-named ones.
func (c *Catalog) Merge(other *Catalog) {
	for name, t := range other.byName {
		c.byName[name] = t
	}
}

// Get returns the named template.
func (c *Catalog) Get(name string) (Template, error) {
	t, ok := c.byName[name]
	if !ok {
		return Template{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return t, nil
}

// List returns every template sorted by name.
func (c *Catalog) List() []Template {
	out := make([]Template, 0, len(c.byName))
	for _, t := range c.byName {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
