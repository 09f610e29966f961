package templates

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed catalog.json
var catalogJSON []byte

// ErrNoMatchingTemplate is returned when a filtered template lookup
// matches nothing. Callers should fall back to the full catalog.
var ErrNoMatchingTemplate = errors.New("templates: no matching template")

// Catalog is the indexed, immutable set of problem templates.
type Catalog struct {
	templates  []ProblemTemplate
	byID       map[string]*ProblemTemplate
	byCategory map[string][]*ProblemTemplate
}

var loadOnce = sync.OnceValues(func() (*Catalog, error) {
	return ParseCatalog(catalogJSON)
})

// Load returns the embedded catalog, validated and indexed once.
func Load() (*Catalog, error) {
	return loadOnce()
}

// ParseCatalog validates raw catalog JSON against the catalog schema and
// builds the indices.
func ParseCatalog(raw []byte) (*Catalog, error) {
	if err := validateCatalog(raw); err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}

	var doc struct {
		Templates []ProblemTemplate `json:"templates"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{
		templates:  doc.Templates,
		byID:       make(map[string]*ProblemTemplate, len(doc.Templates)),
		byCategory: make(map[string][]*ProblemTemplate),
	}
	for i := range c.templates {
		t := &c.templates[i]
		if _, dup := c.byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate template id %q", t.ID)
		}
		c.byID[t.ID] = t
		c.byCategory[t.Category] = append(c.byCategory[t.Category], t)
	}
	return c, nil
}

// Len returns the number of templates.
func (c *Catalog) Len() int {
	return len(c.templates)
}

// All returns every template in catalog order.
func (c *Catalog) All() []*ProblemTemplate {
	out := make([]*ProblemTemplate, len(c.templates))
	for i := range c.templates {
		out[i] = &c.templates[i]
	}
	return out
}

// ByID looks a template up by id.
func (c *Catalog) ByID(id string) (*ProblemTemplate, error) {
	t, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("template %q: %w", id, ErrNoMatchingTemplate)
	}
	return t, nil
}

// ByCategory returns the templates in a category.
func (c *Catalog) ByCategory(category string) ([]*ProblemTemplate, error) {
	ts := c.byCategory[category]
	if len(ts) == 0 {
		return nil, fmt.Errorf("category %q: %w", category, ErrNoMatchingTemplate)
	}
	return ts, nil
}

// Filter returns templates accepted by keep, or ErrNoMatchingTemplate.
func (c *Catalog) Filter(keep func(*ProblemTemplate) bool) ([]*ProblemTemplate, error) {
	var out []*ProblemTemplate
	for i := range c.templates {
		if keep(&c.templates[i]) {
			out = append(out, &c.templates[i])
		}
	}
	if len(out) == 0 {
		return nil, ErrNoMatchingTemplate
	}
	return out, nil
}

var compileSchemaOnce = sync.OnceValues(func() (*jsonschema.Schema, error) {
	defBytes, err := json.Marshal(catalogSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	def, err := jsonschema.UnmarshalJSON(bytes.NewReader(defBytes))
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	const url = "schema://problem-template-catalog.json"
	if err := compiler.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return compiler.Compile(url)
})

// validateCatalog checks raw JSON against the catalog schema.
func validateCatalog(raw []byte) error {
	compiled, err := compileSchemaOnce()
	if err != nil {
		return err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return compiled.Validate(doc)
}
