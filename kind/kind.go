package kind

import (
	"io"
	"os"
	"sort"

	"github.com/enola-dev/enola-sub007/errors"
	"github.com/enola-dev/enola-sub007/router"
	"gopkg.in/yaml.v3"
)

// Kind describes a family of entities sharing an IRI template.
type Kind struct {
	Name string `yaml:"name" json:"name"`
	// IRI is a router template such as "https://example.org/book/{isbn}".
	IRI string `yaml:"iri" json:"iri"`
	// Message is the protobuf full name entities of this kind are stored as.
	Message     string `yaml:"message,omitempty" json:"message,omitempty"`
	Label       string `yaml:"label,omitempty" json:"label,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Catalog is an immutable set of kinds indexed by name and by IRI template.
type Catalog struct {
	byName map[string]Kind
	router *router.Router[Kind]
}

type catalogFile struct {
	Kinds []Kind `yaml:"kinds"`
}

// NewCatalog validates kinds and indexes them. Names must be unique and
// non-empty; templates must compile and be distinct.
func NewCatalog(kinds ...Kind) (*Catalog, error) {
	c := &Catalog{byName: make(map[string]Kind, len(kinds)), router: router.New[Kind]()}
	for _, k := range kinds {
		if k.Name == "" {
			return nil, errors.Invalidf(errors.ErrInvalidConfig, "Catalog", "NewCatalog", "kind with template %q has no name", k.IRI)
		}
		if _, dup := c.byName[k.Name]; dup {
			return nil, errors.Invalidf(errors.ErrInvalidConfig, "Catalog", "NewCatalog", "duplicate kind %q", k.Name)
		}
		if err := c.router.Add(k.IRI, k); err != nil {
			return nil, errors.WrapInvalid(err, "Catalog", "NewCatalog", "kind "+k.Name)
		}
		c.byName[k.Name] = k
	}
	return c, nil
}

// ReadCatalog parses a YAML catalog of the form
//
//	kinds:
//	  - name: book
//	    iri: https://example.org/book/{isbn}
//	    message: example.Book
func ReadCatalog(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f catalogFile
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, errors.WrapInvalid(err, "Catalog", "ReadCatalog", "parse yaml")
	}
	return NewCatalog(f.Kinds...)
}

// LoadCatalog reads the catalog file at path.
func LoadCatalog(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapInvalid(errors.ErrConfigNotFound, "Catalog", "LoadCatalog", path)
		}
		return nil, errors.WrapTransient(err, "Catalog", "LoadCatalog", "open "+path)
	}
	defer f.Close()
	return ReadCatalog(f)
}

// Kind returns the kind called name.
func (c *Catalog) Kind(name string) (Kind, bool) {
	k, ok := c.byName[name]
	return k, ok
}

// Kinds returns all kinds sorted by name.
func (c *Catalog) Kinds() []Kind {
	out := make([]Kind, 0, len(c.byName))
	for _, k := range c.byName {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of kinds.
func (c *Catalog) Len() int { return len(c.byName) }
