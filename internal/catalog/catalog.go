// Package catalog holds the restaurants, menus and reels the client
// browses.
//
// A catalog comes from the embedded seed (Default), from a file (Load) in
// CUE, JSON or YAML, or from the remote service (New with fetched data).
// CUE and JSON files are checked against an embedded CUE schema; every
// catalog, whatever its source, then goes through Validate for the
// cross-reference rules a schema cannot express.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/roach88/feastverse/internal/domain"
)

//go:embed schema.cue
var schemaSource []byte

//go:embed seed.cue
var seedSource []byte

// Catalog is an immutable, validated set of restaurants and reels.
type Catalog struct {
	restaurants []domain.Restaurant
	reels       []domain.Reel

	byRestaurant map[string]int
	byReel       map[string]int
	byMenuItem   map[string]menuRef
}

type menuRef struct {
	restaurant int
	item       int
}

// New builds a catalog, failing with ValidationErrors if the data breaks
// any catalog rule.
func New(restaurants []domain.Restaurant, reels []domain.Reel) (*Catalog, error) {
	if errs := Validate(restaurants, reels); len(errs) > 0 {
		return nil, errs
	}

	c := &Catalog{
		restaurants:  slices.Clone(restaurants),
		reels:        slices.Clone(reels),
		byRestaurant: make(map[string]int, len(restaurants)),
		byReel:       make(map[string]int, len(reels)),
		byMenuItem:   make(map[string]menuRef),
	}
	for i, r := range c.restaurants {
		c.restaurants[i].Menu = slices.Clone(r.Menu)
		c.byRestaurant[r.ID] = i
		for j, m := range r.Menu {
			c.byMenuItem[m.ID] = menuRef{restaurant: i, item: j}
		}
	}
	for i, r := range c.reels {
		c.byReel[r.ID] = i
	}
	return c, nil
}

// Default returns the built-in seed catalog.
func Default() *Catalog {
	c, err := compileCUE(seedSource, "seed.cue")
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded seed is invalid: %v", err))
	}
	return c
}

// Load reads a catalog file. The format follows the extension: .cue, .json,
// .yaml or .yml.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".cue", ".json":
		// JSON is a subset of CUE, so both take the schema path.
		return compileCUE(data, path)
	case ".yaml", ".yml":
		return decodeYAML(data)
	default:
		return nil, fmt.Errorf("catalog %s: unsupported format %q", path, ext)
	}
}

func compileCUE(src []byte, filename string) (*Catalog, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(schemaSource, cue.Filename("schema.cue")).LookupPath(cue.ParsePath("#Catalog"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile catalog schema: %w", err)
	}

	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, cueValidationErrors(err)
	}

	v = schema.Unify(v)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, cueValidationErrors(err)
	}

	var f fileCatalog
	if err := v.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(f.domain())
}

func decodeYAML(data []byte) (*Catalog, error) {
	var f fileCatalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return New(nil, nil)
		}
		return nil, fmt.Errorf("parse catalog yaml: %w", err)
	}
	return New(f.domain())
}

// cueValidationErrors converts CUE's error list, keeping the path and
// position of each failure.
func cueValidationErrors(err error) ValidationErrors {
	var out ValidationErrors
	for _, e := range cueerrors.Errors(err) {
		field := strings.Join(e.Path(), ".")
		if field == "" {
			field = "cue"
		}
		msg := e.Error()
		if pos := e.Position(); pos.IsValid() {
			msg = fmt.Sprintf("%s:%d:%d: %s", pos.Filename(), pos.Line(), pos.Column(), msg)
		}
		out = append(out, ValidationError{Field: field, Message: msg})
	}
	if len(out) == 0 {
		out = append(out, ValidationError{Field: "cue", Message: err.Error()})
	}
	return out
}

// Restaurants returns every restaurant in catalog order.
func (c *Catalog) Restaurants() []domain.Restaurant {
	return slices.Clone(c.restaurants)
}

// Restaurant looks up a restaurant by id.
func (c *Catalog) Restaurant(id string) (domain.Restaurant, bool) {
	i, ok := c.byRestaurant[id]
	if !ok {
		return domain.Restaurant{}, false
	}
	return c.restaurants[i], true
}

// Reels returns every reel in catalog order.
func (c *Catalog) Reels() []domain.Reel {
	return slices.Clone(c.reels)
}

// Reel looks up a reel by id.
func (c *Catalog) Reel(id string) (domain.Reel, bool) {
	i, ok := c.byReel[id]
	if !ok {
		return domain.Reel{}, false
	}
	return c.reels[i], true
}

// MenuItem looks up a dish by id across all menus, returning the dish and
// the id of the restaurant selling it.
func (c *Catalog) MenuItem(id string) (domain.MenuItem, string, bool) {
	ref, ok := c.byMenuItem[id]
	if !ok {
		return domain.MenuItem{}, "", false
	}
	r := c.restaurants[ref.restaurant]
	return r.Menu[ref.item], r.ID, true
}

// Search returns restaurants whose name or cuisine contains query, ignoring
// case and Unicode normalisation differences. An empty query matches all.
func (c *Catalog) Search(query string) []domain.Restaurant {
	q := foldKey(strings.TrimSpace(query))
	if q == "" {
		return c.Restaurants()
	}

	var out []domain.Restaurant
	for _, r := range c.restaurants {
		if strings.Contains(foldKey(r.Name), q) || strings.Contains(foldKey(r.Cuisine), q) {
			out = append(out, r)
		}
	}
	return out
}

func foldKey(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// Encode writes the catalog as YAML in the layout Load accepts.
func (c *Catalog) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toFile(c.restaurants, c.reels)); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return enc.Close()
}
