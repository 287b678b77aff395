// Package catalog reads the video model catalog and selects a model for a
// generation mode.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
)

//go:embed models.json
var defaultCatalog []byte

// Category groups models by what they generate from.
type Category string

const (
	TextToVideo      Category = "t2v"
	ImageToVideo     Category = "i2v"
	ReferenceToVideo Category = "r2v"
)

// ParseCategory validates a category name. The empty string is allowed and
// means every category.
func ParseCategory(s string) (Category, error) {
	switch c := Category(strings.ToLower(s)); c {
	case "", TextToVideo, ImageToVideo, ReferenceToVideo:
		return c, nil
	default:
		return "", fmt.Errorf("invalid category %q: expected t2v, i2v or r2v", s)
	}
}

// Model describes one catalog entry.
type Model struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Version     string   `json:"version,omitempty"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Recommended bool     `json:"recommended"`
}

// ModelNotFoundError reports an unknown model ID, or a category without a
// recommended model.
type ModelNotFoundError struct {
	ID        string
	Category  Category
	Available []string
}

func (e ModelNotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("no recommended model found for category %q", e.Category)
	}
	return fmt.Sprintf("model %q not found in catalog, available models: %s", e.ID, strings.Join(e.Available, ", "))
}

// Catalog is an immutable set of models keyed by ID.
type Catalog struct {
	models map[string]Model
}

// Default returns the catalog embedded in the binary.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded model catalog: %v", err))
	}
	return c
}

// Load reads a catalog file. An empty path loads the embedded catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model catalog: %w", err)
	}
	return Parse(b)
}

type rawModel struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Features    []string `json:"features"`
	Resolution  string   `json:"resolution"`
	Speed       string   `json:"speed"`
	Orientation string   `json:"orientation"`
	Recommended bool     `json:"recommended"`
}

type rawSection struct {
	Description string              `json:"description"`
	Versions    map[string]rawGroup `json:"veo_versions"`
	Models      []rawModel          `json:"models"`
}

type rawGroup struct {
	Models []rawModel `json:"models"`
}

type rawCatalog struct {
	TextToVideo      rawSection `json:"video_generation_text_to_video"`
	ImageToVideo     rawSection `json:"video_generation_image_to_video"`
	ReferenceToVideo rawSection `json:"video_generation_reference_to_video"`
}

// Parse decodes a catalog in the model.json layout. Text and image models are
// grouped by Veo version; reference models are listed directly and are never
// recommended.
func Parse(b []byte) (*Catalog, error) {
	var raw rawCatalog
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parsing model catalog: %w", err)
	}

	c := &Catalog{models: map[string]Model{}}
	c.addVersioned(raw.TextToVideo, TextToVideo)
	c.addVersioned(raw.ImageToVideo, ImageToVideo)

	for _, m := range raw.ReferenceToVideo.Models {
		m.Orientation = ""
		m.Features = nil
		m.Recommended = false
		c.add(m, ReferenceToVideo, "", raw.ReferenceToVideo.Description)
	}

	return c, nil
}

func (c *Catalog) addVersioned(s rawSection, cat Category) {
	for _, version := range slices.Sorted(maps.Keys(s.Versions)) {
		for _, m := range s.Versions[version].Models {
			if cat == TextToVideo {
				m.Features = nil
			}
			c.add(m, cat, version, s.Description)
		}
	}
}

func (c *Catalog) add(m rawModel, cat Category, version, description string) {
	if m.ID == "" {
		return
	}

	features := slices.Clone(m.Features)
	if m.Resolution != "" {
		features = append(features, "Resolution: "+m.Resolution)
	}
	if m.Speed != "" {
		features = append(features, "Speed: "+m.Speed)
	}
	if m.Orientation != "" {
		features = append(features, "Orientation: "+m.Orientation)
	}

	name := m.Name
	if name == "" {
		name = m.ID
	}

	c.models[m.ID] = Model{
		ID:          m.ID,
		Name:        name,
		Category:    cat,
		Version:     version,
		Description: description,
		Features:    features,
		Recommended: m.Recommended,
	}
}

// Get returns the model with id.
func (c *Catalog) Get(id string) (Model, error) {
	m, ok := c.models[id]
	if !ok {
		return Model{}, ModelNotFoundError{ID: id, Available: c.IDs()}
	}
	return m, nil
}

// IDs returns every model ID in sorted order.
func (c *Catalog) IDs() []string {
	return slices.Sorted(maps.Keys(c.models))
}

// List returns the models of category sorted by ID. An empty category lists
// every model.
func (c *Catalog) List(category Category) []Model {
	var out []Model
	for _, id := range c.IDs() {
		m := c.models[id]
		if category == "" || m.Category == category {
			out = append(out, m)
		}
	}
	return out
}

// Recommended returns the first recommended model of category by ID.
func (c *Catalog) Recommended(category Category) (Model, error) {
	for _, m := range c.List(category) {
		if m.Recommended {
			return m, nil
		}
	}
	return Model{}, ModelNotFoundError{Category: category}
}
