package catalog

import (
	"fmt"
	"strings"
)

// Orientation is the aspect of the generated video.
type Orientation string

const (
	Landscape Orientation = "landscape"
	Portrait  Orientation = "portrait"
)

// ParseOrientation validates an orientation name. Empty means Landscape.
func ParseOrientation(s string) (Orientation, error) {
	switch o := Orientation(strings.ToLower(s)); o {
	case "":
		return Landscape, nil
	case Landscape, Portrait:
		return o, nil
	default:
		return "", fmt.Errorf("invalid orientation %q: expected landscape or portrait", s)
	}
}

// Selection is the input to Select.
type Selection struct {
	Category    Category
	Images      int
	Orientation Orientation

	// Model, when set, overrides automatic selection after it is validated
	// against the catalog.
	Model string
}

// Selector picks the model for a generation request.
type Selector struct {
	catalog *Catalog
}

func NewSelector(c *Catalog) *Selector {
	return &Selector{catalog: c}
}

// Select returns the model ID for s.
//
// Automatic choices: text-to-video uses the fast Veo 3.1 model; image-to-video
// uses the standard model for one image and the first/last frame model for
// two.
func (s *Selector) Select(sel Selection) (string, error) {
	if sel.Model != "" {
		if _, err := s.catalog.Get(sel.Model); err != nil {
			return "", err
		}
		return sel.Model, nil
	}

	portrait := sel.Orientation == Portrait

	switch sel.Category {
	case TextToVideo:
		if portrait {
			return "veo_3_1_t2v_fast_portrait", nil
		}
		return "veo_3_1_t2v_fast_landscape", nil

	case ImageToVideo:
		switch sel.Images {
		case 1:
			if portrait {
				return "veo_3_1_i2v_s_portrait", nil
			}
			return "veo_3_1_i2v_s_landscape", nil
		case 2:
			if portrait {
				return "veo_3_1_i2v_s_fast_portrait_fl", nil
			}
			return "veo_3_1_i2v_s_fast_fl", nil
		default:
			return "", fmt.Errorf("invalid image count for i2v: %d, expected 1 or 2", sel.Images)
		}

	default:
		return "", fmt.Errorf("no automatic model selection for category %q", sel.Category)
	}
}
