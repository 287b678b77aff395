package extract

// Fields lists the JSON field names searched for media content. The lists
// come from observed vendor response shapes and are ordered by priority.
type Fields struct {
	// Choices names the chat-completion style array whose entries are
	// searched before the top-level object.
	Choices string `json:"choices"`

	// Containers are the sub-objects of each choice entry that are
	// searched, in order.
	Containers []string `json:"containers"`

	// URL fields may hold a link, or an HTML video tag, that must be
	// fetched.
	URL []string `json:"url"`

	// Data fields may hold inline base64 or hex encoded bytes.
	Data []string `json:"data"`

	// Reserved fields are only considered for URL detection, never decoded
	// as inline data. "content" usually carries prose.
	Reserved []string `json:"reserved"`
}

// DefaultFields returns the field lists matching the chat-completion style
// video API responses vidgen was built against.
func DefaultFields() Fields {
	return Fields{
		Choices:    "choices",
		Containers: []string{"delta", "message"},
		URL:        []string{"url", "video_url", "download_url", "file_url", "uri", "content"},
		Data:       []string{"video", "data", "content", "file", "video_data", "video_content", "binary", "base64"},
		Reserved:   []string{"content"},
	}
}

// WithDefaults fills every unset field of f from DefaultFields. An explicitly
// empty, non-nil Reserved list is kept.
func (f Fields) WithDefaults() Fields {
	d := DefaultFields()
	if f.Choices == "" {
		f.Choices = d.Choices
	}
	if len(f.Containers) == 0 {
		f.Containers = d.Containers
	}
	if len(f.URL) == 0 {
		f.URL = d.URL
	}
	if len(f.Data) == 0 {
		f.Data = d.Data
	}
	if f.Reserved == nil {
		f.Reserved = d.Reserved
	}
	return f
}

func (f Fields) reserved(name string) bool {
	for _, r := range f.Reserved {
		if r == name {
			return true
		}
	}
	return false
}
