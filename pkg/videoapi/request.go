package videoapi

import "fmt"

// MaxImages is the number of reference images a request may carry.
const MaxImages = 2

// ChatRequest is the chat-completion style body sent to the generation
// endpoint.
type ChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

// Message is one chat message.
type Message struct {
	Role    string        `json:"role"`
	Content []ContentPart `json:"content"`
}

// ContentPart is either a text part or an image_url part.
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL holds a data URL of an inline image.
type ImageURL struct {
	URL string `json:"url"`
}

// BuildRequest returns the streaming request for prompt. Each image is
// standard base64 and becomes a JPEG data URL ahead of the text part.
func BuildRequest(model, prompt string, images []string) (ChatRequest, error) {
	if len(images) > MaxImages {
		return ChatRequest{}, fmt.Errorf("at most %d images are supported, got %d", MaxImages, len(images))
	}

	content := make([]ContentPart, 0, len(images)+1)
	for _, img := range images {
		content = append(content, ContentPart{
			Type:     "image_url",
			ImageURL: &ImageURL{URL: "data:image/jpeg;base64," + img},
		})
	}
	content = append(content, ContentPart{Type: "text", Text: prompt})

	return ChatRequest{
		Model: model,
		Messages: []Message{{
			Role:    "user",
			Content: content,
		}},
		Stream: true,
	}, nil
}
