package generate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// InvalidPromptError reports a missing or unreadable prompt.
type InvalidPromptError struct {
	Reason string
}

func (e InvalidPromptError) Error() string {
	return "invalid prompt: " + e.Reason
}

// LoadPrompt resolves a prompt argument. When arg names an existing .txt file
// its trimmed contents are the prompt; otherwise arg itself is.
func LoadPrompt(arg string) (text string, fromFile bool, err error) {
	if strings.EqualFold(filepath.Ext(arg), ".txt") {
		info, statErr := os.Stat(arg)
		if statErr == nil && !info.IsDir() {
			b, err := os.ReadFile(arg)
			if err != nil {
				return "", false, InvalidPromptError{Reason: fmt.Sprintf("reading %s: %v", arg, err)}
			}
			text, fromFile = strings.TrimSpace(string(b)), true
		}
	}

	if !fromFile {
		text = arg
	}

	if strings.TrimSpace(text) == "" {
		return "", fromFile, InvalidPromptError{Reason: "prompt cannot be empty"}
	}
	return text, fromFile, nil
}
