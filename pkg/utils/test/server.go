package testutils

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// VideoServer is a fake generation API. Every POST answers with the
// configured content type and chunks, flushing after each chunk. Files added
// with AddFile are served by GET under "/files/<name>"; other names are 404.
type VideoServer struct {
	*httptest.Server

	mu          sync.Mutex
	status      int
	contentType string
	chunks      []string
	files       map[string][]byte

	requests []map[string]any
	headers  []http.Header
}

// NewVideoServer starts a VideoServer. The caller must Close it.
func NewVideoServer(contentType string, chunks ...string) *VideoServer {
	s := &VideoServer{
		status:      http.StatusOK,
		contentType: contentType,
		chunks:      chunks,
		files:       map[string][]byte{},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// FileURL returns the URL at which name is served.
func (s *VideoServer) FileURL(name string) string {
	return s.URL + "/files/" + name
}

// SetStatus changes the status of generation responses.
func (s *VideoServer) SetStatus(code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = code
}

// SetChunks replaces the generation response body.
func (s *VideoServer) SetChunks(chunks ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = chunks
}

// AddFile serves body at FileURL(name).
func (s *VideoServer) AddFile(name string, body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = body
}

// Requests returns the decoded JSON body of every generation request so far.
func (s *VideoServer) Requests() []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]map[string]any(nil), s.requests...)
}

// Headers returns the headers of every generation request so far.
func (s *VideoServer) Headers() []http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]http.Header(nil), s.headers...)
}

func (s *VideoServer) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		s.serveFile(w, r)
		return
	}

	raw, _ := io.ReadAll(r.Body)
	var body map[string]any
	_ = json.Unmarshal(raw, &body)

	s.mu.Lock()
	s.requests = append(s.requests, body)
	s.headers = append(s.headers, r.Header.Clone())
	status, contentType, chunks := s.status, s.contentType, s.chunks
	s.mu.Unlock()

	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	} else {
		// Keep net/http from sniffing one.
		w.Header()["Content-Type"] = nil
	}
	w.WriteHeader(status)

	flusher, _ := w.(http.Flusher)
	for _, c := range chunks {
		_, _ = io.WriteString(w, c)
		if flusher != nil {
			flusher.Flush()
		}
	}
}

func (s *VideoServer) serveFile(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	name, ok := strings.CutPrefix(r.URL.Path, "/files/")
	body, found := s.files[name]
	s.mu.Unlock()

	if !ok || !found {
		http.NotFound(w, r)
		return
	}
	_, _ = w.Write(body)
}
