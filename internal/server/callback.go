package server

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/desertthunder/trackimport/internal/shared"
)

// CallbackResult carries the authorization code captured from a redirect, or the reason none was.
type CallbackResult struct {
	Code string
	Err  error
}

// CallbackHandler captures the authorization code from a single OAuth2 redirect.
type CallbackHandler struct {
	path    string
	state   string
	results chan CallbackResult
	once    sync.Once

	mu  sync.Mutex
	hit bool
}

// NewCallbackHandler creates a handler serving path that accepts only redirects carrying state.
func NewCallbackHandler(path, state string) *CallbackHandler {
	if path == "" {
		path = "/callback"
	}
	return &CallbackHandler{
		path:    path,
		state:   state,
		results: make(chan CallbackResult, 1),
	}
}

func (h *CallbackHandler) Routes() []string {
	return []string{h.path}
}

func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	if h.hit {
		h.mu.Unlock()
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}
	h.hit = true
	h.mu.Unlock()

	query := r.URL.Query()

	if query.Get("state") != h.state {
		h.send(CallbackResult{Err: fmt.Errorf("%w: invalid state parameter", shared.ErrAuthFailed)})
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}

	code := query.Get("code")
	if code == "" {
		err := fmt.Errorf("%w: %s - %s", shared.ErrAuthFailed, query.Get("error"), query.Get("error_description"))
		h.send(CallbackResult{Err: err})
		http.Error(w, "Authorization failed", http.StatusBadRequest)
		return
	}

	h.send(CallbackResult{Code: code})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, successPage)
}

func (h *CallbackHandler) send(result CallbackResult) {
	h.once.Do(func() {
		h.results <- result
		close(h.results)
	})
}

// Result receives exactly one [CallbackResult] and is then closed.
func (h *CallbackHandler) Result() <-chan CallbackResult {
	return h.results
}

const successPage = `<!DOCTYPE html>
<html>
<head>
    <title>Authorization Code Received</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .container { text-align: center; background: white; padding: 2rem;
                     border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #1DB954; margin: 0 0 1rem 0; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Authorization code received</h1>
        <p>Return to the terminal to copy it into SPOTIFY_AUTH_CODE.</p>
    </div>
</body>
</html>
`
