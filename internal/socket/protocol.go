// Package socket is the command channel used to push changes into a
// running viewer over a unix socket.
package socket

import (
	"os"
	"path/filepath"
)

// Message represents a command sent to the running placestree instance
type Message struct {
	Command   string `json:"command"`
	URI       string `json:"uri,omitempty"`
	Title     string `json:"title,omitempty"`
	SessionID int64  `json:"session_id,omitempty"`

	// Set by the server for commands that wait for an answer
	ResponseChan chan *Response `json:"-"`
}

// Response represents the response from the server
type Response struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Rows    []string `json:"rows,omitempty"`
}

// Command types
const (
	CommandAddVisit   = "add_visit"
	CommandRemoveURI  = "remove_uri"
	CommandInvalidate = "invalidate"
	CommandRows       = "rows"
)

// Reply answers a synchronous command. It is a no-op for queued commands.
func (m Message) Reply(r *Response) {
	if m.ResponseChan != nil {
		m.ResponseChan <- r
	}
}

// socketDir uses XDG_RUNTIME_DIR if available, otherwise ~/.local/share
func socketDir() string {
	if xdgRuntime := os.Getenv("XDG_RUNTIME_DIR"); xdgRuntime != "" {
		return filepath.Join(xdgRuntime, "placestree")
	}
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "placestree")
}
