package socket

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Client represents a Unix socket client for sending commands
type Client struct {
	socketPath string
}

// FindRunningInstance finds the socket path for a running placestree
// instance. With several running, the most recently started one wins.
func FindRunningInstance() (string, int, error) {
	var sockets []string
	err := filepath.WalkDir(socketDir(), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Ignore errors, directory might not exist
		}
		if !d.IsDir() && strings.HasPrefix(d.Name(), "placestree-") && strings.HasSuffix(d.Name(), ".sock") {
			sockets = append(sockets, path)
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return "", 0, fmt.Errorf("error scanning socket directory: %w", err)
	}
	if len(sockets) == 0 {
		return "", 0, fmt.Errorf("no running placestree instance found")
	}

	socketPath := sockets[0]
	if len(sockets) > 1 {
		var newestTime time.Time
		socketPath = ""
		for _, sock := range sockets {
			info, err := os.Stat(sock)
			if err != nil {
				continue
			}
			if info.ModTime().After(newestTime) {
				newestTime = info.ModTime()
				socketPath = sock
			}
		}
		if socketPath == "" {
			return "", 0, fmt.Errorf("no accessible socket found")
		}
	}

	pidStr := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(socketPath), "placestree-"), ".sock")
	pid, err := strconv.Atoi(pidStr)
	if err != nil {
		pid = 0 // Unknown PID
	}
	return socketPath, pid, nil
}

// NewClient creates a new client connected to the specified socket
func NewClient(socketPath string) (*Client, error) {
	if _, err := os.Stat(socketPath); err != nil {
		return nil, fmt.Errorf("socket not found: %w", err)
	}
	return &Client{socketPath: socketPath}, nil
}

// Send sends a message to the server and returns the response
func (c *Client) Send(msg Message) (*Response, error) {
	conn, err := net.Dial("unix", c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to socket: %w", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(15 * time.Second))

	if err := json.NewEncoder(conn).Encode(msg); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	var response Response
	if err := json.NewDecoder(conn).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to receive response: %w", err)
	}
	return &response, nil
}

// SendAddVisit asks the viewer to record a visit to uri under its root
func (c *Client) SendAddVisit(uri, title string, sessionID int64) (*Response, error) {
	return c.Send(Message{Command: CommandAddVisit, URI: uri, Title: title, SessionID: sessionID})
}

// SendRemoveURI asks the viewer to forget every entry for uri
func (c *Client) SendRemoveURI(uri string) (*Response, error) {
	return c.Send(Message{Command: CommandRemoveURI, URI: uri})
}

// SendInvalidate asks the viewer to rebuild all of its rows
func (c *Client) SendInvalidate() (*Response, error) {
	return c.Send(Message{Command: CommandInvalidate})
}

// RequestRows returns the rows the viewer is showing
func (c *Client) RequestRows() ([]string, error) {
	resp, err := c.Send(Message{Command: CommandRows})
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("rows: %s", resp.Message)
	}
	return resp.Rows, nil
}
