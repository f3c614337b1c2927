// Package sync implements the client side of collection sync. Conflict
// resolution is last writer wins on the collection's modification stamp:
// whichever side changed most recently replaces the other wholesale.
package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"remindik/internal/domain"
	"remindik/internal/errors"
	"remindik/internal/logging"
	"remindik/internal/repository/sqlite"
)

// Outcome describes which side won a sync round
type Outcome string

const (
	// OutcomePulled means the server collection replaced the local one
	OutcomePulled Outcome = "pulled"
	// OutcomePushed means the local collection was uploaded to the server
	OutcomePushed Outcome = "pushed"
)

// Result summarizes one sync round
type Result struct {
	Outcome      Outcome
	LastModified int64
	TaskCount    int
}

// Client syncs the local collection with a remote server
type Client struct {
	baseURL    string
	httpClient *http.Client
	repo       sqlite.Repository
	mapper     *domain.TaskMapper
	logger     logging.Logger

	// A sync round already in flight rejects new rounds instead of
	// queueing them.
	mu      sync.Mutex
	syncing bool
}

// NewClient creates a new sync Client instance
func NewClient(baseURL string, timeout time.Duration, repo sqlite.Repository, logger logging.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		repo:       repo,
		mapper:     domain.NewTaskMapper(),
		logger:     logger,
	}
}

// Pull fetches the server's collection
func (c *Client) Pull(ctx context.Context) (*domain.Collection, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/reminders", nil)
	if err != nil {
		return nil, errors.NewSyncError("pull", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewSyncError("pull", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewSyncError("pull", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var collection domain.Collection
	if err := json.NewDecoder(resp.Body).Decode(&collection); err != nil {
		return nil, errors.NewSyncError("pull", err)
	}
	return &collection, nil
}

// pushResponse mirrors the server's write acknowledgement
type pushResponse struct {
	Success      bool   `json:"success"`
	LastModified int64  `json:"lastModified"`
	Error        string `json:"error"`
}

// Push uploads the collection and returns the stamp the server assigned
func (c *Client) Push(ctx context.Context, collection domain.Collection) (int64, error) {
	if collection.Tasks == nil {
		collection.Tasks = []domain.Task{}
	}
	body, err := json.Marshal(collection)
	if err != nil {
		return 0, errors.NewSyncError("push", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/reminders", bytes.NewReader(body))
	if err != nil {
		return 0, errors.NewSyncError("push", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, errors.NewSyncError("push", err)
	}
	defer resp.Body.Close()

	var ack pushResponse
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return 0, errors.NewSyncError("push", err)
	}
	if resp.StatusCode != http.StatusOK || !ack.Success {
		return 0, errors.NewSyncError("push", fmt.Errorf("server rejected write: %s", ack.Error))
	}

	return ack.LastModified, nil
}

// SyncOnce runs one sync round. The side with the newer modification stamp
// wins; ties keep the local collection and push it.
func (c *Client) SyncOnce(ctx context.Context) (*Result, error) {
	if !c.begin() {
		return nil, errors.NewStateError("sync already in progress")
	}
	defer c.end()

	remote, err := c.Pull(ctx)
	if err != nil {
		return nil, err
	}

	localStamp, err := c.repo.GetLastModified(ctx)
	if err != nil {
		return nil, err
	}

	if remote.LastModified > localStamp {
		dbTasks := c.mapper.ToDatabaseSlice(remote.Tasks)
		if err := c.repo.ReplaceAll(ctx, dbTasks, remote.LastModified); err != nil {
			return nil, err
		}
		c.logger.Debug("adopted server collection", "lastModified", remote.LastModified, "tasks", len(remote.Tasks))
		return &Result{Outcome: OutcomePulled, LastModified: remote.LastModified, TaskCount: len(remote.Tasks)}, nil
	}

	dbTasks, err := c.repo.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := c.mapper.FromDatabaseSlice(dbTasks)
	if err != nil {
		return nil, errors.NewSyncError("push", err)
	}

	stamp, err := c.Push(ctx, domain.Collection{Tasks: tasks, LastModified: localStamp})
	if err != nil {
		return nil, err
	}
	// Adopt the stamp the server assigned so the next round is a no-op
	// unless something changes.
	if err := c.repo.SetLastModified(ctx, stamp); err != nil {
		return nil, err
	}

	c.logger.Debug("pushed local collection", "lastModified", stamp, "tasks", len(tasks))
	return &Result{Outcome: OutcomePushed, LastModified: stamp, TaskCount: len(tasks)}, nil
}

func (c *Client) begin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.syncing {
		return false
	}
	c.syncing = true
	return true
}

func (c *Client) end() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.syncing = false
}
