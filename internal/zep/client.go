package zep

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const DefaultBaseURL = "https://api.getzep.com/api/v2"

// ErrNotFound is returned when Zep reports 404 for a resource.
var ErrNotFound = errors.New("zep: not found")

// Client is a minimal Zep Cloud v2 REST client covering the operations the
// devlog tooling needs.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{},
	}
}

func (c *Client) do(method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Api-Key "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("zep request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("zep request failed with status %d: %s", resp.StatusCode, string(data))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) GetUser(userID string) (*User, error) {
	var user User
	if err := c.do(http.MethodGet, "/users/"+userID, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) CreateUser(user User) (*User, error) {
	var created User
	if err := c.do(http.MethodPost, "/users", user, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) CreateSession(req CreateSessionRequest) error {
	return c.do(http.MethodPost, "/sessions", req, nil)
}

func (c *Client) AddMemory(sessionID string, messages []Message) error {
	return c.do(http.MethodPost, "/sessions/"+sessionID+"/memory", addMemoryRequest{Messages: messages}, nil)
}

func (c *Client) SearchMemory(sessionID, query string, limit int) ([]MemorySearchResult, error) {
	var results []MemorySearchResult
	req := memorySearchRequest{Text: query, Limit: limit}
	if err := c.do(http.MethodPost, "/sessions/"+sessionID+"/search", req, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *Client) GraphAdd(userID, dataType, data string) error {
	return c.do(http.MethodPost, "/graph", GraphAddRequest{UserID: userID, Type: dataType, Data: data}, nil)
}

func (c *Client) GraphSearch(userID, query string, limit int) (*GraphSearchResults, error) {
	var results GraphSearchResults
	req := GraphSearchRequest{UserID: userID, Query: query, Limit: limit}
	if err := c.do(http.MethodPost, "/graph/search", req, &results); err != nil {
		return nil, err
	}
	return &results, nil
}
