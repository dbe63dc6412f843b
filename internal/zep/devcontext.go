package zep

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContextManager persists development notes, decisions and TODOs for one
// project in the Zep memory graph.
type ContextManager struct {
	client *Client
	userID string
	logger *zap.SugaredLogger
}

func NewContextManager(client *Client, userID string, logger *zap.SugaredLogger) *ContextManager {
	return &ContextManager{client: client, userID: userID, logger: logger}
}

// EnsureProjectUser fetches the project user, creating it on first use.
func (m *ContextManager) EnsureProjectUser(description string) (*User, error) {
	user, err := m.client.GetUser(m.userID)
	if err == nil {
		m.logger.Infow("found existing project user", "user", m.userID)
		return user, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	user, err = m.client.CreateUser(User{
		UserID: m.userID,
		Metadata: map[string]any{
			"project_type": "Flutter Firebase Application",
			"created_at":   time.Now().Format(time.RFC3339),
			"description":  description,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create project user: %w", err)
	}
	m.logger.Infow("created project user", "user", m.userID)
	return user, nil
}

// StartSession opens a fresh memory session tied to the project user and
// returns its generated id.
func (m *ContextManager) StartSession(environment string) (string, error) {
	sessionID := uuid.NewString()
	err := m.client.CreateSession(CreateSessionRequest{
		SessionID: sessionID,
		UserID:    m.userID,
		Metadata: map[string]any{
			"project":     m.userID,
			"environment": environment,
		},
	})
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	m.logger.Infow("created session", "session", sessionID)
	return sessionID, nil
}

func (m *ContextManager) addGraphJSON(payload map[string]any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal graph payload: %w", err)
	}
	return m.client.GraphAdd(m.userID, "json", string(data))
}

// AddDecision records an architecture or tooling decision.
func (m *ContextManager) AddDecision(decisionType, description string, context map[string]any) error {
	payload := map[string]any{
		"type":          "development_decision",
		"decision_type": decisionType,
		"description":   description,
		"timestamp":     time.Now().Format(time.RFC3339),
	}
	if context != nil {
		payload["context"] = context
	}
	if err := m.addGraphJSON(payload); err != nil {
		return err
	}
	m.logger.Infow("recorded decision", "decision_type", decisionType)
	return nil
}

// TrackCodeChange records a significant change to one file.
func (m *ContextManager) TrackCodeChange(filePath, changeType, description, snippet string) error {
	payload := map[string]any{
		"type":        "code_change",
		"file_path":   filePath,
		"change_type": changeType,
		"description": description,
		"timestamp":   time.Now().Format(time.RFC3339),
	}
	if snippet != "" {
		payload["code_snippet"] = snippet
	}
	if err := m.addGraphJSON(payload); err != nil {
		return err
	}
	m.logger.Infow("tracked code change", "file", filePath)
	return nil
}

// AddTodo records a pending development task.
func (m *ContextManager) AddTodo(task, priority, category string) error {
	if priority == "" {
		priority = "medium"
	}
	if category == "" {
		category = "general"
	}
	payload := map[string]any{
		"type":       "todo",
		"task":       task,
		"priority":   priority,
		"category":   category,
		"status":     "pending",
		"created_at": time.Now().Format(time.RFC3339),
	}
	if err := m.addGraphJSON(payload); err != nil {
		return err
	}
	m.logger.Infow("added todo", "task", task)
	return nil
}

// AddErrorContext records an error and, when known, its resolution.
func (m *ContextManager) AddErrorContext(message, filePath, stackTrace, resolution string) error {
	payload := map[string]any{
		"type":          "error_context",
		"error_message": message,
		"file_path":     filePath,
		"timestamp":     time.Now().Format(time.RFC3339),
	}
	if stackTrace != "" {
		payload["stack_trace"] = stackTrace
	}
	if resolution != "" {
		payload["resolution"] = resolution
	}
	if err := m.addGraphJSON(payload); err != nil {
		return err
	}
	m.logger.Infow("tracked error context", "file", filePath)
	return nil
}

// Search queries the project memory graph.
func (m *ContextManager) Search(query string, limit int) ([]GraphEdge, error) {
	if limit <= 0 {
		limit = 10
	}
	results, err := m.client.GraphSearch(m.userID, query, limit)
	if err != nil {
		return nil, err
	}
	return results.Edges, nil
}

func (m *ContextManager) RecentDecisions() ([]GraphEdge, error) {
	return m.Search("development_decision", 20)
}

func (m *ContextManager) PendingTodos() ([]GraphEdge, error) {
	return m.Search("todo pending", 20)
}

func (m *ContextManager) ErrorHistory() ([]GraphEdge, error) {
	return m.Search("error_context", 20)
}
