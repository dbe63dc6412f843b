package zep

// User is a Zep Cloud user record; here one user represents one project.
type User struct {
	UserID    string         `json:"user_id"`
	Email     string         `json:"email,omitempty"`
	FirstName string         `json:"first_name,omitempty"`
	LastName  string         `json:"last_name,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

type CreateSessionRequest struct {
	SessionID string         `json:"session_id"`
	UserID    string         `json:"user_id"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

type Message struct {
	Role     string         `json:"role"`
	RoleType string         `json:"role_type"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type addMemoryRequest struct {
	Messages []Message `json:"messages"`
}

type memorySearchRequest struct {
	Text  string `json:"text"`
	Limit int    `json:"limit,omitempty"`
}

type MemorySearchResult struct {
	Message *Message `json:"message,omitempty"`
	Score   float64  `json:"score,omitempty"`
}

type GraphAddRequest struct {
	UserID string `json:"user_id"`
	Type   string `json:"type"`
	Data   string `json:"data"`
}

type GraphSearchRequest struct {
	UserID string `json:"user_id"`
	Query  string `json:"query"`
	Limit  int    `json:"limit,omitempty"`
}

type GraphSearchResults struct {
	Edges []GraphEdge `json:"edges"`
}

// GraphEdge is one fact extracted by the memory graph.
type GraphEdge struct {
	Fact      string `json:"fact"`
	CreatedAt string `json:"created_at"`
}
