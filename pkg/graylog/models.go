package graylog

// Stream is a message routing target configured on the server.
type Stream struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Disabled    bool   `json:"disabled"`
	CreatedAt   string `json:"created_at"`
}

// User is a server account as returned by the user administration endpoints.
type User struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	FullName    string   `json:"full_name"`
	Email       string   `json:"email"`
	Permissions []string `json:"permissions"`
	ReadOnly    bool     `json:"read_only"`
	External    bool     `json:"external"`
}
