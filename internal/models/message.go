package models

// Message roles
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a role-tagged chat turn
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
