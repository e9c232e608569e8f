package domain

// User represents an authenticated owner of accounts.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Username     string `json:"username"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"` // Never expose the hash in JSON responses
	AuditFields
}
