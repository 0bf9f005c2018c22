package domain

// User represents a registered account holder.
type User struct {
	ID           int64
	Name         string
	Email        string
	Phone        string
	Address      string
	Username     string
	PasswordHash string
}
