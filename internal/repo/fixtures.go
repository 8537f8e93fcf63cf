package repo

// SeedUser is a fixture record: plaintext password, hashed at seed time.
type SeedUser struct {
	Email    string
	Name     string
	Password string
}

// SeedUsers returns the demo accounts used by cmd/seed and by the
// in-memory store at startup.
func SeedUsers() []SeedUser {
	return []SeedUser{
		{Email: "admin@example.com", Name: "Admin User", Password: "admin123"},
		{Email: "john.doe@example.com", Name: "John Doe", Password: "password123"},
		{Email: "jane.smith@example.com", Name: "Jane Smith", Password: "password123"},
		{Email: "bob.wilson@example.com", Name: "Bob Wilson", Password: "password123"},
		{Email: "alice.jones@example.com", Name: "Alice Jones", Password: "password123"},
	}
}
