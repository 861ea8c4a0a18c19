package domain

// Identity is what a verified session token resolves to.
type Identity struct {
	ID    string
	Email string
}
