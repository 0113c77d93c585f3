package models

// Identity is the signed-in user as asserted by the identity provider
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

// CurrentUser mirrors the identity provider's current-user hook
type CurrentUser struct {
	IsLoaded   bool   `json:"isLoaded"`
	IsSignedIn bool   `json:"isSignedIn"`
	ID         string `json:"id,omitempty"`
}
