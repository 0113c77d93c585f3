package controllers

import (
	"fl350-gear-hub/middleware"
	"fl350-gear-hub/models"
	"fl350-gear-hub/utils"
	"net/http"
)

// UserController exposes the identity asserted by the identity provider
type UserController struct{}

// NewUserController creates a new UserController
func NewUserController() *UserController {
	return &UserController{}
}

// CurrentUser reports whether the caller is signed in, mirroring the
// identity provider's current-user hook
func (uc *UserController) CurrentUser(w http.ResponseWriter, r *http.Request) {
	current := models.CurrentUser{IsLoaded: true}
	if identity, ok := middleware.IdentityFromContext(r.Context()); ok {
		current.IsSignedIn = true
		current.ID = identity.ID
	}

	utils.RespondJSON(w, http.StatusOK, current)
}
