package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"serwer-dostepu/internal/access"
	"serwer-dostepu/internal/models"
)

var errInvalidAuthHeader = errors.New("invalid authorization header")

// ItemLoginRequiredResponse tells the client which login form to show
// before the item can be opened.
type ItemLoginRequiredResponse struct {
	ItemLoginSchema models.ItemLoginSchemaType `json:"item_login_schema" example:"username+password"`
	ItemID          string                     `json:"item_id" example:"ecafbd2a-5688-11eb-ae93-0242ac130002"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: failed to encode response: %v", err)
	}
}

// writeDenied answers a request the actor may not make. Anonymous actors
// get 401 so clients know signing in may help.
func writeDenied(w http.ResponseWriter, actor *access.Actor, d access.Decision) {
	recordDecision(d)
	switch d.Kind {
	case access.DeniedNotFound:
		http.Error(w, "Item not found", http.StatusNotFound)
	case access.DeniedUnauthorized:
		if actor == nil {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}
		http.Error(w, "Access denied", http.StatusForbidden)
	case access.RequiresItemLogin:
		writeJSON(w, http.StatusUnauthorized, ItemLoginRequiredResponse{
			ItemLoginSchema: d.LoginSchema,
			ItemID:          d.LoginItemID,
		})
	default:
		log.Printf("ERROR: unexpected access decision %v", d)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// checkDecision writes the failure response for err or a denied decision
// and reports whether the handler may go on.
func checkDecision(w http.ResponseWriter, actor *access.Actor, d access.Decision, err error) bool {
	if err != nil {
		log.Printf("ERROR: failed to resolve access: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return false
	}
	if !d.IsGranted() {
		writeDenied(w, actor, d)
		return false
	}
	recordDecision(d)
	return true
}
