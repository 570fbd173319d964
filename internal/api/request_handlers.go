package api

import (
	"errors"
	"log"
	"net/http"
	"sort"

	"serwer-dostepu/internal/access"
	"serwer-dostepu/internal/database"
	"serwer-dostepu/internal/models"
	"serwer-dostepu/internal/websocket"

	"github.com/go-chi/chi/v5"
)

// itemAdmins lists the members who may answer a membership request on
// item: creators along its path and holders of an Admin grant on the path
// whose closest grant is still Admin.
func itemAdmins(snap *access.Snapshot, item models.Item) ([]string, error) {
	ancestors, err := snap.AncestorsOf(item)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var admins []string
	add := func(id string) {
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		if level, ok := snap.Memberships().NearestMembership(id, ancestors); ok && level == models.PermissionAdmin {
			admins = append(admins, id)
		}
	}
	for _, id := range ancestors {
		if a, ok := snap.Item(id); ok {
			add(a.CreatorID)
		}
		for _, memberID := range snap.Memberships().MembersOn(id, models.PermissionAdmin) {
			add(memberID)
		}
	}
	sort.Strings(admins)
	return admins, nil
}

// @Summary      Request membership
// @Description  Asks the admins of an item for access. Connected admins are notified over the websocket.
// @Tags         memberships
// @Produce      json
// @Security     BearerAuth
// @Param        itemId  path      string  true  "Item ID"
// @Success      201     {object}  models.MembershipRequest
// @Failure      401     {string}  string "Unauthorized"
// @Failure      403     {string}  string "Guests cannot request membership"
// @Failure      404     {string}  string "Item not found"
// @Failure      409     {string}  string "Already a member or already requested"
// @Router       /items/{itemId}/memberships/requests [post]
func (s *Server) CreateMembershipRequestHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())
	if claims.Guest {
		http.Error(w, "Guests cannot request membership", http.StatusForbidden)
		return
	}
	itemID := chi.URLParam(r, "itemId")

	resolver, ok := s.loadResolver(w, r)
	if !ok {
		return
	}
	snap := resolver.Snapshot()

	item, found := snap.Item(itemID)
	if !found {
		http.Error(w, "Item not found", http.StatusNotFound)
		return
	}
	ancestors, err := snap.AncestorsOf(item)
	if err != nil {
		log.Printf("ERROR: malformed path of item %s: %v", itemID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if _, isMember := snap.Memberships().NearestMembership(claims.MemberID, ancestors); isMember {
		http.Error(w, "Already a member of this item", http.StatusConflict)
		return
	}

	request, err := s.store.CreateMembershipRequest(r.Context(), claims.MemberID, itemID)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrRequestAlreadyExists):
			http.Error(w, "Membership already requested", http.StatusConflict)
		case errors.Is(err, database.ErrItemNotFound):
			http.Error(w, "Item not found", http.StatusNotFound)
		case errors.Is(err, database.ErrMemberNotFound):
			http.Error(w, "Member not found", http.StatusUnauthorized)
		default:
			log.Printf("ERROR: failed to create membership request: %v", err)
			http.Error(w, "Failed to create membership request", http.StatusInternalServerError)
		}
		return
	}

	admins, err := itemAdmins(snap, item)
	if err != nil {
		log.Printf("WARN: could not list admins of %s: %v", itemID, err)
	} else if s.wsHub != nil {
		err := s.wsHub.Notify(admins, websocket.Event{
			Type:    websocket.EventMembershipRequested,
			Payload: request,
		})
		if err != nil {
			log.Printf("WARN: failed to notify admins of %s: %v", itemID, err)
		}
	}

	writeJSON(w, http.StatusCreated, request)
}
