package api

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"serwer-dostepu/internal/access"
	"serwer-dostepu/internal/models"

	"github.com/go-chi/chi/v5"
)

type ItemResponse struct {
	Item       models.Item            `json:"item"`
	Permission models.PermissionLevel `json:"permission" swaggertype:"string" example:"read"`
}

// loadResolver writes a 500 when the snapshot cannot be read.
func (s *Server) loadResolver(w http.ResponseWriter, r *http.Request) (*access.Resolver, bool) {
	resolver, err := s.resolver(r.Context())
	if err != nil {
		log.Printf("ERROR: failed to load snapshot: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return nil, false
	}
	return resolver, true
}

func parseTypes(raw string) ([]models.ItemType, error) {
	if raw == "" {
		return nil, nil
	}
	var types []models.ItemType
	for _, part := range strings.Split(raw, ",") {
		t := models.ItemType(strings.TrimSpace(part))
		if !t.Valid() {
			return nil, fmt.Errorf("unknown item type %q", part)
		}
		types = append(types, t)
	}
	return types, nil
}

func parseBool(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid value for %s", name)
	}
	return v, nil
}

func filterTypes(items []models.Item, types []models.ItemType) []models.Item {
	if len(types) == 0 {
		return items
	}
	out := []models.Item{}
	for _, item := range items {
		for _, t := range types {
			if item.Type == t {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// @Summary      Get an item
// @Description  Resolves the caller's access to an item and returns it with the granted permission.
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        itemId  path      string  true  "Item ID"
// @Success      200     {object}  ItemResponse
// @Failure      401     {object}  ItemLoginRequiredResponse "Sign in or item login required"
// @Failure      403     {string}  string "Access denied"
// @Failure      404     {string}  string "Item not found"
// @Router       /items/{itemId} [get]
func (s *Server) GetItemHandler(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	itemID := chi.URLParam(r, "itemId")

	resolver, ok := s.loadResolver(w, r)
	if !ok {
		return
	}

	decision, err := resolver.Resolve(actor, itemID)
	if !checkDecision(w, actor, decision, err) {
		return
	}

	item, _ := resolver.Snapshot().Item(itemID)
	writeJSON(w, http.StatusOK, ItemResponse{Item: item, Permission: decision.Permission})
}

// @Summary      List children
// @Description  Lists the children of an item the caller may see. Hidden children are only listed for writers and admins.
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        itemId   path      string  true   "Parent item ID"
// @Param        pinned   query     bool    false  "Only pinned children"
// @Param        content  query     bool    false  "Only non-folder, non-pinned children"
// @Param        types    query     string  false  "Comma separated item types"
// @Param        shuffle  query     bool    false  "Order children with the caller's seeded shuffle"
// @Param        rootId   query     string  false  "Root item seeding the shuffle, defaults to itemId"
// @Success      200      {array}   models.Item
// @Failure      400      {string}  string "Invalid query"
// @Failure      401      {object}  ItemLoginRequiredResponse
// @Failure      403      {string}  string "Access denied"
// @Failure      404      {string}  string "Item not found"
// @Router       /items/{itemId}/children [get]
func (s *Server) ListChildrenHandler(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	itemID := chi.URLParam(r, "itemId")

	pinned, err := parseBool(r, "pinned")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	content, err := parseBool(r, "content")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	shuffle, err := parseBool(r, "shuffle")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	types, err := parseTypes(r.URL.Query().Get("types"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resolver, ok := s.loadResolver(w, r)
	if !ok {
		return
	}

	var children []models.Item
	var decision access.Decision
	switch {
	case pinned:
		children, decision, err = resolver.PinnedChildren(actor, itemID)
	case content:
		children, decision, err = resolver.ContentChildren(actor, itemID)
	default:
		children, decision, err = resolver.VisibleChildren(actor, itemID)
	}
	if !checkDecision(w, actor, decision, err) {
		return
	}

	children = filterTypes(children, types)
	if shuffle {
		rootID := r.URL.Query().Get("rootId")
		if rootID == "" {
			rootID = itemID
		}
		actorID := ""
		if actor != nil {
			actorID = actor.ID
		}
		children = access.SeededOrder(children, access.CombineIDs(rootID, actorID))
	}

	writeJSON(w, http.StatusOK, children)
}

// @Summary      List descendants
// @Description  Lists every item below an item the caller may see, in creation order.
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        itemId      path      string  true   "Root item ID"
// @Param        types       query     string  false  "Comma separated item types"
// @Param        showHidden  query     bool    false  "Include hidden items for writers and admins"
// @Success      200         {array}   models.Item
// @Failure      400         {string}  string "Invalid query"
// @Failure      401         {object}  ItemLoginRequiredResponse
// @Failure      403         {string}  string "Access denied"
// @Failure      404         {string}  string "Item not found"
// @Router       /items/{itemId}/descendants [get]
func (s *Server) ListDescendantsHandler(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	itemID := chi.URLParam(r, "itemId")

	types, err := parseTypes(r.URL.Query().Get("types"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	showHidden, err := parseBool(r, "showHidden")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resolver, ok := s.loadResolver(w, r)
	if !ok {
		return
	}

	descendants, decision, err := resolver.VisibleDescendants(actor, itemID, access.DescendantOptions{
		Types:      types,
		ShowHidden: showHidden,
	})
	if !checkDecision(w, actor, decision, err) {
		return
	}

	writeJSON(w, http.StatusOK, descendants)
}

// @Summary      Navigation
// @Description  Returns the previous and next folders of an item inside a root, optionally in the caller's shuffled order.
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        itemId   path      string  true   "Current item ID"
// @Param        rootId   query     string  true   "Root item ID"
// @Param        shuffle  query     bool    false  "Use the caller's seeded order"
// @Success      200      {object}  access.Navigation
// @Failure      400      {string}  string "Invalid query"
// @Failure      401      {object}  ItemLoginRequiredResponse
// @Failure      403      {string}  string "Access denied"
// @Failure      404      {string}  string "Item not found"
// @Router       /items/{itemId}/navigation [get]
func (s *Server) NavigationHandler(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	itemID := chi.URLParam(r, "itemId")

	rootID := r.URL.Query().Get("rootId")
	if rootID == "" {
		http.Error(w, "rootId is required", http.StatusBadRequest)
		return
	}
	shuffle, err := parseBool(r, "shuffle")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resolver, ok := s.loadResolver(w, r)
	if !ok {
		return
	}

	nav, decision, err := resolver.Navigation(actor, rootID, itemID, shuffle)
	if !checkDecision(w, actor, decision, err) {
		return
	}

	writeJSON(w, http.StatusOK, nav)
}

// @Summary      List visibility tags
// @Description  Returns the public and hidden tags set on the item and its ancestors.
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        itemId  path      string  true  "Item ID"
// @Success      200     {array}   models.VisibilityTag
// @Failure      401     {object}  ItemLoginRequiredResponse
// @Failure      403     {string}  string "Access denied"
// @Failure      404     {string}  string "Item not found"
// @Router       /items/{itemId}/tags [get]
func (s *Server) ListTagsHandler(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	itemID := chi.URLParam(r, "itemId")

	resolver, ok := s.loadResolver(w, r)
	if !ok {
		return
	}

	tags, decision, err := resolver.PathTags(actor, itemID)
	if !checkDecision(w, actor, decision, err) {
		return
	}
	if tags == nil {
		tags = []models.VisibilityTag{}
	}

	writeJSON(w, http.StatusOK, tags)
}

// @Summary      Get geolocation
// @Description  Returns the location of the item or of its closest located ancestor.
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        itemId  path      string  true  "Item ID"
// @Success      200     {object}  access.ItemGeolocation
// @Success      204     "No location on the path"
// @Failure      401     {object}  ItemLoginRequiredResponse
// @Failure      403     {string}  string "Access denied"
// @Failure      404     {string}  string "Item not found"
// @Router       /items/{itemId}/geolocation [get]
func (s *Server) GeolocationHandler(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	itemID := chi.URLParam(r, "itemId")

	resolver, ok := s.loadResolver(w, r)
	if !ok {
		return
	}

	loc, decision, err := resolver.Geolocation(actor, itemID)
	if !checkDecision(w, actor, decision, err) {
		return
	}
	if loc == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, loc)
}

// @Summary      Map geolocations
// @Description  Returns the locations of a parent item and of its visible children.
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        parentItemId  query     string  true  "Parent item ID"
// @Success      200           {array}   access.ItemGeolocation
// @Failure      400           {string}  string "parentItemId is required"
// @Failure      401           {object}  ItemLoginRequiredResponse
// @Failure      403           {string}  string "Access denied"
// @Failure      404           {string}  string "Item not found"
// @Router       /items/geolocation [get]
func (s *Server) MapGeolocationsHandler(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	parentID := r.URL.Query().Get("parentItemId")
	if parentID == "" {
		http.Error(w, "parentItemId is required", http.StatusBadRequest)
		return
	}

	resolver, ok := s.loadResolver(w, r)
	if !ok {
		return
	}

	locs, decision, err := resolver.MapGeolocations(actor, parentID)
	if !checkDecision(w, actor, decision, err) {
		return
	}

	writeJSON(w, http.StatusOK, locs)
}

// @Summary      Download document content
// @Description  Streams the stored content of a non-folder item.
// @Tags         items
// @Produce      application/octet-stream
// @Security     BearerAuth
// @Param        itemId  path      string  true  "Item ID"
// @Success      200     {file}    file
// @Failure      400     {string}  string "Folders have no content"
// @Failure      401     {object}  ItemLoginRequiredResponse
// @Failure      403     {string}  string "Access denied"
// @Failure      404     {string}  string "Item or content not found"
// @Router       /items/{itemId}/download [get]
func (s *Server) DownloadHandler(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	itemID := chi.URLParam(r, "itemId")

	resolver, ok := s.loadResolver(w, r)
	if !ok {
		return
	}

	decision, err := resolver.Resolve(actor, itemID)
	if !checkDecision(w, actor, decision, err) {
		return
	}

	item, _ := resolver.Snapshot().Item(itemID)
	if item.IsFolder() {
		http.Error(w, "Folders have no content", http.StatusBadRequest)
		return
	}

	content, err := s.storage.Get(item)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			http.Error(w, "Content not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR: failed to open content of item %s: %v", item.ID, err)
		http.Error(w, "Failed to read content", http.StatusInternalServerError)
		return
	}
	defer content.Close()

	contentType := "application/octet-stream"
	if item.MimeType != nil && *item.MimeType != "" {
		contentType = *item.MimeType
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", item.Name))
	if _, err := io.Copy(w, content); err != nil {
		log.Printf("WARN: download of item %s interrupted: %v", item.ID, err)
	}
}
