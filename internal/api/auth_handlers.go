package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"serwer-dostepu/internal/auth"
	"serwer-dostepu/internal/database"
	"serwer-dostepu/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
)

type LoginRequest struct {
	Email    string `json:"email" example:"anna@example.com"`
	Password string `json:"password" example:"password123"`
}

type TokenResponse struct {
	AccessToken string         `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...."`
	Member      *models.Member `json:"member"`
}

type ItemLoginRequest struct {
	Username string `json:"username" example:"pseudo-42"`
	Password string `json:"password,omitempty" example:"secret"`
}

type ItemLoginResponse struct {
	AccessToken string         `json:"access_token"`
	ExpiresAt   time.Time      `json:"expires_at"`
	ItemID      string         `json:"item_id" example:"ecafbd2a-5688-11eb-ae93-0242ac130002"`
	Member      *models.Member `json:"member"`
}

type LoginSchemaTypeResponse struct {
	Type   models.ItemLoginSchemaType `json:"type" example:"username"`
	ItemID string                     `json:"item_id"`
}

// @Summary      Logs a member in
// @Description  Authenticates a registered member and returns an access token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        loginRequest   body      LoginRequest  true  "Login Credentials"
// @Success      200            {object}  TokenResponse
// @Failure      400            {string}  string "Invalid request body"
// @Failure      401            {string}  string "Invalid email or password"
// @Failure      500            {string}  string "Internal Server Error"
// @Router       /auth/login [post]
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	member, err := s.store.GetMemberByEmail(r.Context(), strings.TrimSpace(req.Email))
	if err != nil {
		log.Printf("ERROR: failed to load member: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if member == nil || member.PasswordHash == "" || !auth.CheckPasswordHash(req.Password, member.PasswordHash) {
		http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	accessToken, err := auth.GenerateJWT(member, s.config.JWT.Secret)
	if err != nil {
		http.Error(w, "Failed to generate access token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{AccessToken: accessToken, Member: member})
}

// @Summary      Item login schema type
// @Description  Returns the login schema that applies to an item, defined on the item or its closest ancestor.
// @Tags         auth
// @Produce      json
// @Param        itemId  path      string  true  "Item ID"
// @Success      200     {object}  LoginSchemaTypeResponse
// @Failure      404     {string}  string "Item not found or no login schema"
// @Router       /items/{itemId}/login-schema-type [get]
func (s *Server) LoginSchemaTypeHandler(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemId")

	resolver, ok := s.loadResolver(w, r)
	if !ok {
		return
	}

	schema, found, err := resolver.NearestLoginSchema(itemID)
	if err != nil {
		log.Printf("ERROR: failed to resolve login schema of %s: %v", itemID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "No login schema for this item", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, LoginSchemaTypeResponse{Type: schema.Type, ItemID: schema.ItemID})
}

func newGuestID() (string, error) {
	generateID, err := nanoid.Standard(21)
	if err != nil {
		return "", err
	}
	return generateID(), nil
}

// @Summary      Pseudonymized item login
// @Description  Signs a guest in through the login schema of an item. Unknown usernames create a new guest with read access on the schema's item.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        itemId            path      string            true  "Item ID"
// @Param        itemLoginRequest  body      ItemLoginRequest  true  "Pseudonymized credentials"
// @Success      200               {object}  ItemLoginResponse
// @Failure      400               {string}  string "Invalid request"
// @Failure      401               {string}  string "Invalid username or password"
// @Failure      404               {string}  string "Item not found or no login schema"
// @Router       /items/{itemId}/login [post]
func (s *Server) ItemLoginHandler(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemId")

	var req ItemLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		http.Error(w, "Username cannot be empty", http.StatusBadRequest)
		return
	}

	resolver, ok := s.loadResolver(w, r)
	if !ok {
		return
	}

	schema, found, err := resolver.NearestLoginSchema(itemID)
	if err != nil {
		log.Printf("ERROR: failed to resolve login schema of %s: %v", itemID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "No login schema for this item", http.StatusNotFound)
		return
	}
	withPassword := schema.Type == models.LoginUsernameAndPassword
	if withPassword && req.Password == "" {
		http.Error(w, "Password is required", http.StatusBadRequest)
		return
	}

	guest, err := s.store.GetGuest(r.Context(), schema.ItemID, req.Username)
	if err != nil {
		log.Printf("ERROR: failed to load guest: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if guest == nil {
		guest, err = s.createGuest(r, schema.ItemID, req, withPassword)
		if err != nil {
			log.Printf("ERROR: failed to create guest: %v", err)
			http.Error(w, "Failed to create guest", http.StatusInternalServerError)
			return
		}
	}

	if withPassword && !auth.CheckPasswordHash(req.Password, guest.PasswordHash) {
		http.Error(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}

	accessToken, expiresAt, err := auth.GenerateGuestJWT(guest, schema.ItemID, s.config.JWT.Secret)
	if err != nil {
		http.Error(w, "Failed to generate access token", http.StatusInternalServerError)
		return
	}

	err = s.store.CreateItemLoginSession(r.Context(), database.CreateItemLoginSessionParams{
		ID:        uuid.New(),
		GuestID:   guest.ID,
		ItemID:    schema.ItemID,
		UserAgent: r.UserAgent(),
		ClientIP:  r.RemoteAddr,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		log.Printf("ERROR: failed to store item login session: %v", err)
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, ItemLoginResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		ItemID:      schema.ItemID,
		Member:      guest,
	})
}

// createGuest registers a new guest. When another request registered the
// same username first, that guest is returned instead.
func (s *Server) createGuest(r *http.Request, schemaItemID string, req ItemLoginRequest, withPassword bool) (*models.Member, error) {
	id, err := newGuestID()
	if err != nil {
		return nil, err
	}
	params := database.CreateGuestParams{
		ID:     id,
		ItemID: schemaItemID,
		Name:   req.Username,
	}
	if withPassword {
		if params.PasswordHash, err = auth.HashPassword(req.Password); err != nil {
			return nil, err
		}
	}

	guest, err := s.store.CreateGuest(r.Context(), params)
	if errors.Is(err, database.ErrGuestExists) {
		return s.store.GetGuest(r.Context(), schemaItemID, req.Username)
	}
	return guest, err
}

// @Summary      Enroll into an item
// @Description  Gives a signed-in member read access on the item that defines the applicable login schema.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Param        itemId  path      string  true  "Item ID"
// @Success      201     {object}  models.Membership
// @Failure      401     {string}  string "Unauthorized"
// @Failure      403     {string}  string "Guests cannot enroll"
// @Failure      404     {string}  string "Item not found or no login schema"
// @Failure      409     {string}  string "Already a member"
// @Router       /items/{itemId}/enroll [post]
func (s *Server) EnrollHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())
	if claims.Guest {
		http.Error(w, "Guests cannot enroll", http.StatusForbidden)
		return
	}
	itemID := chi.URLParam(r, "itemId")

	resolver, ok := s.loadResolver(w, r)
	if !ok {
		return
	}

	schema, found, err := resolver.NearestLoginSchema(itemID)
	if err != nil {
		log.Printf("ERROR: failed to resolve login schema of %s: %v", itemID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "No login schema for this item", http.StatusNotFound)
		return
	}

	membership, err := s.store.CreateMembership(r.Context(), database.CreateMembershipParams{
		MemberID:   claims.MemberID,
		ItemID:     schema.ItemID,
		Permission: models.PermissionRead,
	})
	if err != nil {
		switch {
		case errors.Is(err, database.ErrMembershipExists):
			http.Error(w, "Already a member of this item", http.StatusConflict)
		case errors.Is(err, database.ErrItemNotFound):
			http.Error(w, "Item not found", http.StatusNotFound)
		case errors.Is(err, database.ErrMemberNotFound):
			http.Error(w, "Member not found", http.StatusUnauthorized)
		default:
			log.Printf("ERROR: failed to enroll member %s: %v", claims.MemberID, err)
			http.Error(w, "Failed to enroll", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusCreated, membership)
}
