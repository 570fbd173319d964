package auth

import (
	"time"

	"serwer-dostepu/internal/access"
	"serwer-dostepu/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const (
	memberTokenTTL = 1 * time.Hour
	guestTokenTTL  = 24 * time.Hour
)

type AppClaims struct {
	MemberID string `json:"member_id"`
	Name     string `json:"name"`
	Guest    bool   `json:"guest,omitempty"`
	// ItemLoginItemID scopes a guest token to the item whose login schema
	// it was issued through.
	ItemLoginItemID string `json:"item_login_item_id,omitempty"`
	jwt.RegisteredClaims
}

// Actor turns verified claims into the identity access checks are made for.
func (c *AppClaims) Actor() *access.Actor {
	if c == nil {
		return nil
	}
	return &access.Actor{
		ID:              c.MemberID,
		Guest:           c.Guest,
		ItemLoginItemID: c.ItemLoginItemID,
	}
}

func GenerateJWT(member *models.Member, secret string) (string, error) {
	return sign(&AppClaims{
		MemberID: member.ID,
		Name:     member.Name,
	}, memberTokenTTL, secret)
}

// GenerateGuestJWT issues a token for a pseudonymized member, valid only
// below itemID.
func GenerateGuestJWT(guest *models.Member, itemID, secret string) (string, time.Time, error) {
	expiresAt := time.Now().Add(guestTokenTTL)
	token, err := sign(&AppClaims{
		MemberID:        guest.ID,
		Name:            guest.Name,
		Guest:           true,
		ItemLoginItemID: itemID,
	}, guestTokenTTL, secret)
	return token, expiresAt, err
}

func sign(claims *AppClaims, ttl time.Duration, secret string) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.MemberID,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    "access-server",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func VerifyJWT(tokenString, secret string) (*AppClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AppClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*AppClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrInvalidKey
}
