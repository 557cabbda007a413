package jwt

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("missing authorization token")
)

// Role values carried in token claims
const (
	RoleOwner    = "Owner"
	RoleCustomer = "Customer"
)

// Claims represents the JWT claims structure. Owner tokens carry only
// UserID; customer tokens additionally carry the StoreID they are scoped to.
type Claims struct {
	UserID  uuid.UUID `json:"user_id"`
	Role    string    `json:"role"`
	StoreID uuid.UUID `json:"store_id,omitempty"`
	jwt.RegisteredClaims
}

// GetSecretKey returns the JWT secret from environment or a default
func GetSecretKey() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "your-super-secret-key-change-in-production"
	}
	return []byte(secret)
}

// GenerateOwnerToken creates a token for a store owner (dashboard)
func GenerateOwnerToken(userID uuid.UUID) (string, error) {
	return generate(Claims{
		UserID: userID,
		Role:   RoleOwner,
	})
}

// GenerateCustomerToken creates a store-scoped token for a storefront customer
func GenerateCustomerToken(customerID, storeID uuid.UUID) (string, error) {
	return generate(Claims{
		UserID:  customerID,
		Role:    RoleCustomer,
		StoreID: storeID,
	})
}

func generate(claims Claims) (string, error) {
	expirationHours := 24 // Token valid for 24 hours

	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expirationHours) * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		Issuer:    "snapshop-backend",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	return token.SignedString(GetSecretKey())
}

// ValidateToken parses and validates a JWT token
func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return GetSecretKey(), nil
	})

	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
