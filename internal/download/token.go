// Package download issues and verifies the signed tokens embedded in
// product download links.
package download

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long a download link stays valid after a purchase.
const TokenTTL = 48 * time.Hour

// ErrInvalidToken signals a token that failed verification or does not
// belong to the order.
var ErrInvalidToken = errors.New("download: invalid token")

// Claims carried by a download token.
type Claims struct {
	OrderID   string
	PaymentID string
}

// Tokens signs and verifies download tokens with an HMAC secret.
type Tokens struct {
	secret []byte
}

// NewTokens creates a token signer/verifier.
func NewTokens(secret string) *Tokens {
	return &Tokens{secret: []byte(secret)}
}

// Issue signs a download token binding the order to its payment.
func (t *Tokens) Issue(orderID, paymentID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":        orderID,
		"payment_id": paymentID,
		"iat":        now.Unix(),
		"exp":        now.Add(TokenTTL).Unix(),
	})
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("download: sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry and returns the bound claims.
func (t *Tokens) Verify(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	orderID, _ := mapClaims["sub"].(string)
	paymentID, _ := mapClaims["payment_id"].(string)
	if orderID == "" {
		return Claims{}, ErrInvalidToken
	}
	return Claims{OrderID: orderID, PaymentID: paymentID}, nil
}
