package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/freeeve/tergiversators/pkg/tergiversators"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("missing authorization token")
)

// Seat identifies one seat of one game.
type Seat struct {
	GameID string                `json:"game_id"`
	Player tergiversators.Player `json:"seat"`
}

// Claims holds the JWT payload of a seat token.
type Claims struct {
	Seat
	jwt.RegisteredClaims
}

// JWTManager handles seat token creation and validation.
type JWTManager struct {
	secret []byte
	expiry time.Duration
}

// NewJWTManager creates a JWTManager whose tokens live for ttl.
func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{
		secret: []byte(secret),
		expiry: ttl,
	}
}

// GenerateSeatToken creates a token authorizing actions for one seat.
func (m *JWTManager) GenerateSeatToken(gameID string, player tergiversators.Player) (string, error) {
	now := time.Now()
	claims := &Claims{
		Seat: Seat{GameID: gameID, Player: player},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   gameID + "/" + string(player),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ValidateToken parses and validates a JWT string, returning the claims.
func (m *JWTManager) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.GameID == "" || claims.Player.Seat() < 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
