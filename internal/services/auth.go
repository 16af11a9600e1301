package services

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// TokenService is the identity collaborator: it issues and parses the
// bearer credentials carrying {id, role, stream}.
type TokenService struct {
	Secret     []byte
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func (t TokenService) HashPassword(raw string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), 10)
	return string(hashed), err
}

func (t TokenService) VerifyPassword(raw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(raw)) == nil
}

func (t TokenService) CreateAccessToken(user Identity) (string, int64, error) {
	now := time.Now().UTC()
	exp := now.Add(t.AccessTTL)
	claims := jwt.MapClaims{
		"iss":    t.Issuer,
		"sub":    strconv.FormatInt(user.ID, 10),
		"typ":    "access",
		"role":   string(user.Role),
		"stream": string(user.Stream),
		"iat":    now.Unix(),
		"exp":    exp.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.Secret)
	return signed, exp.Unix(), err
}

func (t TokenService) CreateRefreshToken(userID int64) (string, error) {
	now := time.Now().UTC()
	exp := now.Add(t.RefreshTTL)
	claims := jwt.MapClaims{
		"iss": t.Issuer,
		"sub": strconv.FormatInt(userID, 10),
		"typ": "refresh",
		"iat": now.Unix(),
		"exp": exp.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.Secret)
}

func (t TokenService) ParseToken(tokenStr string) (*jwt.Token, jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return t.Secret, nil
	}, jwt.WithIssuer(t.Issuer), jwt.WithValidMethods([]string{"HS256"}))
	return token, claims, err
}

// IdentityFromClaims rebuilds the caller identity from parsed access
// claims. The zero Identity and false mean the token was malformed.
func IdentityFromClaims(claims jwt.MapClaims) (Identity, bool) {
	sub, _ := claims["sub"].(string)
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || id <= 0 {
		return Identity{}, false
	}
	rawRole, _ := claims["role"].(string)
	role, ok := ParseRole(rawRole)
	if !ok {
		return Identity{}, false
	}
	rawStream, _ := claims["stream"].(string)
	stream, ok := ParseStream(rawStream)
	if !ok {
		return Identity{}, false
	}
	return Identity{ID: id, Role: role, Stream: stream}, true
}
