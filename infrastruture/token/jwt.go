package token

import (
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/dgrijalva/jwt-go"
)

var (
	ErrInvalidToken            = errors.New("invalid token")
	ErrUnexpectedSigningMethod = errors.New("unexpected signing method")
	ErrWrongIssuer             = errors.New("token issued by another service")
)

// JwtService signs and verifies HS256 tokens.
// Implements i.Tokenizer.
type JwtService struct {
	secretKey string
	issuer    string
	now       func() time.Time
}

// NewJwtService creates a new JWT Service with the provided configuration.
func NewJwtService(secretKey, issuer string) i.Tokenizer {
	return &JwtService{
		secretKey: secretKey,
		issuer:    issuer,
		now:       time.Now,
	}
}

// Generate creates a JWT for the given claims. The issuer, issue time and
// expiry are set by the service and override claims of the same name.
func (s *JwtService) Generate(claims map[string]interface{}, expTime time.Duration) (string, error) {
	now := s.now().UTC()
	jwtClaims := jwt.MapClaims{}
	for key, val := range claims {
		jwtClaims[key] = val
	}
	jwtClaims["iss"] = s.issuer
	jwtClaims["iat"] = now.Unix()
	jwtClaims["exp"] = now.Add(expTime).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims)
	return token.SignedString([]byte(s.secretKey))
}

// Decode parses and validates a JWT, returning the claims if valid.
func (s *JwtService) Decode(tokenString string) (map[string]interface{}, error) {
	token, err := jwt.Parse(tokenString, s.getSigningKey)
	if err != nil {
		var validation *jwt.ValidationError
		if errors.As(err, &validation) && errors.Is(validation.Inner, ErrUnexpectedSigningMethod) {
			return nil, ErrUnexpectedSigningMethod
		}
		return nil, errors.Join(ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if !claims.VerifyIssuer(s.issuer, true) {
		return nil, ErrWrongIssuer
	}
	return claims, nil
}

// getSigningKey returns the signing key for token validation.
func (s *JwtService) getSigningKey(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, ErrUnexpectedSigningMethod
	}
	return []byte(s.secretKey), nil
}
