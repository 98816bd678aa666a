package service

import (
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-maze/identity"
	"github.com/beka-birhanu/vinom-maze/service/i"
)

// OperatorRole is the role claim carried by operator tokens.
const OperatorRole = "operator"

type Auth struct {
	operator  *identity.Operator
	tokenizer i.Tokenizer
	ttl       time.Duration
}

// NewAuthService issues tokens valid for ttl to the given operator.
func NewAuthService(operator *identity.Operator, tokenizer i.Tokenizer, ttl time.Duration) (i.Authenticator, error) {
	if operator == nil || tokenizer == nil {
		return nil, errors.New("auth service needs an operator and a tokenizer")
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	return &Auth{operator: operator, tokenizer: tokenizer, ttl: ttl}, nil
}

func (a *Auth) SignIn(username, password string) (string, error) {
	if err := a.operator.Authenticate(username, password); err != nil {
		return "", err
	}

	return a.tokenizer.Generate(map[string]interface{}{
		"sub":      a.operator.ID.String(),
		"username": a.operator.Username,
		"role":     OperatorRole,
	}, a.ttl)
}

func (a *Auth) TokenTTL() time.Duration { return a.ttl }
