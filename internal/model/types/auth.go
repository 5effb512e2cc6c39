package types

import "time"

// TokenPayload mirrors the claims carried by a session token.
type TokenPayload struct {
	Username string    `json:"username"`
	Exp      time.Time `json:"exp"`
	OrigIat  time.Time `json:"origIat"`
	ID       string    `json:"jti"`
}

type IssuedToken struct {
	Token            string        `json:"token"`
	Payload          *TokenPayload `json:"payload"`
	RefreshExpiresIn time.Time     `json:"refreshExpiresIn"`
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,alphanum,min=3,max=150"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	IsStaff  bool   `json:"isStaff"`
}
