package models

import "github.com/golang-jwt/jwt/v5"

// RoleAdmin may force a catalog refresh.
const RoleAdmin = "admin"

// JWTClaims is the payload of an operator access token.
type JWTClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// RefreshResult reports a forced catalog reload.
type RefreshResult struct {
	Rows     int    `json:"rows"`
	Source   string `json:"source"`
	LoadedAt string `json:"loaded_at"`
}
