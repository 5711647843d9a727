package supabase

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// RoleServiceRole is the role of keys that bypass row level security.
const RoleServiceRole = "service_role"

// KeyInfo is what a legacy JWT-shaped Supabase key says about itself.
type KeyInfo struct {
	Role string
	Ref  string
}

// InspectKey reads the claims of a JWT-shaped API key without verifying the
// signature. Keys that are not JWTs return an error.
func InspectKey(key string) (KeyInfo, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(key, claims); err != nil {
		return KeyInfo{}, fmt.Errorf("supabase: key is not a JWT: %w", err)
	}
	role, _ := claims["role"].(string)
	ref, _ := claims["ref"].(string)
	return KeyInfo{Role: role, Ref: ref}, nil
}
