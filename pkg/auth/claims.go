package auth

import "github.com/golang-jwt/jwt/v5"

// Claims are the JWT claims the journey front end presents to the offer engine.
type Claims struct {
	jwt.RegisteredClaims
	// Channel identifies the calling journey (e.g. "web-pl", "branch").
	Channel string   `json:"channel,omitempty"`
	Roles   []string `json:"roles"`
}

// HasRole checks if the claims include role.
func (c Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Role constants.
const (
	RoleJourney  = "journey"
	RoleOperator = "operator"
)
