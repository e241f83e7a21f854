package models

// Principal is the explicit authentication context of a request. Handlers and
// checkout sessions receive it instead of looking up auth state themselves.
type Principal struct {
	UserID string `json:"userId,omitempty"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
}

// Anonymous is the zero principal used for guests.
var Anonymous = Principal{}

func (p Principal) Authenticated() bool {
	return p.UserID != ""
}

// Owns reports whether p may act on something created by owner. Guest-owned
// resources are reachable by anyone holding their id.
func (p Principal) Owns(owner Principal) bool {
	if !owner.Authenticated() {
		return true
	}
	return owner.UserID == p.UserID
}
