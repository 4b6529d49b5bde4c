// Package access decides whether a caller may perform an action. The
// decision is a pure function of the caller's verified identity, the
// route policy and, for owned resources, the owner id.
package access

// Identity is the verified caller, built from token claims.
type Identity struct {
	UserID  string
	Email   string
	IsAdmin bool
}

// Policy is the authorization rule attached to a route or action.
type Policy int

const (
	// Public allows everyone, with or without a token.
	Public Policy = iota
	// Authenticated requires any valid identity.
	Authenticated
	// AdminOnly requires an identity with the admin flag.
	AdminOnly
	// OwnerOrAdmin requires the identity to own the resource or be admin.
	OwnerOrAdmin
)

func (p Policy) String() string {
	switch p {
	case Public:
		return "public"
	case Authenticated:
		return "authenticated"
	case AdminOnly:
		return "admin_only"
	case OwnerOrAdmin:
		return "owner_or_admin"
	}
	return "unknown"
}

// Decision is the outcome of Decide.
type Decision int

const (
	Allow Decision = iota
	// Unauthenticated maps to 401: no valid identity where one is needed.
	Unauthenticated
	// Forbidden maps to 403: valid identity, insufficient role or ownership.
	Forbidden
)

// Decide applies policy p to id. ownerID is only read for OwnerOrAdmin.
func Decide(id *Identity, p Policy, ownerID string) Decision {
	if p == Public {
		return Allow
	}
	if id == nil || id.UserID == "" {
		return Unauthenticated
	}
	switch p {
	case Authenticated:
		return Allow
	case AdminOnly:
		if id.IsAdmin {
			return Allow
		}
		return Forbidden
	case OwnerOrAdmin:
		if id.IsAdmin || (ownerID != "" && id.UserID == ownerID) {
			return Allow
		}
		return Forbidden
	}
	return Forbidden
}
