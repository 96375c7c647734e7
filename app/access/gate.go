package access

import "github.com/vibast-solutions/ms-go-club/app/entity"

type Decision int

const (
	DecisionAdmit Decision = iota
	DecisionRedirectLogin
	DecisionForbidden
)

func (d Decision) String() string {
	switch d {
	case DecisionAdmit:
		return "admit"
	case DecisionRedirectLogin:
		return "redirect_login"
	case DecisionForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Requirement is the set of roles a route admits.
type Requirement struct {
	roles []entity.Role
}

func Require(roles ...entity.Role) Requirement {
	out := make([]entity.Role, 0, len(roles))
	for _, role := range roles {
		if parsed, err := entity.ParseRole(string(role)); err == nil {
			out = append(out, parsed)
		}
	}
	return Requirement{roles: out}
}

// RequireNames builds a requirement from configured role names. Names that do not
// resolve to a known role are dropped.
func RequireNames(names ...string) Requirement {
	return Requirement{roles: ResolveRoles(names...)}
}

func (r Requirement) Roles() []entity.Role {
	return append([]entity.Role(nil), r.roles...)
}

func (r Requirement) Decide(caller *entity.Role) Decision {
	return Decide(caller, r.roles)
}

func ResolveRoles(names ...string) []entity.Role {
	roles := make([]entity.Role, 0, len(names))
	for _, name := range names {
		role, err := entity.ParseRole(name)
		if err != nil {
			continue
		}
		roles = append(roles, role)
	}
	return roles
}

func Decide(caller *entity.Role, allowed []entity.Role) Decision {
	if caller == nil {
		return DecisionRedirectLogin
	}
	if len(allowed) == 0 {
		return DecisionForbidden
	}
	for _, role := range allowed {
		if role == *caller {
			return DecisionAdmit
		}
	}
	return DecisionForbidden
}
