package guard

import "sareemart/internal/domain"

// Area identifies which part of the site a guarded route belongs to. Each
// area has its own login path so an anonymous visitor lands on the right form.
type Area string

const (
	AreaAdmin   Area = "admin"
	AreaAccount Area = "account"
)

const (
	AdminLoginPath    = "/admin/login"
	CustomerLoginPath = "/login"
	AccountHomePath   = "/account"
)

// Decision is the outcome of an authorization check. When Allow is false,
// Redirect holds the path the caller must send the visitor to.
type Decision struct {
	Allow    bool
	Redirect string
}

var allow = Decision{Allow: true}

// Authorize decides whether a principal may enter a route requiring the given
// role. Roles match exactly: ADMIN-only routes admit ADMIN and nobody else,
// with no hierarchy between ADMIN, STAFF and CUSTOMER.
func Authorize(p domain.Principal, required domain.Role, area Area) Decision {
	if p.IsAnonymous() {
		return Decision{Redirect: loginPath(area)}
	}

	if p.Role != required {
		return Decision{Redirect: AccountHomePath}
	}

	return allow
}

func loginPath(area Area) string {
	if area == AreaAdmin {
		return AdminLoginPath
	}
	return CustomerLoginPath
}
