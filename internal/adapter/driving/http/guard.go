package httphandler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/ericfisherdev/wizeportal/internal/config"
)

// Well-known page paths used by the guard.
const (
	LoginPath = "/login"
	HomePath  = "/home"
)

// RouteClass is the guard's view of a path.
type RouteClass int

const (
	RouteUnclassified RouteClass = iota
	RoutePublic
	RouteProtected
)

// String returns the class name for logs.
func (c RouteClass) String() string {
	switch c {
	case RoutePublic:
		return "public"
	case RouteProtected:
		return "protected"
	default:
		return "unclassified"
	}
}

// RouteTable lists which pages need a session. A listed prefix covers the
// path itself and everything below it ("/invoices" covers "/invoices/42").
// "/" only ever matches itself.
type RouteTable struct {
	Public           []string
	Protected        []string
	AllowWithSession []string
	RootMode         config.RootRoute
}

// DefaultRouteTable returns the portal's page classification.
func DefaultRouteTable(mode config.RootRoute) RouteTable {
	return RouteTable{
		Public: []string{
			"/",
			LoginPath,
			"/signup",
			"/forgot-password",
			"/confirm-account",
			"/google-callback",
		},
		Protected: []string{
			HomePath,
			"/dashboard",
			"/invoices",
			"/cost-center",
			"/expense-type",
			"/api-key",
			"/invoice-generator",
			"/logout",
		},
		AllowWithSession: []string{"/confirm-account"},
		RootMode:         mode,
	}
}

// Classify returns the class of path. Protected wins when a path matches
// both lists.
func (t RouteTable) Classify(path string) RouteClass {
	switch {
	case matchesAny(path, t.Protected):
		return RouteProtected
	case matchesAny(path, t.Public):
		return RoutePublic
	default:
		return RouteUnclassified
	}
}

func matchesAny(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if matchesPrefix(path, p) {
			return true
		}
	}
	return false
}

func matchesPrefix(path, prefix string) bool {
	if path == prefix {
		return true
	}
	if prefix == "/" {
		return false
	}
	return strings.HasPrefix(path, strings.TrimSuffix(prefix, "/")+"/")
}

// Action is what the guard does with a request.
type Action int

const (
	Allow Action = iota
	RedirectToLogin
	RedirectToHome
)

// Decision is the guard's verdict. Location is set for redirects.
type Decision struct {
	Action   Action
	Location string
}

// Decide classifies target (a path with optional "?query") for a request
// with or without a session cookie.
func (t RouteTable) Decide(hasSession bool, target string) Decision {
	path := target
	if i := strings.IndexByte(target, '?'); i >= 0 {
		path = target[:i]
	}

	if path == "/" && t.RootMode != config.RootRoutePublic {
		if hasSession {
			return Decision{Action: RedirectToHome, Location: HomePath}
		}
		return Decision{Action: RedirectToLogin, Location: LoginPath}
	}

	switch t.Classify(path) {
	case RouteProtected:
		if hasSession {
			return Decision{Action: Allow}
		}
		return Decision{Action: RedirectToLogin, Location: LoginPath + "?next=" + url.QueryEscape(target)}
	case RoutePublic:
		if hasSession && !matchesAny(path, t.AllowWithSession) {
			return Decision{Action: RedirectToHome, Location: HomePath}
		}
		return Decision{Action: Allow}
	default:
		return Decision{Action: Allow}
	}
}

// GuardMiddleware enforces table before next runs. has reports whether the
// request carries a session; it must not do network I/O.
func GuardMiddleware(table RouteTable, has func(*http.Request) bool, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		target := r.URL.Path
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}

		d := table.Decide(has(r), target)
		if d.Action == Allow {
			next.ServeHTTP(w, r)
			return
		}
		Redirect(w, r, d.Location)
	})
}

// Redirect sends the browser to location. HTMX requests get an HX-Redirect
// header so the whole page navigates; others get 303 See Other.
func Redirect(w http.ResponseWriter, r *http.Request, location string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", location)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// SafeNext returns next when it is a path on this site and fallback
// otherwise.
func SafeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return fallback
	}
	return next
}
