package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
)

// contextKeyCSRFToken is where the per-request CSRF token is stashed for
// templates.
const contextKeyCSRFToken = "csrf_token"

// CSRFFieldName is the hidden form field gorilla/csrf expects.
const CSRFFieldName = "gorilla.csrf.Token"

// CSRFMiddleware creates a Gin middleware protecting the mutating form
// endpoints. Safe methods (GET, HEAD, OPTIONS, TRACE) pass through
// unchecked.
func CSRFMiddleware(secret []byte, secure bool) gin.HandlerFunc {
	csrfProtect := csrf.Protect(
		secret,
		csrf.Secure(secure),
		csrf.HttpOnly(true),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.Path("/"),
		csrf.ErrorHandler(http.HandlerFunc(csrfErrorHandler)),
	)

	return func(c *gin.Context) {
		handler := csrfProtect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.Set(contextKeyCSRFToken, csrf.Token(r))
			// Session middleware runs after this, so its context is layered
			// on top of the CSRF request context.
			c.Request = r
			c.Next()
		}))

		handler.ServeHTTP(c.Writer, c.Request)
	}
}

// csrfErrorHandler handles CSRF validation failures by sending the visitor
// back to where they came from.
func csrfErrorHandler(w http.ResponseWriter, r *http.Request) {
	referer := r.Referer()
	if referer == "" {
		referer = "/"
	}
	http.Redirect(w, r, referer, http.StatusSeeOther)
}

// csrfToken returns the token placed in the context by CSRFMiddleware, or ""
// when CSRF protection is disabled.
func csrfToken(c *gin.Context) string {
	return c.GetString(contextKeyCSRFToken)
}
