package http

import (
	"bufio"
	"database/sql"
	"encoding/gob"
	"net"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/gin-gonic/gin"

	"github.com/eren/sozluk/internal/config"
)

// Session data keys
const (
	sessionKeyFlashes = "flashes"
	sessionKeyTheme   = "theme"
)

func init() {
	// Flash messages are stored as a slice inside the gob-encoded session map.
	gob.Register([]string{})
}

// SessionManager wraps scs.SessionManager with flash-message and theme
// helpers. Sessions carry no identity; they exist for flash messaging and
// the theme preference only.
type SessionManager struct {
	*scs.SessionManager
}

// NewSessionManager creates a configured session manager. When sqlDB is
// non-nil (relational backend selected) sessions persist in SQLite;
// otherwise the scs in-memory store is used.
func NewSessionManager(sqlDB *sql.DB, cfg config.Session) (*SessionManager, error) {
	sm := scs.New()

	if sqlDB != nil {
		_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			expiry REAL NOT NULL
		);
		CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
		if err != nil {
			return nil, err
		}
		sm.Store = sqlite3store.New(sqlDB)
	}

	sm.Lifetime = 24 * time.Hour
	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"

	return &SessionManager{SessionManager: sm}, nil
}

// Flash queues a message for the next rendered page.
func (sm *SessionManager) Flash(c *gin.Context, message string) {
	ctx := c.Request.Context()
	flashes, _ := sm.Get(ctx, sessionKeyFlashes).([]string)
	sm.Put(ctx, sessionKeyFlashes, append(flashes, message))
}

// PopFlashes drains and returns the queued messages.
func (sm *SessionManager) PopFlashes(c *gin.Context) []string {
	flashes, _ := sm.Pop(c.Request.Context(), sessionKeyFlashes).([]string)
	return flashes
}

// Theme returns the visitor's theme choice, falling back to the default for
// unset or retired themes.
func (sm *SessionManager) Theme(c *gin.Context) string {
	theme := sm.GetString(c.Request.Context(), sessionKeyTheme)
	if _, ok := Themes[theme]; !ok {
		return DefaultTheme
	}
	return theme
}

// SetTheme stores the visitor's theme choice.
func (sm *SessionManager) SetTheme(c *gin.Context, theme string) {
	sm.Put(c.Request.Context(), sessionKeyTheme, theme)
}

// sessionResponseWriter wraps http.ResponseWriter to intercept WriteHeader
// and write session cookies before headers are sent.
type sessionResponseWriter struct {
	gin.ResponseWriter
	sm            *SessionManager
	request       *http.Request
	wroteHeader   bool
	cookieWritten bool
}

func (w *sessionResponseWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		w.writeSessionCookie()
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *sessionResponseWriter) WriteHeaderNow() {
	if !w.wroteHeader {
		w.wroteHeader = true
		w.writeSessionCookie()
	}
	w.ResponseWriter.WriteHeaderNow()
}

func (w *sessionResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.wroteHeader = true
		w.writeSessionCookie()
	}
	return w.ResponseWriter.Write(b)
}

func (w *sessionResponseWriter) writeSessionCookie() {
	if w.cookieWritten {
		return
	}
	w.cookieWritten = true

	ctx := w.request.Context()
	switch w.sm.Status(ctx) {
	case scs.Modified:
		token, expiry, err := w.sm.Commit(ctx)
		if err != nil {
			return
		}
		w.sm.WriteSessionCookie(ctx, w.ResponseWriter, token, expiry)
	case scs.Destroyed:
		w.sm.WriteSessionCookie(ctx, w.ResponseWriter, "", time.Time{})
	}
}

func (w *sessionResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	return w.ResponseWriter.Hijack()
}

// SessionLoadSave returns a Gin middleware that wraps the session manager's
// LoadAndSave functionality. This must be used before any session operations.
func (sm *SessionManager) SessionLoadSave() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		cookie, err := c.Request.Cookie(sm.Cookie.Name)
		if err == nil {
			token = cookie.Value
		}

		ctx, err := sm.Load(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Request = c.Request.WithContext(ctx)

		srw := &sessionResponseWriter{
			ResponseWriter: c.Writer,
			sm:             sm,
			request:        c.Request,
		}
		c.Writer = srw

		c.Next()

		// Ensure the session cookie is written even if no response body
		if !srw.wroteHeader {
			srw.writeSessionCookie()
		}
	}
}
