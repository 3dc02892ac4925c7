package httpapi

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	sessionName    = "canteen-session"
	sessionLoginID = "login_id"
	sessionAdmin   = "admin"
)

// NewSessionStore builds the cookie store holding who is logged in.
func NewSessionStore(key []byte, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore(key)
	store.Options.HttpOnly = true
	store.Options.Secure = secure
	store.Options.SameSite = http.SameSiteLaxMode
	store.Options.Path = "/"
	return store
}

func (h *Handler) session(r *http.Request) *sessions.Session {
	// Get hands back a fresh session when the cookie cannot be decoded.
	session, _ := h.Sessions.Get(r, sessionName)
	return session
}

func (h *Handler) startCustomerSession(w http.ResponseWriter, r *http.Request, loginID string) error {
	session := h.session(r)
	session.Values[sessionLoginID] = loginID
	return session.Save(r, w)
}

func (h *Handler) startAdminSession(w http.ResponseWriter, r *http.Request) error {
	session := h.session(r)
	session.Values[sessionAdmin] = true
	return session.Save(r, w)
}

func (h *Handler) endSession(w http.ResponseWriter, r *http.Request) {
	session := h.session(r)
	delete(session.Values, sessionLoginID)
	delete(session.Values, sessionAdmin)
	session.Options.MaxAge = -1
	session.Save(r, w)
}

func (h *Handler) customerOnly(next func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		loginID, _ := h.session(r).Values[sessionLoginID].(string)
		if loginID == "" {
			http.Error(w, "login required", http.StatusUnauthorized)
			return
		}
		next(w, r, loginID)
	}
}

func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if admin, _ := h.session(r).Values[sessionAdmin].(bool); !admin {
			http.Error(w, "admin login required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
