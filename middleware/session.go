package middleware

import (
	"log"

	"github.com/gin-gonic/gin"

	"gorilla-shop/libs"
)

const (
	sessionCookie   = "session_id"
	sessionCtxKey   = "session"
	sessionMaxAgeIn = 30 * 24 * 60 * 60
)

// SessionMiddleware attaches a server-side session to every request,
// issuing a session cookie on first contact and persisting the session
// after the handler runs (only when it was modified).
func SessionMiddleware(store libs.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(sessionCookie)

		sess, err := libs.OpenSession(c.Request.Context(), store, id)
		if err != nil {
			log.Printf("Failed to load session %s: %v", id, err)
			sess, _ = libs.OpenSession(c.Request.Context(), store, "")
		}

		if sess.ID != id {
			c.SetCookie(sessionCookie, sess.ID, sessionMaxAgeIn, "/", "", false, true)
		}

		c.Set(sessionCtxKey, sess)
		c.Next()

		if err := sess.Save(c.Request.Context()); err != nil {
			log.Printf("Failed to save session %s: %v", sess.ID, err)
		}
	}
}

func GetSession(c *gin.Context) *libs.Session {
	if v, ok := c.Get(sessionCtxKey); ok {
		if sess, ok := v.(*libs.Session); ok {
			return sess
		}
	}
	return nil
}
