package middleware

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/example/storefront/internal/auth"
	"github.com/example/storefront/internal/i18n"
	"github.com/example/storefront/internal/metrics"
	"github.com/example/storefront/internal/session"
)

const CookieName = "session_id"

type contextKey string

const SessionContextKey contextKey = "session"

// Sessions attaches the visitor's session to every request. The cookie
// carries a signed token; a missing, forged or unknown token starts a fresh
// session and a new cookie is set. A supported ?lang= query value updates
// the session language.
func Sessions(store *session.Store, signer *auth.TokenSigner, secure bool, log *logrus.Entry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if cookie, err := r.Cookie(CookieName); err == nil {
				if sid, err := signer.Verify(cookie.Value); err == nil {
					id = sid
				}
			}

			sess, created := store.GetOrCreate(id)
			if created {
				token, err := signer.Sign(sess.ID)
				if err != nil {
					log.WithError(err).Error("failed to sign session token")
					respondError(w, "internal server error", http.StatusInternalServerError)
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     CookieName,
					Value:    token,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
				metrics.ActiveSessions.Set(float64(store.Len()))
			}

			if lang, ok := i18n.Parse(r.URL.Query().Get("lang")); ok {
				sess.Update(func(st *session.State) { st.Lang = lang })
			}

			ctx := context.WithValue(r.Context(), SessionContextKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext retrieves the session attached by Sessions
func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(SessionContextKey).(*session.Session)
	return sess, ok
}
