package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"vet-clinic/internal/platform/logger"
	"vet-clinic/internal/ports/auth"
	"vet-clinic/internal/ports/session"
)

type ctxKey string

const sessionKey ctxKey = "session"

// SessionCookie es el nombre de la cookie que lleva el id de sesión.
const SessionCookie = "vetclinic_session"

type SessionOptions struct {
	Store  session.Store
	TTL    time.Duration
	Secure bool
	Log    logger.Logger
}

// SessionContext carga la sesión del cookie (o crea una vacía) y la deja en el
// contexto. Los cambios se persisten antes de escribir la cabecera de respuesta.
func SessionContext(opts SessionOptions) func(http.Handler) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.Discard()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := loadSession(r, opts.Store, log)

			sw := &sessionWriter{ResponseWriter: w, r: r, s: s, opts: opts, log: log}
			ctx := context.WithValue(r.Context(), sessionKey, s)

			next.ServeHTTP(sw, r.WithContext(ctx))

			// handler sin cuerpo ni cabecera explícita
			sw.commit()
		})
	}
}

func loadSession(r *http.Request, store session.Store, log logger.Logger) *session.Session {
	c, err := r.Cookie(SessionCookie)
	if err != nil || strings.TrimSpace(c.Value) == "" {
		return session.New()
	}

	data, err := store.Load(r.Context(), c.Value)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			log.Error("session load failed", logger.Fields{"err": err})
		}
		return session.New()
	}
	return session.Restore(c.Value, data)
}

// GetSession devuelve la sesión del request. Sin SessionContext no hay sesión.
func GetSession(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(sessionKey).(*session.Session)
	return s, ok && s != nil
}

// CurrentIdentity es la identidad de la sesión o un anónimo.
func CurrentIdentity(ctx context.Context) auth.Identity {
	s, ok := GetSession(ctx)
	if !ok {
		return auth.Anonymous()
	}
	return s.Identity()
}

type sessionWriter struct {
	http.ResponseWriter
	r    *http.Request
	s    *session.Session
	opts SessionOptions
	log  logger.Logger

	committed bool
}

func (w *sessionWriter) WriteHeader(code int) {
	w.commit()
	w.ResponseWriter.WriteHeader(code)
}

func (w *sessionWriter) Write(b []byte) (int, error) {
	w.commit()
	return w.ResponseWriter.Write(b)
}

func (w *sessionWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func (w *sessionWriter) commit() {
	if w.committed {
		return
	}
	w.committed = true

	ctx := w.r.Context()
	if old := w.s.ReplacedID(); old != "" {
		if err := w.opts.Store.Destroy(ctx, old); err != nil {
			w.log.Warn("session destroy failed", logger.Fields{"err": err})
		}
	}

	if w.s.Dirty() {
		var err error
		if w.s.Data().IsZero() {
			err = w.opts.Store.Destroy(ctx, w.s.ID())
		} else {
			err = w.opts.Store.Save(ctx, w.s.ID(), w.s.Data(), w.opts.TTL)
		}
		if err != nil {
			w.log.Error("session save failed", logger.Fields{"err": err})
			return
		}
	}

	if w.s.NeedsCookie() {
		http.SetCookie(w.ResponseWriter, &http.Cookie{
			Name:     SessionCookie,
			Value:    w.s.ID(),
			Path:     "/",
			HttpOnly: true,
			Secure:   w.opts.Secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
