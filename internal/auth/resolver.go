package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"planhub/internal/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Principal is the authenticated identity derived from a valid session.
// Callers that need profile data perform a separate lookup keyed by UserID.
type Principal struct {
	UserID    uuid.UUID
	SessionID uuid.UUID
}

// SessionLookup is the single read the resolver needs from the persistence
// layer. Implementations return (nil, nil) when no session matches the
// token and a non-nil error only for store failures.
type SessionLookup interface {
	FindByToken(ctx context.Context, token string) (*entity.Session, error)
}

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Resolver is the one authority deciding whether a request carries a valid
// session. Route handlers must not trust any caller-supplied identity that
// did not come out of it.
type Resolver interface {
	Resolve(ctx context.Context, r *http.Request) (Principal, error)
}

// StoreResolver validates session tokens against the authoritative store.
// It performs exactly one store read per call, never mutates session
// records, and never caches results, so revocation takes effect on the
// next call.
type StoreResolver struct {
	sessions SessionLookup
	clock    Clock
	log      logrus.FieldLogger
}

func NewStoreResolver(sessions SessionLookup, clock Clock, log logrus.FieldLogger) *StoreResolver {
	if clock == nil {
		clock = systemClock{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &StoreResolver{
		sessions: sessions,
		clock:    clock,
		log:      log,
	}
}

func (r *StoreResolver) Resolve(ctx context.Context, req *http.Request) (Principal, error) {
	token, ok := TokenFromRequest(req)
	if !ok {
		return Principal{}, ErrUnauthenticated
	}

	session, err := r.sessions.FindByToken(ctx, token)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if session == nil {
		r.log.WithField("reason", "token_not_found").Debug("session rejected")
		return Principal{}, ErrUnauthenticated
	}
	if r.clock.Now().After(session.ExpiresAt) {
		r.log.WithFields(logrus.Fields{
			"reason":     "expired",
			"session_id": session.ID,
		}).Debug("session rejected")
		return Principal{}, ErrUnauthenticated
	}

	return Principal{UserID: session.UserID, SessionID: session.ID}, nil
}
