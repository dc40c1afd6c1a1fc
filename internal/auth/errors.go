package auth

import "errors"

var (
	// ErrUnauthenticated covers every rejection a caller may see: missing
	// cookie, unknown token, and expired session are deliberately
	// indistinguishable so a rejected response cannot be used as a
	// token-enumeration oracle.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrStoreUnavailable signals a session store connectivity failure. It
	// must never be collapsed into ErrUnauthenticated: callers map it to a
	// 5xx response, not to "not logged in".
	ErrStoreUnavailable = errors.New("session store unavailable")
)
