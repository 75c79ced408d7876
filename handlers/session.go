// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"

	"github.com/danielhkuo/namecloud/middleware"
	"github.com/danielhkuo/namecloud/session"
)

// currentUser returns the signed-in username, or "" for anonymous requests.
// Unknown and expired sessions count as anonymous; only store failures are
// errors.
func currentUser(r *http.Request, store session.Store) (string, error) {
	id := middleware.SessionID(r)
	if id == "" {
		return "", nil
	}

	sess, err := store.Get(r.Context(), id)
	if errors.Is(err, session.ErrNotFound) || errors.Is(err, session.ErrExpired) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return sess.Username, nil
}
