package restrepo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/sync/singleflight"

	"petclinic-client/internal/domain"
	"petclinic-client/pkg/logger"
)

// RefreshFunc exchanges a refresh token for a new token pair.
type RefreshFunc func(ctx context.Context, refreshToken string) (*domain.AuthTokens, error)

// AuthRetrier attaches the bearer token to every request and owns the
// replay contract for expired sessions:
//
//  1. send the request with the stored access token;
//  2. on 401, refresh once using the stored refresh token;
//  3. replay the original request exactly once with the new token;
//  4. if the refresh endpoint rejects the refresh token (any 4xx) or the
//     replay is still 401, clear the session, run the logout hook and
//     return domain.ErrSessionExpired.
//
// Any other refresh failure (cancellation, timeout, transport or 5xx)
// leaves the session alone and is returned as is.
//
// Requests without a stored session, or whose body cannot be rewound, get
// the 401 back untouched.
type AuthRetrier struct {
	next     Doer
	store    domain.SessionStore
	refresh  RefreshFunc
	onLogout func()
	group    singleflight.Group
}

func NewAuthRetrier(next Doer, store domain.SessionStore, refresh RefreshFunc, onLogout func()) *AuthRetrier {
	if next == nil {
		next = http.DefaultClient
	}
	return &AuthRetrier{
		next:     next,
		store:    store,
		refresh:  refresh,
		onLogout: onLogout,
	}
}

func (a *AuthRetrier) Do(req *http.Request) (*http.Response, error) {
	tokens, err := a.store.Load()
	if err != nil && !errors.Is(err, domain.ErrNotLoggedIn) {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var sentToken string
	if tokens != nil {
		sentToken = tokens.AccessToken
	}

	resp, err := a.send(req, sentToken)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}
	if tokens == nil || tokens.RefreshToken == "" || !replayable(req) {
		return resp, nil
	}
	drain(resp)

	l := logger.WithContext(req.Context())
	l.Debug().Str("path", req.URL.Path).Msg("Access token rejected, refreshing")

	fresh, err := a.refreshed(req.Context(), sentToken, tokens.RefreshToken)
	if err != nil {
		if !rejected(err) {
			l.Debug().Err(err).Msg("Token refresh did not complete, keeping session")
			return nil, fmt.Errorf("refresh session: %w", err)
		}
		l.Warn().Err(err).Msg("Refresh token rejected, forcing logout")
		a.forceLogout()
		return nil, fmt.Errorf("%w: %v", domain.ErrSessionExpired, err)
	}

	replay, err := rewind(req)
	if err != nil {
		return nil, err
	}
	resp, err = a.send(replay, fresh.AccessToken)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		drain(resp)
		l.Warn().Str("path", req.URL.Path).Msg("Replay rejected after refresh, forcing logout")
		a.forceLogout()
		return nil, domain.ErrSessionExpired
	}
	return resp, nil
}

// refreshed returns a usable token pair. Concurrent callers holding the
// same refresh token share one refresh call, and a caller whose access
// token was already replaced by another goroutine reuses the stored one.
// The shared call outlives any one caller's context; each caller stops
// waiting when its own context ends.
func (a *AuthRetrier) refreshed(ctx context.Context, sentToken, refreshToken string) (*domain.AuthTokens, error) {
	shared := context.WithoutCancel(ctx)
	ch := a.group.DoChan(refreshToken, func() (interface{}, error) {
		// Checked inside the group so a caller arriving just after a
		// finished refresh does not spend the rotated refresh token again.
		if current, err := a.store.Load(); err == nil && current.AccessToken != "" && current.AccessToken != sentToken {
			return current, nil
		}
		if a.refresh == nil {
			return nil, errors.New("no refresh handler configured")
		}
		fresh, err := a.refresh(shared, refreshToken)
		if err != nil {
			return nil, err
		}
		if fresh == nil || fresh.AccessToken == "" {
			return nil, errors.New("refresh returned no access token")
		}
		if fresh.RefreshToken == "" {
			fresh.RefreshToken = refreshToken
		}
		if err := a.store.Save(*fresh); err != nil {
			return nil, fmt.Errorf("save session: %w", err)
		}
		return fresh, nil
	})

	select {
	case <-ctx.Done():
		return nil, context.Cause(ctx)
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.AuthTokens), nil
	}
}

// rejected reports whether the refresh endpoint turned the refresh token
// down, as opposed to the call not completing.
func rejected(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500
}

func (a *AuthRetrier) send(req *http.Request, accessToken string) (*http.Response, error) {
	r := req.Clone(req.Context())
	if accessToken != "" {
		r.Header.Set("Authorization", "Bearer "+accessToken)
	}
	return a.next.Do(r)
}

func (a *AuthRetrier) forceLogout() {
	if err := a.store.Clear(); err != nil {
		logger.Error().Err(err).Msg("Failed to clear session")
	}
	if a.onLogout != nil {
		a.onLogout()
	}
}

func replayable(req *http.Request) bool {
	return req.Body == nil || req.Body == http.NoBody || req.GetBody != nil
}

func rewind(req *http.Request) (*http.Request, error) {
	r := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("rewind request body: %w", err)
		}
		r.Body = body
	}
	return r, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	resp.Body.Close()
}
