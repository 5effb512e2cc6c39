package graph

import (
	"context"
	"sync"

	"github.com/labtrack/lims/internal/model"
	"github.com/labtrack/lims/internal/model/types"
)

type viewerKey struct{}

type tokenKey struct{}

type cookieJarKey struct{}

// WithViewer attaches the authenticated user of the request.
func WithViewer(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, viewerKey{}, user)
}

func ViewerFrom(ctx context.Context) *model.User {
	user, _ := ctx.Value(viewerKey{}).(*model.User)
	return user
}

// WithToken attaches the raw session token the request carried, if any.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func TokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// CookieJar records the session cookie changes requested by resolvers. The
// transport applies them to the response once execution finishes.
type CookieJar struct {
	mu    sync.Mutex
	token *types.IssuedToken
	clear bool
}

func WithCookieJar(ctx context.Context, jar *CookieJar) context.Context {
	return context.WithValue(ctx, cookieJarKey{}, jar)
}

func CookieJarFrom(ctx context.Context) *CookieJar {
	jar, _ := ctx.Value(cookieJarKey{}).(*CookieJar)
	return jar
}

func (j *CookieJar) SetToken(token *types.IssuedToken) {
	if j == nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.token = token
	j.clear = false
}

func (j *CookieJar) Clear() {
	if j == nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.token = nil
	j.clear = true
}

// Pending returns the last recorded change: either a token to set or a request
// to clear the cookie. Both are zero when nothing changed.
func (j *CookieJar) Pending() (token *types.IssuedToken, clear bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.token, j.clear
}
