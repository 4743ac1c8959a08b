package secure_test

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuicr/scaffold/core/authn"
	"github.com/tuicr/scaffold/core/captcha"
	"github.com/tuicr/scaffold/core/cookie"
	"github.com/tuicr/scaffold/core/handler"
	"github.com/tuicr/scaffold/core/response"
	"github.com/tuicr/scaffold/core/session"
	"github.com/tuicr/scaffold/core/sessiontransport"
	"github.com/tuicr/scaffold/middleware"
	"github.com/tuicr/scaffold/secure"
)

const captchaAnswer = "1234"

// countingStore counts credential lookups so tests can prove a failed
// challenge never reaches the store.
type countingStore struct {
	inner   authn.CredentialStore
	lookups int
}

func (s *countingStore) Lookup(ctx context.Context, username string) (authn.Credentials, error) {
	s.lookups++
	return s.inner.Lookup(ctx, username)
}

type testApp struct {
	server  *httptest.Server
	client  *http.Client
	creds   *countingStore
	captcha *captcha.Memory
}

type appOption func(*appConfig)

type appConfig struct {
	ttl           time.Duration
	touch         time.Duration
	maxSessions   int
	preventsLogin bool
}

func withTTL(ttl time.Duration) appOption {
	return func(c *appConfig) { c.ttl = ttl }
}

func withTouchInterval(d time.Duration) appOption {
	return func(c *appConfig) { c.touch = d }
}

func withSessionLimit(maxSessions int, preventsLogin bool) appOption {
	return func(c *appConfig) {
		c.maxSessions = maxSessions
		c.preventsLogin = preventsLogin
	}
}

func defaultConfig() secure.Config {
	return secure.Config{
		LoginPage:          "/login",
		LoginProcessingURL: "/login/process",
		LoginSuccessURL:    "/",
		LogoutURL:          "/logout",
		AccessDeniedURL:    "/access-denied",
		ReasonParam:        "param.error",
		AdminRole:          "ADMIN",
		AdminPathPrefix:    "/admin",
		IgnorePaths:        []string{"/static/**", "/favicon.ico"},
	}
}

func newTestApp(t *testing.T, opts ...appOption) *testApp {
	t.Helper()

	ac := appConfig{ttl: time.Hour, touch: time.Minute, maxSessions: 1, preventsLogin: false}
	for _, opt := range opts {
		opt(&ac)
	}

	store := session.NewMemoryStore()
	manager := session.NewManager(store, ac.ttl, ac.touch)
	registry := session.NewRegistry(ac.maxSessions, ac.preventsLogin, func(ctx context.Context, id uuid.UUID) error {
		return manager.Delete(ctx, id)
	})

	cookieMgr, err := cookie.New([]string{"0123456789abcdef0123456789abcdef"})
	require.NoError(t, err)
	transport := sessiontransport.NewCookie(manager, cookieMgr, "sid")

	captchaReg := captcha.NewMemory(time.Minute)

	memCreds := authn.NewMemoryStore()
	require.NoError(t, memCreds.Seed("alice", "s3cret", "USER"))
	require.NoError(t, memCreds.Seed("bob", "hunter2", "USER", "ADMIN"))
	creds := &countingStore{inner: memCreds}

	cfg := defaultConfig()

	endpoint := func(ctx handler.Context) handler.Response {
		switch ctx.Request().URL.Path {
		case "/login":
			// A fresh challenge accompanies every render of the form.
			sess := middleware.MustGetSession(ctx)
			captchaReg.Issue(sess.ID.String(), captchaAnswer)
			return response.String(http.StatusOK, "login form")
		case "/static/app.css":
			return response.String(http.StatusOK, "css")
		case "/access-denied":
			return response.String(http.StatusForbidden, "access denied")
		default:
			return response.String(http.StatusOK, "page %s", ctx.Request().URL.Path)
		}
	}

	h, err := secure.New(cfg, secure.Deps{
		Transport:   transport,
		Captcha:     captchaReg,
		Credentials: creds,
		Registry:    registry,
	}, endpoint)
	require.NoError(t, err)

	server := httptest.NewServer(h)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return &testApp{server: server, client: client, creds: creds, captcha: captchaReg}
}

// secondBrowser returns a client with its own cookie jar against the same
// server, simulating a login from another device.
func (a *testApp) secondBrowser(t *testing.T) *testApp {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return &testApp{server: a.server, client: client, creds: a.creds, captcha: a.captcha}
}

func (a *testApp) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := a.client.Get(a.server.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp
}

func (a *testApp) postForm(t *testing.T, path string, form url.Values) *http.Response {
	t.Helper()
	resp, err := a.client.Post(a.server.URL+path, "application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp
}

// csrfToken reads the double-submit token from the client's cookie jar.
func (a *testApp) csrfToken(t *testing.T) string {
	t.Helper()
	u, err := url.Parse(a.server.URL)
	require.NoError(t, err)
	for _, c := range a.client.Jar.Cookies(u) {
		if c.Name == "csrf_token" {
			return c.Value
		}
	}
	t.Fatal("csrf cookie not set")
	return ""
}

// login renders the form first so a challenge and CSRF token are issued,
// then submits.
func (a *testApp) login(t *testing.T, username, password, answer string) *http.Response {
	t.Helper()
	a.get(t, "/login")
	return a.postForm(t, "/login/process", url.Values{
		"username": {username},
		"password": {password},
		"captcha":  {answer},
		"_csrf":    {a.csrfToken(t)},
	})
}

// loginRemembered submits the login form with the remember-me box checked.
func (a *testApp) loginRemembered(t *testing.T, username, password, answer string) *http.Response {
	t.Helper()
	a.get(t, "/login")
	return a.postForm(t, "/login/process", url.Values{
		"username":    {username},
		"password":    {password},
		"captcha":     {answer},
		"remember-me": {"on"},
		"_csrf":       {a.csrfToken(t)},
	})
}

func TestPipeline(t *testing.T) {
	t.Parallel()

	t.Run("anonymous request redirects to login", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t)

		resp := app.get(t, "/dashboard")
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
	})

	t.Run("successful login reaches protected page", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t)

		resp := app.login(t, "alice", "s3cret", captchaAnswer)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/", resp.Header.Get("Location"))

		resp = app.get(t, "/dashboard")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("wrong password redirects with bad_credentials", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t)

		resp := app.login(t, "alice", "wrong", captchaAnswer)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login?param.error=bad_credentials", resp.Header.Get("Location"))

		resp = app.get(t, "/dashboard")
		assert.Equal(t, http.StatusFound, resp.StatusCode)
	})

	t.Run("wrong captcha never consults the credential store", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t)

		resp := app.login(t, "alice", "s3cret", "9999")
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login?param.error=bad_captcha", resp.Header.Get("Location"))
		assert.Zero(t, app.creds.lookups)
	})

	t.Run("role rule blocks non-admin and admits admin", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t)

		app.login(t, "alice", "s3cret", captchaAnswer)
		resp := app.get(t, "/admin/users")
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/access-denied", resp.Header.Get("Location"))

		admin := newTestApp(t)
		admin.login(t, "bob", "hunter2", captchaAnswer)
		resp = admin.get(t, "/admin/users")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("logout invalidates the session", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t)

		app.login(t, "alice", "s3cret", captchaAnswer)
		resp := app.get(t, "/logout")
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))

		resp = app.get(t, "/dashboard")
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))

		// A second logout lands on the same page without error.
		resp = app.get(t, "/logout")
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
	})

	t.Run("expired session redirects with expired reason", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t, withTTL(100*time.Millisecond))

		app.login(t, "alice", "s3cret", captchaAnswer)
		time.Sleep(150 * time.Millisecond)

		resp := app.get(t, "/dashboard")
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login?param.error=expired", resp.Header.Get("Location"))
	})

	t.Run("cross-site login post is rejected", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t)

		// A forged POST carries the session cookie but cannot echo the
		// CSRF token, which lives in a cookie the attacker cannot read.
		app.get(t, "/login")
		resp := app.postForm(t, "/login/process", url.Values{
			"username": {"alice"},
			"password": {"s3cret"},
			"captcha":  {captchaAnswer},
		})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Zero(t, app.creds.lookups)

		resp = app.get(t, "/dashboard")
		assert.Equal(t, http.StatusFound, resp.StatusCode, "the forged post must not log anyone in")
	})

	t.Run("remember-me outlives the idle timeout", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t, withTTL(150*time.Millisecond))

		resp := app.loginRemembered(t, "alice", "s3cret", captchaAnswer)
		require.Equal(t, "/", resp.Header.Get("Location"))

		time.Sleep(200 * time.Millisecond)

		resp = app.get(t, "/dashboard")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("activity keeps the session counted against the limit", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t, withTTL(250*time.Millisecond), withTouchInterval(0), withSessionLimit(1, true))

		resp := app.login(t, "alice", "s3cret", captchaAnswer)
		require.Equal(t, "/", resp.Header.Get("Location"))

		// Activity extends the session in the store; the limit accounting
		// must follow, or a second login would slip past max-of-1 once the
		// login-time expiry has passed.
		time.Sleep(150 * time.Millisecond)
		resp = app.get(t, "/dashboard")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		time.Sleep(150 * time.Millisecond)

		second := app.secondBrowser(t)
		resp = second.login(t, "alice", "s3cret", captchaAnswer)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login?param.error=session_limit", resp.Header.Get("Location"))
	})

	t.Run("re-login from the same browser is not limited", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t, withSessionLimit(1, true))

		resp := app.login(t, "alice", "s3cret", captchaAnswer)
		require.Equal(t, "/", resp.Header.Get("Location"))

		// The session keeps its ID across a re-login, so it must not be
		// counted against its own slot.
		resp = app.login(t, "alice", "s3cret", captchaAnswer)
		assert.Equal(t, "/", resp.Header.Get("Location"))

		resp = app.get(t, "/dashboard")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("session limit rejects second login when configured", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t, withSessionLimit(1, true))

		resp := app.login(t, "alice", "s3cret", captchaAnswer)
		require.Equal(t, "/", resp.Header.Get("Location"))

		second := app.secondBrowser(t)
		resp = second.login(t, "alice", "s3cret", captchaAnswer)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login?param.error=session_limit", resp.Header.Get("Location"))
	})

	t.Run("session limit evicts oldest by default", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t, withSessionLimit(1, false))

		app.login(t, "alice", "s3cret", captchaAnswer)

		second := app.secondBrowser(t)
		resp := second.login(t, "alice", "s3cret", captchaAnswer)
		assert.Equal(t, "/", resp.Header.Get("Location"))

		// The first browser's session was evicted from the store.
		resp = app.get(t, "/dashboard")
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login?param.error=expired", resp.Header.Get("Location"))

		resp = second.get(t, "/dashboard")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("ignored path bypasses the chain", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t)

		resp := app.get(t, "/static/app.css")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, resp.Cookies(), "bypassed requests get no session cookie")
	})

	t.Run("missing collaborator fails construction", func(t *testing.T) {
		t.Parallel()

		_, err := secure.New(defaultConfig(), secure.Deps{}, nil)
		assert.ErrorIs(t, err, secure.ErrMissingTransport)
	})
}
