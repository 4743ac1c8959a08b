// Command server runs a demo application behind the security pipeline:
// form login with CAPTCHA, cookie sessions with per-user limits, and URL
// access rules. Credentials and sessions live in memory by default; set
// PG_CONN_URL and REDIS_URL to back them with PostgreSQL and Redis.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tuicr/scaffold/core/authn"
	"github.com/tuicr/scaffold/core/captcha"
	"github.com/tuicr/scaffold/core/config"
	"github.com/tuicr/scaffold/core/cookie"
	"github.com/tuicr/scaffold/core/handler"
	"github.com/tuicr/scaffold/core/healthcheck"
	"github.com/tuicr/scaffold/core/keystore"
	"github.com/tuicr/scaffold/core/logger"
	"github.com/tuicr/scaffold/core/response"
	"github.com/tuicr/scaffold/core/server"
	"github.com/tuicr/scaffold/core/session"
	"github.com/tuicr/scaffold/core/sessiontransport"
	"github.com/tuicr/scaffold/integration/database/pg"
	"github.com/tuicr/scaffold/integration/database/redis"
	"github.com/tuicr/scaffold/middleware"
	"github.com/tuicr/scaffold/secure"
)

type appConfig struct {
	Server   server.Config
	Logger   logger.Config
	Cookie   cookie.Config
	Session  session.Config
	Secure   secure.Config
	Keystore keystore.Config

	SessionCookie string `env:"SESSION_COOKIE_NAME" envDefault:"sid"`

	// Dev-only in-memory admin account, used when PG_CONN_URL is unset.
	AdminUsername string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"admin"`

	PostgresURL string `env:"PG_CONN_URL"`
	RedisURL    string `env:"REDIS_URL"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.NewFromConfig(cfg.Logger)

	var checks []func(context.Context) error

	store, err := newSessionStore(ctx, cfg, &checks)
	if err != nil {
		return err
	}
	manager := session.NewFromConfig(store, cfg.Session)
	registry := session.NewRegistryFromConfig(cfg.Session, func(ctx context.Context, id uuid.UUID) error {
		return manager.Delete(ctx, id)
	})

	cookieMgr, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		return fmt.Errorf("cookie manager: %w", err)
	}
	transport := sessiontransport.NewCookie(manager, cookieMgr, cfg.SessionCookie)

	captchaReg := captcha.NewMemory(5 * time.Minute)

	creds, err := newCredentialStore(ctx, cfg, log, &checks)
	if err != nil {
		return err
	}

	var decrypter authn.Decrypter
	if cfg.Keystore.Enabled() {
		// An unreadable or corrupt keystore is fatal, matching the
		// fail-fast contract for encrypted configuration.
		dec, err := keystore.Load(cfg.Keystore)
		if err != nil {
			return fmt.Errorf("keystore: %w", err)
		}
		decrypter = dec
	}

	h, err := secure.New(cfg.Secure, secure.Deps{
		Transport:   transport,
		Captcha:     captchaReg,
		Credentials: creds,
		Decrypter:   decrypter,
		Registry:    registry,
		Logger:      log,
	}, endpoint(cfg, captchaReg, healthcheck.Handler(log, checks...)))
	if err != nil {
		return fmt.Errorf("security pipeline: %w", err)
	}

	srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(log))
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}

	log.Info("starting server", "addr", cfg.Server.Addr)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(srv.Run(ctx, h))
	g.Go(func() error {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				captchaReg.Cleanup()
			}
		}
	})
	return g.Wait()
}

func newSessionStore(ctx context.Context, cfg appConfig, checks *[]func(context.Context) error) (session.Store, error) {
	if cfg.RedisURL == "" {
		return session.NewMemoryStore(), nil
	}

	var rcfg redis.Config
	config.MustLoad(&rcfg)
	client, err := redis.Connect(ctx, rcfg)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	*checks = append(*checks, redis.Healthcheck(client))
	return redis.NewSessionStore(client), nil
}

func newCredentialStore(ctx context.Context, cfg appConfig, log *slog.Logger, checks *[]func(context.Context) error) (authn.CredentialStore, error) {
	if cfg.PostgresURL == "" {
		log.Warn("using in-memory credentials, do not run this in production",
			"username", cfg.AdminUsername)
		mem := authn.NewMemoryStore()
		if err := mem.Seed(cfg.AdminUsername, cfg.AdminPassword, "ADMIN", "USER"); err != nil {
			return nil, fmt.Errorf("seed admin user: %w", err)
		}
		return mem, nil
	}

	var pcfg pg.Config
	config.MustLoad(&pcfg)
	pool, err := pg.Connect(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	*checks = append(*checks, pg.Healthcheck(pool))
	return pg.NewCredentialStore(pool), nil
}

// endpoint serves the demo pages behind the pipeline. Anything the filters
// do not intercept lands here, including ignore-list paths like /health.
func endpoint(cfg appConfig, captchaReg *captcha.Memory, health handler.HandlerFunc) handler.HandlerFunc {
	return func(ctx handler.Context) handler.Response {
		switch ctx.Request().URL.Path {
		case "/health":
			return health(ctx)
		case cfg.Secure.LoginPage:
			return loginPage(ctx, cfg, captchaReg)
		case cfg.Secure.AccessDeniedURL:
			return response.HTML(http.StatusForbidden, "<h1>Access denied</h1>")
		case "/":
			sess := middleware.MustGetSession(ctx)
			return response.HTML(http.StatusOK,
				fmt.Sprintf("<h1>Welcome, %s</h1><a href=%q>Logout</a>",
					sess.Principal.Username, cfg.Secure.LogoutURL))
		case "/admin":
			return response.HTML(http.StatusOK, "<h1>Admin console</h1>")
		default:
			return response.Status(http.StatusNotFound)
		}
	}
}

func loginPage(ctx handler.Context, cfg appConfig, captchaReg *captcha.Memory) handler.Response {
	sess := middleware.MustGetSession(ctx)

	answer, err := captcha.NewAnswer(4)
	if err != nil {
		return response.Error(err)
	}
	captchaReg.Issue(sess.ID.String(), answer)

	var notice string
	switch ctx.Request().URL.Query().Get(cfg.Secure.ReasonParam) {
	case middleware.ReasonBadCredentials:
		notice = "<p>Invalid username or password.</p>"
	case middleware.ReasonBadCaptcha:
		notice = "<p>Wrong verification code.</p>"
	case middleware.ReasonExpired:
		notice = "<p>Your session expired, please sign in again.</p>"
	case middleware.ReasonSessionLimit:
		notice = "<p>This account is already signed in elsewhere.</p>"
	}

	csrf, _ := middleware.GetCSRFToken(ctx)

	// The code is rendered in the page because this demo has no image
	// renderer; a real deployment would draw it.
	form := fmt.Sprintf(`%s<form method="post" action=%q>
	<input type="hidden" name=%q value=%q>
	<input name="username" placeholder="username">
	<input name="password" type="password" placeholder="password">
	<p>Verification code: <b>%s</b></p>
	<input name="captcha" placeholder="code">
	<label><input type="checkbox" name=%q> Remember me</label>
	<button type="submit">Sign in</button>
</form>`, notice, cfg.Secure.LoginProcessingURL,
		cfg.Secure.CSRFField, csrf, answer, cfg.Secure.RememberMeField)

	return response.HTML(http.StatusOK, form)
}
