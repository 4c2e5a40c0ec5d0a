package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	rostermod "github.com/dmitrymomot/rosterkit/modules/roster"
	"github.com/dmitrymomot/rosterkit/pkg/config"
	"github.com/dmitrymomot/rosterkit/pkg/email"
	"github.com/dmitrymomot/rosterkit/pkg/httpserver"
	"github.com/dmitrymomot/rosterkit/pkg/logger"
	"github.com/dmitrymomot/rosterkit/pkg/pg"
	"github.com/dmitrymomot/rosterkit/pkg/redis"
	"github.com/dmitrymomot/rosterkit/pkg/requestid"
	"github.com/dmitrymomot/rosterkit/pkg/session"
	"github.com/dmitrymomot/rosterkit/pkg/tenant"
	authsvc "github.com/dmitrymomot/rosterkit/svc/auth"
	rostersvc "github.com/dmitrymomot/rosterkit/svc/roster"
	tenantsvc "github.com/dmitrymomot/rosterkit/svc/tenant"
)

type appConfig struct {
	AppEnv string `env:"APP_ENV" envDefault:"development"`

	// BaseDomain is the shared suffix tenant subdomains hang off,
	// e.g. ".rosterkit.app". Empty disables subdomain resolution.
	BaseDomain string `env:"BASE_DOMAIN"`

	// EmailDevDir receives outbound emails as files when no Postmark
	// token is configured.
	EmailDevDir string `env:"EMAIL_DEV_DIR" envDefault:"./tmp/emails"`

	HTTP    httpserver.Config
	PG      pg.Config
	Redis   redis.Config
	Session session.Config
	Email   email.Config
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	var log *slog.Logger
	if cfg.AppEnv == "production" {
		log = logger.New(
			logger.WithProduction("rosterkit"),
			logger.WithContextExtractors(requestid.LoggerExtractor()),
		)
	} else {
		log = logger.New(
			logger.WithDevelopment("rosterkit"),
			logger.WithContextExtractors(requestid.LoggerExtractor()),
		)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.ErrorContext(ctx, "server exited with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	pool, err := pg.Connect(ctx, cfg.PG)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, cfg.PG, log); err != nil {
		return err
	}

	redisClient, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer redisClient.Close() //nolint:errcheck

	var sender email.Sender
	if cfg.Email.PostmarkServerToken != "" {
		sender, err = email.NewPostmarkSender(cfg.Email)
		if err != nil {
			return err
		}
	} else {
		sender = email.NewDevSender(cfg.EmailDevDir)
		log.InfoContext(ctx, "no postmark token configured, writing emails to disk",
			slog.String("dir", cfg.EmailDevDir))
	}

	sessions := session.New(session.WithConfig(cfg.Session))

	tenants := tenantsvc.NewService(tenantsvc.NewPGStorage(pool), tenantsvc.WithLogger(log))
	auth := authsvc.NewService(authsvc.NewPGStorage(pool),
		authsvc.WithLogger(log),
		authsvc.WithEmailSender(sender),
	)
	roster := rostersvc.NewService(rostersvc.PGStores(pool),
		rostersvc.WithLogger(log),
		rostersvc.WithEmailSender(sender),
	)

	mod := rostermod.New(tenants, auth, roster, sessions, rostermod.WithLogger(log))

	resolver := tenant.NewCompositeResolver(
		tenant.NewSubdomainResolver(cfg.BaseDomain),
		tenant.NewHeaderResolver(""),
	)

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(sessions.Middleware)
	r.Use(tenant.Middleware(resolver, tenants,
		tenant.WithCache(tenant.NewRedisCache(redisClient, "tenant")),
		tenant.WithLogger(log),
	))

	r.Get("/health", httpserver.HealthCheckHandler(ctx, log,
		pg.Healthcheck(pool),
		redis.Healthcheck(redisClient),
	))
	r.Mount("/api", mod.Router())

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, http.Handler(r))
}
