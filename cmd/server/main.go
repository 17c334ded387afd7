// @title         DevConnector API
// @version       1.0
// @description   Developer network backend: accounts, profiles with experience and education, posts with likes and comments.
// @BasePath      /api
// @schemes       http
// @host          localhost:5000
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT as "Bearer <JWT>"; the x-auth-token header is accepted too.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	swagger "github.com/gofiber/swagger"
	"github.com/sirupsen/logrus"

	_ "github.com/IllyaHavrulyk/DevConnector/docs"

	// internal imports
	"github.com/IllyaHavrulyk/DevConnector/api/http"
	"github.com/IllyaHavrulyk/DevConnector/api/http/handlers"
	"github.com/IllyaHavrulyk/DevConnector/pkg/auth"
	"github.com/IllyaHavrulyk/DevConnector/pkg/config"
	"github.com/IllyaHavrulyk/DevConnector/pkg/github"
	"github.com/IllyaHavrulyk/DevConnector/pkg/health"
	"github.com/IllyaHavrulyk/DevConnector/pkg/health/checkers"
	"github.com/IllyaHavrulyk/DevConnector/pkg/logging"
	"github.com/IllyaHavrulyk/DevConnector/pkg/post"
	"github.com/IllyaHavrulyk/DevConnector/pkg/profile"
	"github.com/IllyaHavrulyk/DevConnector/pkg/repository/memory"
	mongorepo "github.com/IllyaHavrulyk/DevConnector/pkg/repository/mongo"
	pgrepo "github.com/IllyaHavrulyk/DevConnector/pkg/repository/postgres"
	"github.com/IllyaHavrulyk/DevConnector/pkg/security/jwt"
	mongostore "github.com/IllyaHavrulyk/DevConnector/pkg/storage/mongo"
	"github.com/IllyaHavrulyk/DevConnector/pkg/storage/postgres"
)

const shutdownTimeout = 10 * time.Second

// stores is the set of repositories picked by STORAGE_DRIVER.
type stores struct {
	users    auth.UserRepository
	profiles profile.Repository
	posts    post.Repository
	checkers []health.Checker
	close    func()
}

func main() {
	// Load configuration from env/.env
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.WithError(err).WithField("driver", cfg.StorageDriver).Fatal("open storage")
	}
	defer st.close()

	// Token generator
	jwtGen := jwt.NewGenerator(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL())

	repos, err := github.NewClient(github.Config{Token: cfg.GitHubToken, CacheTTL: cfg.GitHubCacheTTL})
	if err != nil {
		log.WithError(err).Fatal("init github client")
	}

	authUC := auth.NewAuthService(st.users, jwtGen)
	profileUC := profile.NewService(st.profiles, st.users, st.posts)
	postUC := post.NewService(st.posts, st.users)

	// Health service: compose checkers
	readiness := health.NewService(st.checkers...)

	// JWT auth middleware for protected routes
	authMW := jwt.NewAuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer)

	app := http.NewApp(log, cfg.CORSOrigins)
	http.Register(app,
		handlers.NewAuthHandler(authUC, log),
		handlers.NewProfileHandler(profileUC, repos, log),
		handlers.NewPostHandler(postUC, log),
		handlers.NewHealthHandler(readiness),
		authMW,
	)

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			log.WithError(err).Error("shutdown")
		}
	}()

	// Start server
	log.WithFields(logrus.Fields{"port": cfg.Port, "driver": cfg.StorageDriver}).Info("HTTP server listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.WithError(err).Error("server stopped")
	}
}

func openStores(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (stores, error) {
	switch cfg.StorageDriver {
	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return stores{}, err
		}
		closeClient := func() {
			cctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := client.Disconnect(cctx); err != nil {
				log.WithError(err).Warn("mongo disconnect")
			}
		}
		users, err := mongorepo.NewUserRepository(ctx, db)
		if err != nil {
			closeClient()
			return stores{}, err
		}
		profiles, err := mongorepo.NewProfileRepository(ctx, db)
		if err != nil {
			closeClient()
			return stores{}, err
		}
		posts, err := mongorepo.NewPostRepository(ctx, db)
		if err != nil {
			closeClient()
			return stores{}, err
		}
		return stores{
			users:    users,
			profiles: profiles,
			posts:    posts,
			checkers: []health.Checker{checkers.NewMongoChecker(client)},
			close:    closeClient,
		}, nil

	case config.DriverMemory:
		log.Warn("using in-memory storage; data is lost on restart")
		return stores{
			users:    memory.NewUserRepository(),
			profiles: memory.NewProfileRepository(),
			posts:    memory.NewPostRepository(),
			close:    func() {},
		}, nil

	default:
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return stores{}, err
		}
		users, err := pgrepo.NewUserRepository(pool)
		if err != nil {
			pool.Close()
			return stores{}, err
		}
		profiles, err := pgrepo.NewProfileRepository(pool)
		if err != nil {
			pool.Close()
			return stores{}, err
		}
		posts, err := pgrepo.NewPostRepository(pool)
		if err != nil {
			pool.Close()
			return stores{}, err
		}
		return stores{
			users:    users,
			profiles: profiles,
			posts:    posts,
			checkers: []health.Checker{checkers.NewPostgresChecker(pool)},
			close:    pool.Close,
		}, nil
	}
}
