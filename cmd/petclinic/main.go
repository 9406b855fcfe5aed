package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"petclinic-client/config"
	"petclinic-client/internal/cart"
	"petclinic-client/internal/delivery/cli"
	"petclinic-client/internal/domain"
	"petclinic-client/internal/infrastructure/cache"
	"petclinic-client/internal/infrastructure/session"
	"petclinic-client/internal/infrastructure/transport"
	restrepo "petclinic-client/internal/repository/rest"
	"petclinic-client/internal/usecase"
	"petclinic-client/pkg/logger"
)

var version = "dev"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// Initialize Logger
	logger.Init(cfg.Env, cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	// A second interrupt kills the process even when a prompt is blocked on stdin.
	context.AfterFunc(ctx, stop)

	limiter := transport.NewRateLimiter(ctx, rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst, time.Minute, 10*time.Minute)
	defer limiter.Shutdown()

	httpClient := &http.Client{
		Timeout:   cfg.HTTPTimeout,
		Transport: transport.RequestLogger(limiter.Transport(http.DefaultTransport)),
	}

	app := buildApp(cfg, session.NewFileStore(cfg.SessionFile), httpClient, os.Stdin, os.Stdout)
	if err := cli.Run(ctx, app, os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

// buildApp wires repositories, usecases and the CLI over one HTTP client.
func buildApp(cfg *config.Config, store domain.SessionStore, httpClient *http.Client, in io.Reader, out io.Writer) *cli.App {
	notifier := cli.NewNotifier(out)

	// Auth endpoints go out without the retry decorator: a 401 there is
	// an answer, not an expired session.
	publicClient := restrepo.NewClient(cfg.APIBaseURL, httpClient)
	authRepo := restrepo.NewAuthRepository(publicClient)

	retrier := restrepo.NewAuthRetrier(httpClient, store, authRepo.Refresh, func() {
		logger.Warn().Msg("Session expired, local session cleared")
	})
	api := restrepo.NewClient(cfg.APIBaseURL, retrier)

	// Initialize Repositories
	userRepo := restrepo.NewUserRepository(api)
	appointmentRepo := restrepo.NewAppointmentRepository(api)
	clinicRepo := restrepo.NewClinicRepository(api)
	doctorRepo := restrepo.NewDoctorRepository(api)
	petRepo := restrepo.NewPetRepository(api)
	productRepo := restrepo.NewProductRepository(api)
	postRepo := restrepo.NewPostRepository(api)
	chatbotRepo := restrepo.NewChatbotRepository(api)
	doctorAIRepo := restrepo.NewDoctorAIRepository(api)

	// Initialize Cache (In-Memory)
	memCache := cache.NewMemoryCache(cfg.CacheDirectoryTTL, 2*cfg.CacheDirectoryTTL)

	// --- Modules Initialization ---
	authUC := usecase.NewAuthUsecase(authRepo, store)
	catalogUC := usecase.NewCatalogUsecase(clinicRepo, doctorRepo, productRepo, memCache, cfg)

	return &cli.App{
		Auth:         authUC,
		Catalog:      catalogUC,
		Appointments: usecase.NewAppointmentUsecase(appointmentRepo, catalogUC),
		Cart:         usecase.NewCartUsecase(cart.NewStore(), catalogUC),
		Chat:         usecase.NewChatUsecase(chatbotRepo, doctorAIRepo, cfg),
		Admin:        usecase.NewAdminUsecase(userRepo, authUC),
		Pets:         usecase.NewPetUsecase(petRepo),
		Forum:        usecase.NewForumUsecase(postRepo),
		Version:      version,
		In:           in,
		Out:          out,
		Notify:       notifier,
	}
}
