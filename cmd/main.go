package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cwrk-planet/bizos/config"
	"github.com/cwrk-planet/bizos/internal/imagegen"
	"github.com/cwrk-planet/bizos/internal/jobs"
	"github.com/cwrk-planet/bizos/internal/objectstore"
	"github.com/cwrk-planet/bizos/internal/postgres"
	"github.com/cwrk-planet/bizos/internal/realtime"
	"github.com/cwrk-planet/bizos/internal/security"
	"github.com/cwrk-planet/bizos/internal/service"
	grpcx "github.com/cwrk-planet/bizos/internal/transport/grpc"
	httpx "github.com/cwrk-planet/bizos/internal/transport/http"
	httpmw "github.com/cwrk-planet/bizos/internal/transport/http/middleware"
	"github.com/cwrk-planet/bizos/internal/transport/ws"
	"github.com/cwrk-planet/bizos/pkg/logger"

	"github.com/redis/go-redis/v9"
	"google.golang.org/grpc"
)

func main() {
	// --- config ---
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	lg := logger.Init(logger.Config{
		Env:       logger.Env(cfg.Logging.Env),
		Service:   cfg.Logging.Service,
		Version:   cfg.Logging.Version,
		Backend:   logger.Backend(cfg.Logging.Backend),
		Level:     logger.ParseLevel(cfg.Logging.Level),
		AddSource: cfg.Logging.AddSource,
		Debug:     cfg.Logging.Debug,
	})
	slog.Info("starting bizos",
		"env", cfg.Logging.Env, "version", cfg.Logging.Version)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// --- postgres ---
	if cfg.Postgres.MigrateOnStart {
		if err := postgres.Migrate(cfg.Postgres.DSN); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		slog.Info("migrations applied")
	}
	db, err := postgres.New(ctx, postgres.Config{
		DSN:             cfg.Postgres.DSN,
		MaxConns:        cfg.Postgres.MaxConns,
		MinConns:        cfg.Postgres.MinConns,
		MaxConnLifetime: cfg.Postgres.MaxConnLifetimeOr(time.Hour),
		MaxConnIdleTime: cfg.Postgres.MaxConnIdleTimeOr(10 * time.Minute),
		ApplicationName: cfg.Logging.Service,
		LogSQL:          cfg.Logging.LogSQL,
	})
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer db.Close()

	// --- realtime ---
	hub := realtime.NewHub()
	var rdb *redis.Client
	if cfg.Redis.URL != "" {
		rdb, err = realtime.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer func() { _ = rdb.Close() }()
	}
	broker := realtime.NewBroker(hub, rdb, cfg.Redis.Channel, lg)

	// --- repos ---
	profileRepo := postgres.NewProfileRepository(db.Pool)
	businessRepo := postgres.NewBusinessRepository(db.Pool)
	groupRepo := postgres.NewGroupRepository(db.Pool)
	memberRepo := postgres.NewMemberRepository(db.Pool)
	inviteRepo := postgres.NewInvitationRepository(db.Pool)
	messageRepo := postgres.NewMessageRepository(db.Pool)
	typingRepo := postgres.NewTypingRepository(db.Pool)
	imageRepo := postgres.NewImageRepository(db.Pool)
	txRepo := postgres.NewTransactionRepository(db.Pool)
	docRepo := postgres.NewDocumentRepository(db.Pool)
	contactRepo := postgres.NewContactRepository(db.Pool)

	// --- external ---
	gen := imagegen.NewClient(imagegen.Config{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
		Model:   cfg.OpenAI.Model,
		Timeout: cfg.OpenAI.TimeoutOr(90 * time.Second),
	})
	var store service.ObjectStore
	if cfg.Storage.Enabled() {
		store = objectstore.New(objectstore.Config{
			URL:        cfg.Storage.URL,
			ServiceKey: cfg.Storage.ServiceKey,
			Bucket:     cfg.Storage.Bucket,
		})
	} else {
		slog.Warn("storage disabled, images keep provider urls")
	}

	// --- services ---
	memberSvc := service.NewMemberService(memberRepo, broker)
	chatSvc := service.NewChatService(messageRepo, broker, cfg.Chat.MessageMaxLen, cfg.Chat.HistoryDefault)
	typingSvc := service.NewTypingService(typingRepo, broker, cfg.Chat.TypingTTLOr(5*time.Second))
	inviteSvc := service.NewInvitationService(inviteRepo, broker, security.InvitationCode)

	svcs := httpx.Services{
		Profiles:    service.NewProfileService(profileRepo),
		Businesses:  service.NewBusinessService(businessRepo),
		Groups:      service.NewGroupService(groupRepo),
		Members:     memberSvc,
		Invitations: inviteSvc,
		Chat:        chatSvc,
		Typing:      typingSvc,
		Images:      service.NewImageService(imageRepo, gen, store),
		Ledger:      service.NewLedgerService(txRepo),
		Documents:   service.NewDocumentService(docRepo),
		Contacts:    service.NewContactService(contactRepo),
		Dashboard:   service.NewDashboardService(txRepo, contactRepo, docRepo),
	}

	// --- auth ---
	// без секрета интерфейсы остаются nil, не typed-nil
	var (
		wsAuth   ws.TokenVerifier
		httpAuth httpmw.TokenVerifier
	)
	if cfg.Auth.JWTSecret != "" {
		v := security.NewJWTVerifier(cfg.Auth.JWTSecret, cfg.Auth.Audience, 30*time.Second)
		wsAuth, httpAuth = v, v
	} else {
		slog.Warn("jwt secret not set, identity taken from X-User-ID")
	}

	// --- WS ---
	wsServer := ws.NewServer(hub, broker, memberSvc, chatSvc, typingSvc, wsAuth)

	// --- HTTP ---
	limiter := httpmw.NewRateLimiter(cfg.RateLimit.ImagesPerMinute, cfg.RateLimit.Burst)
	router := httpx.NewRouter(httpx.Deps{
		Handler:        httpx.NewHandler(svcs),
		WS:             wsServer.HandleWS,
		DB:             db,
		Verifier:       httpAuth,
		ImageLimiter:   limiter,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		RequestTimeout: cfg.HTTP.RequestTimeoutOr(30 * time.Second),
		TrustProxy:     cfg.HTTP.TrustProxy,
	})
	httpSrv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeoutOr(10 * time.Second),
		WriteTimeout: cfg.HTTP.WriteTimeoutOr(90 * time.Second),
		IdleTimeout:  60 * time.Second,
	}

	// --- gRPC ---
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(grpcx.UnaryServerInterceptor(5*time.Second)),
		grpc.ChainStreamInterceptor(grpcx.StreamServerInterceptor()),
	)
	health := grpcx.NewHealth(db, 10*time.Second)
	health.Register(grpcServer)

	// --- background jobs ---
	sched := jobs.NewScheduler(lg, 30*time.Second)
	for name, task := range map[string]jobs.Task{
		"typing":      typingSvc.Sweep,
		"invitations": inviteSvc.DeactivateStale,
		"ratelimit":   limiter.Cleanup,
	} {
		if err := sched.Add(name, cfg.Chat.SweepSchedule, task); err != nil {
			log.Fatalf("schedule %s: %v", name, err)
		}
	}
	sched.Start()

	// --- run ---
	errCh := make(chan error, 3)

	go func() {
		if err := broker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()
	go health.Run(ctx)

	go func() {
		slog.Info("http listen", "addr", cfg.HTTP.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	go func() {
		lis, err := net.Listen("tcp", cfg.GRPC.Addr)
		if err != nil {
			errCh <- err
			return
		}
		slog.Info("grpc listen", "addr", cfg.GRPC.Addr)
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- err
		}
	}()

	// --- graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal", "sig", sig)
	case err := <-errCh:
		slog.Error("server error", "err", err)
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	health.Shutdown()
	grpcServer.GracefulStop()
	_ = httpSrv.Shutdown(ctxShutdown)
	sched.Stop(ctxShutdown)
	stop()
	slog.Info("stopped")
}
