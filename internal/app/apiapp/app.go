package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/boliek/contentsafety/internal/config"
	s3infra "github.com/boliek/contentsafety/internal/infra/s3"
	requeuejob "github.com/boliek/contentsafety/internal/jobs/requeue"
	pgrepo "github.com/boliek/contentsafety/internal/repo/postgres"
	"github.com/boliek/contentsafety/internal/repo/redisq"
	catalogsvc "github.com/boliek/contentsafety/internal/services/catalog"
	intakesvc "github.com/boliek/contentsafety/internal/services/intake"
	reviewsvc "github.com/boliek/contentsafety/internal/services/review"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	s3         *minio.Client
	requeueJob *requeuejob.Job
	stopJobs   context.CancelFunc
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	redisClient := redisq.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	queue := redisq.NewQueue(redisClient, cfg.Queue.KeyPrefix)

	pinnerRepo := pgrepo.NewPinnerRepo(pool)
	reviewerRepo := pgrepo.NewReviewerRepo(pool)
	contentRepo := pgrepo.NewContentRepo(pool)
	complaintRepo := pgrepo.NewComplaintRepo(pool)

	intakeService := intakesvc.NewService(pinnerRepo, complaintRepo, queue, log)
	reviewService := reviewsvc.NewService(reviewsvc.Dependencies{
		Queue:      queue,
		Complaints: complaintRepo,
		Contents:   contentRepo,
		Reviewers:  reviewerRepo,
		Logger:     log,
	}, reviewsvc.Config{
		VisibilityTimeout: cfg.Queue.VisibilityTimeout,
	})
	catalogService := catalogsvc.NewService(pinnerRepo, reviewerRepo, contentRepo, complaintRepo, log)

	var s3Client *minio.Client
	if c, err := s3infra.NewClient(s3infra.Config{
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		UseSSL:    cfg.S3.UseSSL,
	}); err != nil {
		log.Warn("s3 init failed, continuing in degraded mode", zap.Error(err))
	} else {
		s3Client = c
		if signer, err := s3infra.NewSigner(c, cfg.S3.Bucket); err != nil {
			log.Warn("s3 signer init failed, serving raw content urls", zap.Error(err))
		} else {
			reviewService.AttachSigner(signer)
		}
	}

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	RegisterRoutes(r, Dependencies{
		IntakeService:  intakeService,
		ReviewService:  reviewService,
		CatalogService: catalogService,
		Logger:         log,
		Config:         cfg,
	})

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		s3:         s3Client,
		requeueJob: requeuejob.New(queue, cfg.Queue.RequeueInterval, log),
		httpRouter: r,
	}, nil
}

func (a *App) Run() error {
	jobCtx, cancel := context.WithCancel(context.Background())
	a.stopJobs = cancel
	go a.requeueJob.Run(jobCtx)

	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if a.stopJobs != nil {
		a.stopJobs()
	}
	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
