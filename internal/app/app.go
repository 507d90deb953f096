package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/price-compare/internal/cfg"
	v1Grpc "github.com/DRSN-tech/price-compare/internal/delivery/v1/grpc"
	v1Http "github.com/DRSN-tech/price-compare/internal/delivery/v1/http"
	"github.com/DRSN-tech/price-compare/internal/infrastructure/kafka"
	minioInfra "github.com/DRSN-tech/price-compare/internal/infrastructure/minio"
	"github.com/DRSN-tech/price-compare/internal/infrastructure/upstream"
	s3Repo "github.com/DRSN-tech/price-compare/internal/repository/minio"
	"github.com/DRSN-tech/price-compare/internal/repository/redis"
	"github.com/DRSN-tech/price-compare/internal/usecase"
	"github.com/DRSN-tech/price-compare/pkg/clients"
	"github.com/DRSN-tech/price-compare/pkg/closer"
	"github.com/DRSN-tech/price-compare/pkg/e"
	"github.com/DRSN-tech/price-compare/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	initTimeout     = 10 * time.Second
	shutdownTimeout = 10 * time.Second
	topicTimeout    = 5 * time.Second
)

// App — шлюз сравнения цен: HTTP и gRPC поверх внешнего API.
type App struct {
	cfg      *config.Config
	logger   logger.Logger
	closer   *closer.Closer
	httpSrv  *v1Http.Server
	grpcSrv  *v1Grpc.GRPCServer
	stopBgFn context.CancelFunc
}

// NewApp инициализирует все зависимости. Kafka и MinIO подключаются, только если заданы в конфигурации.
func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	cl := closer.NewCloser(0)
	bgCtx, stopBg := context.WithCancel(context.Background())

	fail := func(err error) (*App, error) {
		stopBg()
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if cerr := cl.Close(closeCtx); cerr != nil {
			log.Warnf("%s", cerr.Error())
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	upstreamClient := upstream.NewClient(cfg.Upstream, log)

	redisClient := clients.NewRedisClient(cfg.Redis)
	cl.Add("redis", redisClient.Close)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), initTimeout)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		log.Errorf(err, "failed to connect to redis")
		return fail(err)
	}
	cacheRepo := redis.NewSearchCacheRepo(redisClient, cfg.Redis, log)

	var publisher usecase.EventPublisher
	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(log, cfg.Kafka)
		if err := producer.EnsureTopic(topicTimeout); err != nil {
			log.Warnf("failed to ensure kafka topic %s: %v", cfg.Kafka.Topic, err)
		}
		cl.Add("kafka producer", producer.Close)
		publisher = producer
	} else {
		log.Infof("KAFKA_BROKERS is empty, comparison events are disabled")
	}

	comparisonUC := usecase.NewComparisonUC(upstreamClient, cacheRepo, publisher, log, cfg.Kafka.PublishTimeout)
	cl.Add("comparison events", comparisonUC.WaitForPublish)

	var chartsInfra usecase.ChartsInfra
	if cfg.Minio.Enabled {
		minioClient, err := clients.NewMinIOClient(cfg.Minio)
		if err != nil {
			log.Errorf(err, "failed to initialize minio client")
			return fail(err)
		}

		minioCtx, minioCancel := context.WithTimeout(context.Background(), initTimeout)
		defer minioCancel()
		if err := clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName); err != nil {
			log.Errorf(err, "failed to initialize MinIO bucket")
			return fail(err)
		}

		charts := minioInfra.NewChartInfrastructure(s3Repo.NewChartRepo(minioClient, cfg.Minio), cfg.Minio, log, bgCtx)
		cl.Add("minio cleanup", charts.WaitForCleanup)
		chartsInfra = charts
	} else {
		log.Infof("MINIO_ENDPOINT is empty, chart sharing is disabled")
	}

	chartUC := usecase.NewChartUC(comparisonUC, chartsInfra, log)
	accountUC := usecase.NewAccountUC(upstreamClient, upstreamClient, upstreamClient, log)

	r := chi.NewRouter()
	v1Http.NewRouter(r, log, cfg.RateLimit).Init(cfg.Http.SwaggerURL, comparisonUC, chartUC, accountUC)
	httpSrv := v1Http.NewServer(r, cfg.Http)

	grpcSrv := v1Grpc.NewGRPCServer(cfg.Grpc, log)
	grpcSrv.RegisterServices(comparisonUC)

	// серверы закрываются первыми: после них не появятся новые события и задачи очистки
	cl.Add("grpc server", grpcSrv.Stop)
	cl.Add("http server", httpSrv.Stop)

	return &App{
		cfg:      cfg,
		logger:   log,
		closer:   cl,
		httpSrv:  httpSrv,
		grpcSrv:  grpcSrv,
		stopBgFn: stopBg,
	}, nil
}

// Run запускает серверы и блокируется до сигнала завершения или ошибки одного из серверов.
func (a *App) Run() error {
	errCh := make(chan error, 2)

	go func() {
		a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			a.logger.Errorf(err, "gRPC server failed")
			errCh <- err
		}
	}()

	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Warnf("%s", err.Error())
	}
	a.stopBgFn()

	a.logger.Infof("Application shutdown complete")
	return appErr
}
