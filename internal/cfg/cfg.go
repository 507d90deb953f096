package cfg

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DRSN-tech/price-compare/pkg/e"
	"github.com/DRSN-tech/price-compare/pkg/logger"
	"github.com/jimlawless/whereami"
)

type Config struct {
	Http      *HTTPConfig
	Grpc      *GRPCConfig
	Upstream  *UpstreamCfg
	Redis     *RedisCfg
	Kafka     *KafkaCfg
	Minio     *MinIOCfg
	RateLimit *RateLimitCfg
	Log       *LogCfg
}

// UpstreamCfg — параметры внешнего API сравнения цен.
type UpstreamCfg struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int           // повторы только для идемпотентных GET
	RetryBase  time.Duration // начальная задержка перед повтором
	RetryMax   time.Duration
}

type KafkaCfg struct {
	Enabled           bool
	Topic             string
	Brokers           []string
	NetworkMode       string
	Partitions        int
	ReplicationFactor int
	PublishTimeout    time.Duration
}

type MinIOCfg struct {
	Enabled           bool
	MinioEndpoint     string // Адрес конечной точки Minio
	BucketName        string // Бакет для графиков
	MinioRootUser     string
	MinioRootPassword string
	MinioUseSSL       bool
	PresignTTL        time.Duration // время жизни ссылки на график
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	SwaggerURL   string
}

type GRPCConfig struct {
	Port        string
	NetworkMode string
}

type RedisCfg struct {
	Addr           string
	Password       string
	User           string
	DB             int
	MaxRetries     int
	DialTimeout    time.Duration
	Timeout        time.Duration
	SearchCacheTTL time.Duration
}

// RateLimitCfg — ограничение количества запросов с одного IP.
type RateLimitCfg struct {
	Requests int
	Window   time.Duration
}

type LogCfg struct {
	Level string
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
func Load(log logger.Logger) (*Config, error) {
	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	upstream, err := loadUpstreamCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	redis, err := loadRedisCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	kafka, err := loadKafkaCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minio, err := loadMinIOCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	rateLimit, err := loadRateLimitCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Http:      http,
		Grpc:      loadGRPCConfig(),
		Upstream:  upstream,
		Redis:     redis,
		Kafka:     kafka,
		Minio:     minio,
		RateLimit: rateLimit,
		Log:       &LogCfg{Level: getEnvOrDefault("LOG_LEVEL", "info")},
	}, nil
}

func loadUpstreamCfg(log logger.Logger) (*UpstreamCfg, error) {
	const (
		defaultTimeout    = 10 * time.Second
		defaultMaxRetries = 2
		defaultRetryBase  = 200 * time.Millisecond
		defaultRetryMax   = 2 * time.Second
	)

	baseURL := strings.TrimRight(getEnv("UPSTREAM_BASE_URL"), "/")
	if baseURL == "" {
		err := fmt.Errorf("UPSTREAM_BASE_URL is required")
		log.Errorf(err, "missing UPSTREAM_BASE_URL")
		return nil, err
	}

	if _, err := url.ParseRequestURI(baseURL); err != nil {
		log.Errorf(err, "invalid UPSTREAM_BASE_URL")
		return nil, e.Wrap("UPSTREAM_BASE_URL", e.ErrIncorrectEnvVariable)
	}

	timeout, err := parseDurationEnv("UPSTREAM_TIMEOUT", defaultTimeout)
	if err != nil {
		log.Errorf(err, "invalid UPSTREAM_TIMEOUT")
		return nil, err
	}

	maxRetries, err := parseIntEnv("UPSTREAM_MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		return nil, e.Wrap("UPSTREAM_MAX_RETRIES", err)
	}

	retryBase, err := parseDurationEnv("UPSTREAM_RETRY_BASE", defaultRetryBase)
	if err != nil {
		log.Errorf(err, "invalid UPSTREAM_RETRY_BASE")
		return nil, err
	}

	return &UpstreamCfg{
		BaseURL:    baseURL,
		Timeout:    timeout,
		MaxRetries: maxRetries,
		RetryBase:  retryBase,
		RetryMax:   defaultRetryMax,
	}, nil
}

// loadKafkaCfg читает настройки Kafka. Пустой KAFKA_BROKERS отключает публикацию событий.
func loadKafkaCfg() (*KafkaCfg, error) {
	const (
		defaultPartitions        = 3
		defaultReplicationFactor = 1
		defaultNetworkMode       = "tcp"
		defaultTopic             = "comparison.computed"
		defaultPublishTimeout    = 2 * time.Second
	)

	brokerStr := getEnv("KAFKA_BROKERS")
	if brokerStr == "" {
		return &KafkaCfg{Enabled: false}, nil
	}

	brokers := make([]string, 0)
	for _, b := range strings.Split(brokerStr, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}

	partitions, err := parseIntEnv("KAFKA_PARTITIONS", defaultPartitions)
	if err != nil {
		return nil, e.Wrap("KAFKA_PARTITIONS", err)
	}

	replicationFactor, err := parseIntEnv("REPLICATION_FACTOR", defaultReplicationFactor)
	if err != nil {
		return nil, e.Wrap("REPLICATION_FACTOR", err)
	}

	publishTimeout, err := parseDurationEnv("KAFKA_PUBLISH_TIMEOUT", defaultPublishTimeout)
	if err != nil {
		return nil, e.Wrap("KAFKA_PUBLISH_TIMEOUT", err)
	}

	return &KafkaCfg{
		Enabled:           len(brokers) > 0,
		Brokers:           brokers,
		Topic:             getEnvOrDefault("KAFKA_TOPIC", defaultTopic),
		Partitions:        partitions,
		ReplicationFactor: replicationFactor,
		NetworkMode:       getEnvOrDefault("KAFKA_NETWORK_MODE", defaultNetworkMode),
		PublishTimeout:    publishTimeout,
	}, nil
}

// loadMinIOCfg читает настройки MinIO. Без MINIO_ENDPOINT публикация графиков отключена.
func loadMinIOCfg(log logger.Logger) (*MinIOCfg, error) {
	const (
		defaultUseSSL     = false
		defaultBucketName = "price-charts"
		defaultPresignTTL = 24 * time.Hour
	)

	endpoint := getEnv("MINIO_ENDPOINT")
	if endpoint == "" {
		return &MinIOCfg{Enabled: false}, nil
	}

	useSSL, err := parseBoolEnv("MINIO_USE_SSL", defaultUseSSL)
	if err != nil {
		log.Errorf(err, "invalid MINIO_USE_SSL")
		return nil, err
	}

	presignTTL, err := parseDurationEnv("MINIO_PRESIGN_TTL", defaultPresignTTL)
	if err != nil {
		log.Errorf(err, "invalid MINIO_PRESIGN_TTL")
		return nil, err
	}

	return &MinIOCfg{
		Enabled:           true,
		MinioEndpoint:     endpoint,
		BucketName:        getEnvOrDefault("BUCKET_NAME", defaultBucketName),
		MinioRootUser:     getEnv("MINIO_ROOT_USER"),
		MinioRootPassword: getEnv("MINIO_ROOT_PASSWORD"),
		MinioUseSSL:       useSSL,
		PresignTTL:        presignTTL,
	}, nil
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort         = "8080"
		defaultReadTimeout  = 5 * time.Second
		defaultWriteTimeout = 15 * time.Second
		defaultIdleTimeout  = 60 * time.Second
	)

	port := getEnvOrDefault("HTTP_PORT", defaultPort)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	return &HTTPConfig{
		Port:         port,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
		SwaggerURL:   getEnvOrDefault("SWAGGER_URL", "http://localhost:"+port+"/swagger/doc.json"),
	}, nil
}

func loadGRPCConfig() *GRPCConfig {
	const (
		defaultPort        = "8091"
		defaultNetworkMode = "tcp"
	)

	return &GRPCConfig{
		Port:        getEnvOrDefault("GRPC_PORT", defaultPort),
		NetworkMode: getEnvOrDefault("GRPC_NETWORK_MODE", defaultNetworkMode),
	}
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultAddr           = "localhost:6379"
		defaultDB             = 0
		defaultMaxRetries     = 3
		defaultDialTimeout    = 5 * time.Second
		defaultReadTimeout    = 3 * time.Second
		defaultWriteTimeout   = 3 * time.Second
		defaultSearchCacheTTL = 3 * time.Minute
	)

	db, err := parseIntEnv("REDIS_DB_ID", defaultDB)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB_ID")
		return nil, err
	}

	maxRetries, err := parseIntEnv("MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid MAX_RETRIES")
		return nil, err
	}

	dialTimeout, err := parseDurationEnv("DIAL_TIMEOUT", defaultDialTimeout)
	if err != nil {
		log.Errorf(err, "invalid DIAL_TIMEOUT")
		return nil, err
	}

	readTimeout, err := parseDurationEnv("READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid WRITE_TIMEOUT")
		return nil, err
	}

	searchCacheTTL, err := parseDurationEnv("SEARCH_CACHE_TTL", defaultSearchCacheTTL)
	if err != nil {
		log.Errorf(err, "invalid SEARCH_CACHE_TTL")
		return nil, err
	}

	return &RedisCfg{
		Addr:           getEnvOrDefault("REDIS_ADDR", defaultAddr),
		Password:       getEnv("REDIS_PASSWORD"),
		User:           getEnv("REDIS_USER"),
		DB:             db,
		MaxRetries:     maxRetries,
		DialTimeout:    dialTimeout,
		Timeout:        max(readTimeout, writeTimeout),
		SearchCacheTTL: searchCacheTTL,
	}, nil
}

func loadRateLimitCfg() (*RateLimitCfg, error) {
	const (
		defaultRequests = 60
		defaultWindow   = time.Minute
	)

	requests, err := parseIntEnv("RATE_LIMIT_REQUESTS", defaultRequests)
	if err != nil {
		return nil, e.Wrap("RATE_LIMIT_REQUESTS", err)
	}

	window, err := parseDurationEnv("RATE_LIMIT_WINDOW", defaultWindow)
	if err != nil {
		return nil, e.Wrap("RATE_LIMIT_WINDOW", err)
	}

	return &RateLimitCfg{
		Requests: requests,
		Window:   window,
	}, nil
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	boolValue, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return boolValue, nil
}
