package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                           string
	ServiceName                      string
	ServiceVersion                   string
	HTTPAddr                         string
	ReadTimeout                      time.Duration
	WriteTimeout                     time.Duration
	Storage                          string
	DBURL                            string
	DBDisablePreparedBinary          bool
	DataDir                          string
	CacheEnabled                     bool
	CacheTTL                         time.Duration
	CORSAllowedOrigins               []string
	AdminToken                       string
	ModelPath                        string
	PprofEnabled                     bool
	PprofAddr                        string
	UptraceEnabled                   bool
	UptraceDSN                       string
	PyroscopeEnabled                 bool
	PyroscopeServerAddress           string
	PyroscopeAppName                 string
	PyroscopeAuthToken               string
	PyroscopeBasicAuthUser           string
	PyroscopeBasicAuthPassword       string
	PyroscopeUploadRate              time.Duration
	ProjectionsEnabled               bool
	ProjectionsBaseURL               string
	ProjectionsToken                 string
	ProjectionsTimeout               time.Duration
	ProjectionsMaxRetries            int
	ProjectionsCircuitEnabled        bool
	ProjectionsCircuitFailureCount   int
	ProjectionsCircuitOpenTimeout    time.Duration
	ProjectionsCircuitHalfOpenMaxReq int
	LogLevel                         slog.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	if readTimeout <= 0 {
		return Config{}, fmt.Errorf("APP_READ_TIMEOUT must be > 0")
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}
	if writeTimeout <= 0 {
		return Config{}, fmt.Errorf("APP_WRITE_TIMEOUT must be > 0")
	}

	storage, err := parseStorage(getEnv("APP_STORAGE", StorageMemory))
	if err != nil {
		return Config{}, err
	}
	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	dataDir := strings.TrimSpace(getEnv("DATA_DIR", ""))
	if storage == StoragePostgres && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when APP_STORAGE=%s", StoragePostgres)
	}
	if storage == StorageFile && dataDir == "" {
		return Config{}, fmt.Errorf("DATA_DIR is required when APP_STORAGE=%s", StorageFile)
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "5m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := getEnv("PPROF_ADDR", "localhost:6060")
	if pprofEnabled && strings.TrimSpace(pprofAddr) == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	projectionsEnabled, err := strconv.ParseBool(getEnv("PROJECTIONS_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PROJECTIONS_ENABLED: %w", err)
	}
	projectionsTimeout, err := time.ParseDuration(getEnv("PROJECTIONS_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PROJECTIONS_TIMEOUT: %w", err)
	}
	if projectionsTimeout <= 0 {
		return Config{}, fmt.Errorf("PROJECTIONS_TIMEOUT must be > 0")
	}
	projectionsMaxRetries, err := getEnvAsInt("PROJECTIONS_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse PROJECTIONS_MAX_RETRIES: %w", err)
	}
	if projectionsMaxRetries < 0 {
		return Config{}, fmt.Errorf("PROJECTIONS_MAX_RETRIES must be >= 0")
	}
	projectionsCircuitEnabled, err := strconv.ParseBool(getEnv("PROJECTIONS_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PROJECTIONS_CIRCUIT_ENABLED: %w", err)
	}
	projectionsCircuitFailureCount, err := getEnvAsInt("PROJECTIONS_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse PROJECTIONS_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if projectionsCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("PROJECTIONS_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	projectionsCircuitOpenTimeout, err := time.ParseDuration(getEnv("PROJECTIONS_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PROJECTIONS_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if projectionsCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("PROJECTIONS_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	projectionsCircuitHalfOpenMaxReq, err := getEnvAsInt("PROJECTIONS_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse PROJECTIONS_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if projectionsCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("PROJECTIONS_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	projectionsBaseURL := strings.TrimSpace(getEnv("PROJECTIONS_BASE_URL", ""))
	projectionsToken := strings.TrimSpace(getEnv("PROJECTIONS_TOKEN", ""))
	if projectionsEnabled && projectionsToken == "" {
		return Config{}, fmt.Errorf("PROJECTIONS_TOKEN is required when PROJECTIONS_ENABLED=true")
	}

	serviceName := getEnv("APP_SERVICE_NAME", "draft-helper-api")
	pyroscopeAppName := getEnv("PYROSCOPE_APP_NAME", serviceName)

	cfg := Config{
		AppEnv:                           appEnv,
		ServiceName:                      serviceName,
		ServiceVersion:                   getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                         getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:                      readTimeout,
		WriteTimeout:                     writeTimeout,
		Storage:                          storage,
		DBURL:                            dbURL,
		DBDisablePreparedBinary:          true,
		DataDir:                          dataDir,
		CacheEnabled:                     cacheEnabled,
		CacheTTL:                         cacheTTL,
		CORSAllowedOrigins:               splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		AdminToken:                       strings.TrimSpace(getEnv("ADMIN_TOKEN", "")),
		ModelPath:                        strings.TrimSpace(getEnv("MODEL_PATH", "")),
		PprofEnabled:                     pprofEnabled,
		PprofAddr:                        pprofAddr,
		UptraceEnabled:                   uptraceEnabled,
		UptraceDSN:                       uptraceDSN,
		PyroscopeEnabled:                 pyroscopeEnabled,
		PyroscopeServerAddress:           pyroscopeServerAddress,
		PyroscopeAppName:                 pyroscopeAppName,
		PyroscopeAuthToken:               strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:           strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:       strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:              pyroscopeUploadRate,
		ProjectionsEnabled:               projectionsEnabled,
		ProjectionsBaseURL:               projectionsBaseURL,
		ProjectionsToken:                 projectionsToken,
		ProjectionsTimeout:               projectionsTimeout,
		ProjectionsMaxRetries:            projectionsMaxRetries,
		ProjectionsCircuitEnabled:        projectionsCircuitEnabled,
		ProjectionsCircuitFailureCount:   projectionsCircuitFailureCount,
		ProjectionsCircuitOpenTimeout:    projectionsCircuitOpenTimeout,
		ProjectionsCircuitHalfOpenMaxReq: projectionsCircuitHalfOpenMaxReq,
		LogLevel:                         parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}

	return cfg, nil
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

func parseStorage(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case StorageMemory, StorageFile, StoragePostgres:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_STORAGE %q: valid values are %s, %s, %s", v, StorageMemory, StorageFile, StoragePostgres)
	}
}

func parseLogLevel(v string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}
