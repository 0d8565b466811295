package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultBaseURL é a API pública do 3C Plus
	DefaultBaseURL = "https://app.3c.plus/api/v1"

	// DefaultUpstreamTimeout limita cada chamada ao 3C Plus
	DefaultUpstreamTimeout = 30 * time.Second
)

// Config armazena as configurações da aplicação.
// É carregada uma única vez na inicialização e não é alterada depois.
type Config struct {
	TokenAPI             string
	ImpersonateToken     string
	BaseURL              string
	UpstreamTimeout      time.Duration
	ExposeUpstreamDetail bool
	Port                 string
	GinMode              string
	LogLevel             string
	LogJSON              bool
}

// ErrMissingToken indica que um token obrigatório não foi configurado
var ErrMissingToken = errors.New("token obrigatório não configurado")

// Load carrega as configurações do servidor HTTP.
// API_TOKEN_INTERNO e IMPERSONATE_API_TOKEN são obrigatórios.
func Load() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}

	if cfg.TokenAPI == "" {
		return nil, fmt.Errorf("API_TOKEN_INTERNO: %w", ErrMissingToken)
	}

	return cfg, nil
}

// LoadUpstream carrega as configurações para uso via CLI, onde o token interno é opcional
func LoadUpstream() (*Config, error) {
	return load()
}

func load() (*Config, error) {
	// Tenta carregar .env de múltiplos locais
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()
	_ = godotenv.Load("../.env")

	cfg := &Config{
		TokenAPI:         os.Getenv("API_TOKEN_INTERNO"),
		ImpersonateToken: os.Getenv("IMPERSONATE_API_TOKEN"),
		BaseURL:          strings.TrimRight(strings.TrimSpace(os.Getenv("THREEC_BASE_URL")), "/"),
		Port:             os.Getenv("PORT"),
		GinMode:          os.Getenv("GIN_MODE"),
		LogLevel:         os.Getenv("LOG_LEVEL"),
	}

	if cfg.ImpersonateToken == "" {
		return nil, fmt.Errorf("IMPERSONATE_API_TOKEN: %w", ErrMissingToken)
	}

	timeout, err := parseDuration("UPSTREAM_TIMEOUT", DefaultUpstreamTimeout)
	if err != nil {
		return nil, err
	}
	cfg.UpstreamTimeout = timeout

	if cfg.ExposeUpstreamDetail, err = parseBool("EXPOSE_UPSTREAM_DETAIL", true); err != nil {
		return nil, err
	}
	if cfg.LogJSON, err = parseBool("LOG_JSON", false); err != nil {
		return nil, err
	}

	// Defaults
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	if cfg.Port == "" {
		cfg.Port = "3000"
	}

	if cfg.GinMode == "" {
		cfg.GinMode = "debug"
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

func parseDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s deve ser uma duração válida (ex: 30s), recebido %q", key, v)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s não pode ser negativo, recebido %q", key, v)
	}
	return d, nil
}

func parseBool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s deve ser true ou false, recebido %q", key, v)
	}
	return b, nil
}
