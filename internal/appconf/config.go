package appconf

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"compass.qibla.app/internal/bearing"
)

type Environment int

const (
	Development Environment = iota
	Test
	Production
)

func (e Environment) String() string {
	switch e {
	case Test:
		return "test"
	case Production:
		return "production"
	default:
		return "development"
	}
}

// EnvFlagToEnvironment maps the -env flag value to an Environment, defaulting to Development
func EnvFlagToEnvironment(env string) Environment {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "test":
		return Test
	case "production", "prod":
		return Production
	default:
		return Development
	}
}

// Config holds all the configuration settings for the Application.
type Config struct {
	Port        int
	Env         Environment
	ApiKeys     []string
	ExemptKeys  []string
	RateLimit   int
	LogLevel    string
	Target      bearing.GeoCoordinate
	ArrowOffset float64
	// Declination is the magnetic declination applied to device headings, east positive.
	Declination float64
}

// Default returns the configuration used when no flags or environment variables are set
func Default() Config {
	return Config{
		Port:        4000,
		Env:         Development,
		ApiKeys:     []string{"test"},
		RateLimit:   100,
		LogLevel:    "info",
		Target:      bearing.Kaaba,
		ArrowOffset: bearing.ArrowRestsUp,
	}
}

// Load parses command-line flags. Flag defaults come from QIBLA_* environment variables
// when set, otherwise from Default().
func Load(args []string, output io.Writer) (Config, error) {
	cfg := Default()
	fs := flag.NewFlagSet("qibla-api", flag.ContinueOnError)
	if output != nil {
		fs.SetOutput(output)
	}

	var (
		envFlag, apiKeysFlag, exemptKeysFlag string
		errs                                 []error
	)

	intEnv := func(key string, fallback int) int {
		v, err := lookupInt(key, fallback)
		errs = append(errs, err)
		return v
	}
	floatEnv := func(key string, fallback float64) float64 {
		v, err := lookupFloat(key, fallback)
		errs = append(errs, err)
		return v
	}

	fs.IntVar(&cfg.Port, "port", intEnv("QIBLA_PORT", cfg.Port), "API server port")
	fs.StringVar(&envFlag, "env", lookupString("QIBLA_ENV", cfg.Env.String()), "Environment (development|test|production)")
	fs.StringVar(&apiKeysFlag, "api-keys", lookupString("QIBLA_API_KEYS", strings.Join(cfg.ApiKeys, ",")), "Comma separated API keys")
	fs.StringVar(&exemptKeysFlag, "exempt-keys", lookupString("QIBLA_EXEMPT_KEYS", ""), "Comma separated API keys exempt from rate limiting")
	fs.IntVar(&cfg.RateLimit, "rate-limit", intEnv("QIBLA_RATE_LIMIT", cfg.RateLimit), "Requests per second allowed per API key")
	fs.StringVar(&cfg.LogLevel, "log-level", lookupString("QIBLA_LOG_LEVEL", cfg.LogLevel), "Log level (debug|info|warn|error)")
	fs.Float64Var(&cfg.Target.Lat, "target-lat", floatEnv("QIBLA_TARGET_LAT", cfg.Target.Lat), "Target latitude in decimal degrees")
	fs.Float64Var(&cfg.Target.Lon, "target-lon", floatEnv("QIBLA_TARGET_LON", cfg.Target.Lon), "Target longitude in decimal degrees")
	fs.Float64Var(&cfg.ArrowOffset, "arrow-offset", floatEnv("QIBLA_ARROW_OFFSET", cfg.ArrowOffset), "Rest orientation of the arrow asset (0 = up, 180 = down)")
	fs.Float64Var(&cfg.Declination, "declination", floatEnv("QIBLA_DECLINATION", cfg.Declination), "Magnetic declination in degrees, east positive")

	if err := errors.Join(errs...); err != nil {
		return cfg, err
	}
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	cfg.Env = EnvFlagToEnvironment(envFlag)
	cfg.ApiKeys = splitList(apiKeysFlag)
	cfg.ExemptKeys = splitList(exemptKeysFlag)

	return cfg, cfg.Validate()
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if len(c.ApiKeys) == 0 {
		errs = append(errs, errors.New("at least one API key is required"))
	}
	if c.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("rate limit must be non-negative, got %d", c.RateLimit))
	}
	if err := c.Target.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("target: %w", err))
	}
	if c.ArrowOffset != bearing.ArrowRestsUp && c.ArrowOffset != bearing.ArrowRestsDown {
		errs = append(errs, fmt.Errorf("arrow offset must be %v or %v, got %v", bearing.ArrowRestsUp, bearing.ArrowRestsDown, c.ArrowOffset))
	}
	if math.IsNaN(c.Declination) || math.IsInf(c.Declination, 0) || math.Abs(c.Declination) > 180 {
		errs = append(errs, fmt.Errorf("declination must be within [-180, 180], got %v", c.Declination))
	}
	return errors.Join(errs...)
}

func lookupString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func lookupInt(key string, fallback int) (int, error) {
	v := lookupString(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func lookupFloat(key string, fallback float64) (float64, error) {
	v := lookupString(key, "")
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
