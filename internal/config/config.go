package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"invoice-generator/internal/core"
	"invoice-generator/internal/render"
)

// Config is the process configuration, read from the environment. Callers load a
// .env file with godotenv before calling Load.
type Config struct {
	Port           string
	AllowedOrigins string
	AssetsDir      string
	DraftTTL       time.Duration
	CompressPDF    bool
	Business       core.Business
}

// Load reads the environment. Unset variables take defaults; malformed values are errors.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           envOr("SERVER_PORT", "8080"),
		AllowedOrigins: os.Getenv("ALLOWED_ORIGINS"),
		AssetsDir:      envOr("ASSETS_DIR", "."),
		DraftTTL:       2 * time.Hour,
		CompressPDF:    true,
		Business:       core.DefaultBusiness(),
	}

	if v := os.Getenv("DRAFT_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil || ttl <= 0 {
			return nil, fmt.Errorf("DRAFT_TTL must be a positive duration, got %q", v)
		}
		cfg.DraftTTL = ttl
	}

	if v := os.Getenv("PDF_COMPRESS"); v != "" {
		compress, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("PDF_COMPRESS must be a boolean, got %q", v)
		}
		cfg.CompressPDF = compress
	}

	b := &cfg.Business
	b.Name = envOr("BUSINESS_NAME", b.Name)
	b.Address = envOr("BUSINESS_ADDRESS", b.Address)
	b.Email = envOr("BUSINESS_EMAIL", b.Email)
	b.FooterMessage = envOr("FOOTER_MESSAGE", b.FooterMessage)
	b.CurrencyLabel = envOr("CURRENCY_LABEL", b.CurrencyLabel)
	if v, ok := os.LookupEnv("BUSINESS_PHONES"); ok {
		b.Phones = splitAndTrim(v)
	}
	// LOGO_PATH set to an empty value disables the logo.
	if v, ok := os.LookupEnv("LOGO_PATH"); ok {
		b.LogoRef = strings.TrimSpace(v)
	}

	if strings.TrimSpace(b.Name) == "" {
		return nil, fmt.Errorf("BUSINESS_NAME must not be blank")
	}

	// Business text is printed with the built-in PDF fonts.
	for _, f := range []struct{ key, val string }{
		{"BUSINESS_NAME", b.Name},
		{"BUSINESS_ADDRESS", b.Address},
		{"BUSINESS_EMAIL", b.Email},
		{"BUSINESS_PHONES", strings.Join(b.Phones, ",")},
		{"FOOTER_MESSAGE", b.FooterMessage},
		{"CURRENCY_LABEL", b.CurrencyLabel},
	} {
		if err := render.CheckPrintable(f.val); err != nil {
			return nil, fmt.Errorf("%s: %w", f.key, err)
		}
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitAndTrim(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
