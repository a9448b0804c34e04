package common

import (
	"encoding/json"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the full configuration surface of a vilolog instance. Every field
// is read from the environment (a .env file is honored when present).
type Config struct {
	DBPath string

	BlogID          string
	BlogTitle       string
	BlogDescription string
	FooterLine      string

	CookieSecret string
	CSRFSecret   string

	AdminThemeDir  string
	PublicThemeDir string

	// LoginSlug overrides the default "_login" path segment.
	LoginSlug string

	// Redirects maps request paths to redirect targets, consulted before the
	// themed 404 page.
	Redirects map[string]string

	EnforceHTTPS       bool
	AllowedHosts       []string
	DisableRemoteLogin bool

	Port string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading environment directly")
	}

	cfg := &Config{
		DBPath:             getenv("VILOLOG_DB", "vilolog.db"),
		BlogID:             os.Getenv("VILOLOG_BLOG_ID"),
		BlogTitle:          getenv("VILOLOG_TITLE", "My ViloLog"),
		BlogDescription:    getenv("VILOLOG_DESCRIPTION", "Yet another ViloLog blog."),
		FooterLine:         getenv("VILOLOG_FOOTER", "Powered by ViloLog."),
		CookieSecret:       os.Getenv("VILOLOG_COOKIE_SECRET"),
		CSRFSecret:         os.Getenv("VILOLOG_CSRF_SECRET"),
		AdminThemeDir:      os.Getenv("VILOLOG_ADMIN_THEME"),
		PublicThemeDir:     os.Getenv("VILOLOG_PUBLIC_THEME"),
		LoginSlug:          os.Getenv("VILOLOG_LOGIN_SLUG"),
		EnforceHTTPS:       os.Getenv("VILOLOG_ENFORCE_HTTPS") == "1",
		DisableRemoteLogin: os.Getenv("VILOLOG_DISABLE_REMOTE_LOGIN") == "1",
		Port:               getenv("PORT", "8080"),
	}

	// Secrets fall back to random per-process values, which invalidates all
	// sessions on restart. Fine for trying things out, not for production.
	if cfg.CookieSecret == "" {
		cfg.CookieSecret = GenerateID() + GenerateID() + GenerateID()
		log.Println("VILOLOG_COOKIE_SECRET not set, generated a throwaway one")
	}
	if cfg.CSRFSecret == "" {
		cfg.CSRFSecret = GenerateID() + GenerateID() + GenerateID()
		log.Println("VILOLOG_CSRF_SECRET not set, generated a throwaway one")
	}

	if hosts := os.Getenv("VILOLOG_ALLOWED_HOSTS"); hosts != "" {
		for _, h := range strings.Split(hosts, ",") {
			if h = strings.TrimSpace(h); h != "" {
				cfg.AllowedHosts = append(cfg.AllowedHosts, h)
			}
		}
	}

	if raw := os.Getenv("VILOLOG_REDIRECTS"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &cfg.Redirects); err != nil {
			log.Printf("ignoring VILOLOG_REDIRECTS, invalid JSON: %v", err)
			cfg.Redirects = nil
		}
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
