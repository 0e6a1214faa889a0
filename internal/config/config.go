package config

import (
	"os"
)

type Config struct {
	HTTPAddr  string
	JWTSecret string
	// StorePath is the JSON user file. Setting USERHUB_STORE_PATH to an
	// empty value selects the in-memory store.
	StorePath string
	// SeedPath optionally points at a YAML seed spec for the seed command.
	SeedPath string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func Load() Config {
	cfg := Config{
		HTTPAddr:  getenv("USERHUB_HTTP_ADDR", ":3001"),
		JWTSecret: os.Getenv("USERHUB_JWT_SECRET"),
		StorePath: "users.json",
		SeedPath:  os.Getenv("USERHUB_SEED_PATH"),
	}
	// A set-but-empty store path is meaningful: it selects the memory store.
	if v, ok := os.LookupEnv("USERHUB_STORE_PATH"); ok {
		cfg.StorePath = v
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret-change-me"
	}
	return cfg
}
