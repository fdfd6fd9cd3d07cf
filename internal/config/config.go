package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr           string        // API bind address, e.g., ":8080"
	LogDir         string        // logs directory
	DatabaseURL    string        // postgres DSN; empty means in-memory store
	OwnerAPIKeys   string        // "key:owner,key2:owner2"
	AllowedOrigins []string      // CORS allowlist; empty means allow all
	ProbeTimeout   time.Duration // per-probe budget
	MaxConcurrent  int           // in-flight probe bound per batch
	CheckInterval  time.Duration // periodic rechecker interval; 0 disables
	RPM            int           // rate limit, requests per minute
	Burst          int           // rate limit burst
}

func FromEnv() Config {
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}

	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}

	var origins []string
	for _, o := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return Config{
		Addr:           addr,
		LogDir:         logDir,
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		OwnerAPIKeys:   os.Getenv("OWNER_API_KEYS"),
		AllowedOrigins: origins,
		ProbeTimeout:   envDurationMS("PROBE_TIMEOUT_MS", 5000),
		MaxConcurrent:  envInt("MAX_CONCURRENT_CHECKS", 10),
		CheckInterval:  envDurationMS("CHECK_INTERVAL_MS", 0),
		RPM:            envInt("RPM", 120),
		Burst:          envInt("BURST", 60),
	}
}

func envInt(name string, def int) int {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func envDurationMS(name string, defMS int) time.Duration {
	return time.Duration(envInt(name, defMS)) * time.Millisecond
}
