// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"strings"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	keys := strings.TrimSpace(os.Getenv("OWNER_API_KEYS"))
	addr := strings.TrimSpace(os.Getenv("ADDR"))
	db := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	allowed := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS"))
	interval := strings.TrimSpace(os.Getenv("CHECK_INTERVAL_MS"))

	if keys == "" {
		warn("OWNER_API_KEYS is empty — API falls back to the X-Owner-ID header (dev only).")
	} else {
		for _, pair := range strings.Split(keys, ",") {
			if !strings.Contains(pair, ":") {
				fail("OWNER_API_KEYS entry " + pair + " is not key:owner")
			}
		}
		if strings.Contains(keys, " ") {
			warn("OWNER_API_KEYS contains spaces; use comma-separated key:owner with no spaces")
		}
		ok("OWNER_API_KEYS present")
	}

	if addr == "" {
		warn("ADDR is empty; default :8080 will be used.")
	} else {
		ok("ADDR=" + addr)
	}

	if db == "" {
		warn("DATABASE_URL empty — API will use the in-memory store; history is lost on restart.")
	} else {
		ok("DATABASE_URL present")
	}

	if allowed == "" {
		warn("ALLOWED_ORIGINS empty — CORS allows all origins.")
	} else {
		ok("ALLOWED_ORIGINS=" + allowed)
	}

	if interval == "" || interval == "0" {
		warn("CHECK_INTERVAL_MS unset — no periodic batches; checks run only via POST /api/websites/ping.")
	} else {
		ok("CHECK_INTERVAL_MS=" + interval)
	}

	ok("preflight passed")
}
