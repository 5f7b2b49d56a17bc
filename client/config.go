package main

import (
	"net/url"
	"os"
)

// Defaults point at a local backend and relay; the env overrides both.
var apiBaseURL = "http://localhost:5001"
var relayWSURL = url.URL{Scheme: "ws", Host: "localhost:8000", Path: "/ws"}

func loadConfig() {
	if v := os.Getenv("SYNCODE_API_URL"); v != "" {
		apiBaseURL = v
	}
	if v := os.Getenv("SYNCODE_RELAY_HOST"); v != "" {
		relayWSURL.Host = v
	}
	if os.Getenv("SYNCODE_RELAY_TLS") == "true" {
		relayWSURL.Scheme = "wss"
	}
}
