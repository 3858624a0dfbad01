package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/concept-clarity/internal/config"
)

func TestPrintBanner(t *testing.T) {
	cfg := &config.Config{
		Server:   config.ServerConfig{Host: "127.0.0.1", Port: 8000},
		Glossary: config.GlossaryConfig{Path: "dataset/fintech_terms.json", Cache: true},
	}

	var buf bytes.Buffer
	printBanner(&buf, cfg)

	out := buf.String()
	assert.Contains(t, out, "CONCEPT CLARITY")
	assert.Contains(t, out, "http://127.0.0.1:8000")
	assert.Contains(t, out, "dataset/fintech_terms.json")
	assert.Contains(t, out, "cached snapshot")
}

func TestPrintShutdownBanner(t *testing.T) {
	var buf bytes.Buffer
	printShutdownBanner(&buf)

	assert.Contains(t, buf.String(), "SHUTTING DOWN")
}
