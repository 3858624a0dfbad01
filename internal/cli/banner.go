package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/ternarybob/banner"

	"github.com/heartmarshall/concept-clarity/internal/app"
	"github.com/heartmarshall/concept-clarity/internal/config"
)

const bannerWidth = 60

// printBanner writes the startup banner for clarity serve.
func printBanner(w io.Writer, cfg *config.Config) {
	lineColor := banner.ColorCyan
	textColor := banner.ColorBold + banner.ColorWhite
	hr := lineColor + strings.Repeat("═", bannerWidth) + banner.ColorReset

	mode := "fresh read per request"
	if cfg.Glossary.Cache {
		mode = "cached snapshot (reload on SIGHUP or POST /reload)"
	}

	fmt.Fprintf(w, "\n%s\n\n", hr)
	fmt.Fprintf(w, "%s  CONCEPT CLARITY%s\n", textColor, banner.ColorReset)
	fmt.Fprintf(w, "%s  FinTech glossary Q&A service%s\n\n", textColor, banner.ColorReset)
	fmt.Fprintf(w, "%s\n\n", hr)

	kvPad := 12
	kvLines := [][2]string{
		{"Version", app.Version},
		{"Commit", app.Commit},
		{"Service URL", fmt.Sprintf("http://%s", cfg.Server.Addr())},
		{"Glossary", cfg.Glossary.Path},
		{"Mode", mode},
	}
	for _, kv := range kvLines {
		fmt.Fprintf(w, "%s  %-*s %s%s\n", textColor, kvPad, kv[0], kv[1], banner.ColorReset)
	}
	fmt.Fprintf(w, "\n%s\n\n", hr)
}

// printShutdownBanner writes the shutdown notice for clarity serve.
func printShutdownBanner(w io.Writer) {
	hr := banner.ColorCyan + strings.Repeat("═", bannerWidth) + banner.ColorReset
	fmt.Fprintf(w, "\n%s\n%s  CONCEPT CLARITY: SHUTTING DOWN%s\n%s\n\n",
		hr, banner.ColorBold+banner.ColorWhite, banner.ColorReset, hr)
}
