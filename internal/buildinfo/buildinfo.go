// Package buildinfo exposes version information injected at link time:
//
//	go build -ldflags "-X 'github.com/promogpt/promoctl/internal/buildinfo.buildVersion=v1.0.0' \
//	                   -X 'github.com/promogpt/promoctl/internal/buildinfo.buildDate=2026-09-01' \
//	                   -X 'github.com/promogpt/promoctl/internal/buildinfo.buildCommit=abc123'"
package buildinfo

import (
	"fmt"
	"io"
)

var (
	buildVersion = "N/A"
	buildDate    = "N/A"
	buildCommit  = "N/A"
)

// PrintBuildData writes the build banner to w.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", buildVersion)
	fmt.Fprintf(w, "Build date: %s\n", buildDate)
	fmt.Fprintf(w, "Build commit: %s\n", buildCommit)
}
