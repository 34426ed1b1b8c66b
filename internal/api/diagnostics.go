package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/samber/lo"

	"github.com/mmynk/healthyliving/internal/storage"
)

const (
	// diagnosticsTimeout bounds the ping made by /test.
	diagnosticsTimeout = 2 * time.Second

	maxCollections  = 10
	maxErrorDetail  = 50
	statusSet       = "✅ Set"
	statusNotSet    = "❌ Not Set"
	statusConnected = "Connected"
)

// Diagnostics reports backend and storage health on GET /test. It always
// answers 200; failures are described in the body.
type Diagnostics struct {
	// Store is the gateway to probe. Nil means storage was never wired.
	Store storage.Gateway

	DatabaseURLSet  bool
	DatabaseNameSet bool
}

type diagnosticsResponse struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

func (d *Diagnostics) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := diagnosticsResponse{
		Backend:          "✅ Running",
		Database:         "❌ Database module not found",
		DatabaseURL:      lo.Ternary(d.DatabaseURLSet, statusSet, statusNotSet),
		DatabaseName:     lo.Ternary(d.DatabaseNameSet, statusSet, statusNotSet),
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
	}

	func() {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("Diagnostics panicked", "panic", rec)
				resp.Database = "❌ Error: " + truncate(fmt.Sprint(rec))
			}
		}()
		d.probe(r.Context(), &resp)
	}()

	writeJSON(w, http.StatusOK, resp)
}

func (d *Diagnostics) probe(ctx context.Context, resp *diagnosticsResponse) {
	if d.Store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, diagnosticsTimeout)
	defer cancel()

	if err := d.Store.Ping(ctx); err != nil {
		if storage.IsNotConnected(err) {
			resp.Database = "⚠️  Available but not initialized"
		} else {
			resp.Database = "❌ Error: " + truncate(err.Error())
		}
		slog.Warn("Diagnostics ping failed", "error", err)
		return
	}
	resp.ConnectionStatus = statusConnected

	names, err := d.Store.ListCollectionNames(ctx)
	if err != nil {
		slog.Warn("Diagnostics could not list collections", "error", err)
		resp.Database = "⚠️  Connected but Error: " + truncate(err.Error())
		return
	}

	resp.Database = "✅ Connected & Working"
	if len(names) > 0 {
		resp.Collections = lo.Subset(names, 0, maxCollections)
	}
}

func truncate(s string) string {
	return lo.Substring(s, 0, maxErrorDetail)
}
