package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Karanja-eng/jengacost/internal/boq"
	"github.com/Karanja-eng/jengacost/internal/catalog"
	"github.com/Karanja-eng/jengacost/internal/model"
	"github.com/Karanja-eng/jengacost/internal/rate"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP estimation API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cat, eng, err := initEngine()
		if err != nil {
			return err
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: buildRouter(cat, eng),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// buildRouter assembles the API routes.
func buildRouter(cat *catalog.Catalog, eng *rate.Engine) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/api/catalog", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string][]string{"types": cat.Types()})
	})

	r.Get("/api/catalog/{type}", func(w http.ResponseWriter, req *http.Request) {
		s, err := cat.Get(typeParam(req))
		if err != nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown work item type"})
			return
		}
		writeJSON(w, http.StatusOK, s)
	})

	r.Post("/api/rates/{type}", func(w http.ResponseWriter, req *http.Request) {
		var in model.WorkItemInput
		if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}

		typeName := typeParam(req)
		res, err := eng.Compute(typeName, in)
		if err != nil {
			if eris.Is(err, rate.ErrUnsupported) {
				writeJSON(w, http.StatusNotFound, map[string]string{"error": "unsupported work item type"})
				return
			}
			zap.L().Error("rate computation failed", zap.String("type", typeName), zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "computation failed"})
			return
		}
		writeJSON(w, http.StatusOK, res)
	})

	r.Post("/api/boq/aggregate", func(w http.ResponseWriter, req *http.Request) {
		var body model.Bill
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		writeJSON(w, http.StatusOK, boq.Aggregate(body.Lines))
	})

	return r
}

// typeParam extracts the {type} route parameter. Work item type names
// contain spaces, so the segment arrives percent-encoded.
func typeParam(req *http.Request) string {
	raw := chi.URLParam(req, "type")
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
