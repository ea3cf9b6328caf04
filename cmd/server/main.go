// Command server runs the contract lifecycle engine behind an HTTP gateway.
// Wiring order: config, logger, metrics, event pipeline, record store,
// workflow engine, service, cache, transport. Optional backends (Postgres,
// Redis, Kafka) attach only when configured; the process runs self-contained
// without them.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"foncier/internal/contract/cache"
	"foncier/internal/contract/handler"
	"foncier/internal/contract/models"
	"foncier/internal/contract/service"
	"foncier/internal/contract/workflow"
	"foncier/internal/ledger"
	ledgerpg "foncier/internal/ledger/postgres"
	"foncier/internal/platform/config"
	"foncier/internal/platform/httpserver"
	"foncier/internal/platform/logger"
	"foncier/internal/platform/metrics"
	"foncier/internal/platform/middleware"
	platformredis "foncier/internal/platform/redis"
	"foncier/pkg/platform/events"
)

const eventInboxSize = 256

func main() {
	if err := run(); err != nil && !errors.Is(err, context.Canceled) {
		os.Exit(1)
	}
}

func run() error {
	cfg := config.FromEnv()
	log := logger.New(logger.ParseLevel(cfg.LogLevel))
	m := metrics.New()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)

	// Event pipeline. With brokers configured, writes publish into a bounded
	// inbox and a worker forwards to Kafka so broker latency never blocks a
	// transaction.
	var sink events.Sink
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := events.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			log.Error("kafka sink init failed", "error", err.Error())
			return err
		}
		defer kafka.Close()

		inbox := make(chan events.Event, eventInboxSize)
		sink = events.NewChannelSink(inbox, log)
		worker := events.NewWorker(kafka, inbox, log)
		group.Go(func() error { return worker.Run(ctx) })
		log.Info("event pipeline enabled", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	}

	store, closeStore, err := newStore(ctx, cfg, sink)
	if err != nil {
		log.Error("record store init failed", "error", err.Error())
		return err
	}
	defer closeStore()

	quorum := workflow.NewQuorum(parseQuorumRoles(cfg.QuorumRoles)...)
	engine := workflow.NewEngine(quorum)
	contracts := service.New(store, engine, log, m)
	if err := contracts.Bootstrap(ctx, []string{cfg.Organization}); err != nil {
		log.Error("bootstrap failed", "error", err.Error())
		return err
	}

	redisClient, err := platformredis.New(cfg.RedisURL, cfg.RedisPoolSize)
	if err != nil {
		log.Error("redis init failed", "error", err.Error())
		return err
	}
	var recordCache *cache.RecordCache
	if redisClient != nil {
		defer redisClient.Close()
		recordCache = cache.New(redisClient.Client, cfg.CacheTTL, log)
		log.Info("record cache enabled", "ttl", cfg.CacheTTL.String())
	}

	router := chi.NewRouter()
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	router.Handle("/metrics", promhttp.Handler())

	h := handler.New(contracts, log, m, recordCache, middleware.NewHMACValidator(cfg.JWTSigningKey))
	h.Register(router)

	server := httpserver.New(cfg.Addr, router)
	group.Go(func() error {
		log.Info("server listening", "addr", cfg.Addr, "org", cfg.Organization, "quorum", quorum.RequiredRoles())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("shutting down")
		return server.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

// newStore selects the record store adapter: Postgres when a DSN is
// configured, the in-memory store otherwise.
func newStore(ctx context.Context, cfg config.Server, sink events.Sink) (ledger.Store, func(), error) {
	if cfg.PostgresDSN != "" {
		opts := []ledgerpg.Option{
			ledgerpg.WithDefaultIdentity(ledger.Identity{Organization: cfg.Organization}),
		}
		if sink != nil {
			opts = append(opts, ledgerpg.WithEventSink(sink))
		}
		pg, err := ledgerpg.Open(ctx, cfg.PostgresDSN, opts...)
		if err != nil {
			return nil, nil, err
		}
		return pg, func() { _ = pg.Close() }, nil
	}

	opts := []ledger.MemoryOption{
		ledger.WithDefaultIdentity(ledger.Identity{Organization: cfg.Organization}),
	}
	if sink != nil {
		opts = append(opts, ledger.WithEventSink(sink))
	}
	return ledger.NewMemoryStore(opts...), func() {}, nil
}

// parseQuorumRoles drops unknown role names; NewQuorum applies the default
// when nothing valid remains.
func parseQuorumRoles(raw []string) []models.PartyRole {
	out := make([]models.PartyRole, 0, len(raw))
	for _, r := range raw {
		role, err := models.ParsePartyRole(r)
		if err != nil {
			continue
		}
		out = append(out, role)
	}
	return out
}
