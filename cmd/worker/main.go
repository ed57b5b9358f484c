// Command worker runs the offchain worker standalone: a synthetic block
// ticker stands in for the host node's import events, keys are loaded from a
// keystore directory, and submissions land in an in-process transaction
// pool. This is the wiring used for local development and demos; inside a
// node the engine is subscribed to the node's own block event distributor
// instead.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgraph-io/badger/v2"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/oraclenet/offchain-worker/datasource"
	"github.com/oraclenet/offchain-worker/engine/worker"
	"github.com/oraclenet/offchain-worker/keystore"
	"github.com/oraclenet/offchain-worker/mempool"
	"github.com/oraclenet/offchain-worker/model/chain"
	"github.com/oraclenet/offchain-worker/module/counters"
	"github.com/oraclenet/offchain-worker/module/irrecoverable"
	"github.com/oraclenet/offchain-worker/module/metrics"
	"github.com/oraclenet/offchain-worker/module/util"
	"github.com/oraclenet/offchain-worker/state/protocol/events"
	bstorage "github.com/oraclenet/offchain-worker/storage/badger"
)

// Config holds the runner configuration, bound from flags and environment.
type Config struct {
	Endpoint      string        `mapstructure:"endpoint" validate:"required,url"`
	FetchTimeout  time.Duration `mapstructure:"fetch-timeout" validate:"required,gt=0"`
	KeystoreDir   string        `mapstructure:"keystore-dir" validate:"required,dir"`
	KeyTag        string        `mapstructure:"key-tag" validate:"required,len=4"`
	DataDir       string        `mapstructure:"data-dir" validate:"required"`
	BlockInterval time.Duration `mapstructure:"block-interval" validate:"required,gt=0"`
	MaxPipelines  int           `mapstructure:"max-pipelines" validate:"gte=0"`
	MetricsAddr   string        `mapstructure:"metrics-addr"`
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "block-triggered offchain worker submitting fetched datums as signed extrinsics",
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg Config
			if err := viper.Unmarshal(&cfg); err != nil {
				return fmt.Errorf("could not unmarshal config: %w", err)
			}
			if err := validator.New().Struct(cfg); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			return run(cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("endpoint", "https://api.diadata.org/v1/quotation/BTC", "URL of the external data source")
	flags.Duration("fetch-timeout", datasource.DefaultFetchTimeout, "deadline for one datum fetch")
	flags.String("keystore-dir", "keys", "directory holding <tag>_<name>.key files")
	flags.String("key-tag", "dia!", "application tag selecting signing keys")
	flags.String("data-dir", "data", "directory for the worker's progress database")
	flags.Duration("block-interval", 6*time.Second, "interval of the synthetic block ticker")
	flags.Int("max-pipelines", worker.DefaultMaxConcurrentPipelines, "maximum concurrent per-key pipelines")
	flags.String("metrics-addr", "", "address to serve prometheus metrics on (disabled when empty)")

	viper.SetEnvPrefix("OFFCHAIN_WORKER")
	viper.AutomaticEnv()
	if err := viper.BindPFlags(flags); err != nil {
		panic(err)
	}

	return cmd
}

func run(cfg Config) error {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	tag, err := chain.ParseKeyTag(cfg.KeyTag)
	if err != nil {
		return err
	}

	ks, err := keystore.LoadDir(log, cfg.KeystoreDir)
	if err != nil {
		if ks == nil {
			return err
		}
		// partial load: keep going with the keys that did parse
		log.Warn().Err(err).Msg("some key files could not be loaded")
	}

	db, err := badger.Open(badger.DefaultOptions(cfg.DataDir).WithLogger(nil))
	if err != nil {
		return fmt.Errorf("could not open progress database: %w", err)
	}
	defer db.Close()

	progress, err := counters.NewPersistentStrictMonotonicCounter(
		bstorage.NewConsumerProgress(db, "offchain_worker"), 0)
	if err != nil {
		return fmt.Errorf("could not restore worker progress: %w", err)
	}

	source, err := datasource.NewHTTPSource(log, datasource.Config{
		URL:              cfg.Endpoint,
		Timeout:          cfg.FetchTimeout,
		MaxResponseBytes: datasource.DefaultMaxResponseBytes,
	})
	if err != nil {
		return err
	}

	pool, err := mempool.NewPool(mempool.DefaultLimit, mempool.DefaultSeenWindow)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewWorkerCollector(registry)
	if cfg.MetricsAddr != "" {
		go serveMetrics(log, cfg.MetricsAddr, registry)
	}

	eng, err := worker.New(log, collector, ks, source, pool, pool,
		worker.Config{
			Tag:                    tag,
			MaxConcurrentPipelines: cfg.MaxPipelines,
		},
		worker.WithProcessedCounter(progress),
	)
	if err != nil {
		return fmt.Errorf("could not create worker engine: %w", err)
	}

	distributor := events.NewDistributor()
	distributor.AddConsumer(eng)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	signalerCtx, errChan := irrecoverable.WithSignaler(ctx)
	eng.Start(signalerCtx)
	if err := util.WaitClosed(ctx, eng.Ready()); err != nil {
		return fmt.Errorf("worker engine never became ready: %w", err)
	}
	log.Info().Str("tag", tag.String()).Msg("offchain worker started")

	go produceBlocks(ctx, distributor, cfg.BlockInterval, progress.Value())

	if err := util.WaitError(errChan, eng.Done()); err != nil {
		log.Error().Err(err).Msg("worker engine failed")
		cancel()
		<-eng.Done()
		return err
	}

	log.Info().Int("pending_extrinsics", pool.Size()).Msg("offchain worker stopped")
	return nil
}

// produceBlocks emits synthetic block import events at a fixed interval,
// standing in for the host node's finalization events.
func produceBlocks(ctx context.Context, distributor *events.Distributor, interval time.Duration, startHeight uint64) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	height := startHeight
	parentID := chain.ZeroID
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			height++
			header := &chain.Header{
				Height:    height,
				ParentID:  parentID,
				Timestamp: time.Now().UTC(),
			}
			parentID = header.ID()
			distributor.BlockFinalized(header)
		}
	}
}

func serveMetrics(log zerolog.Logger, addr string, registry *prometheus.Registry) {
	server := &http.Server{
		Addr:    addr,
		Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}
	log.Info().Str("addr", addr).Msg("serving metrics")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("metrics server failed")
	}
}
