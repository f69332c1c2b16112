// Command finapp manages the person registry from the terminal. It runs the
// same application service as the REST server over any repository variant.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	personapp "github.com/finapp2p/backend/internal/application/person"
	"github.com/finapp2p/backend/internal/domain/person"
	"github.com/finapp2p/backend/internal/infrastructure/cache"
	"github.com/finapp2p/backend/internal/infrastructure/config"
	"github.com/finapp2p/backend/internal/infrastructure/logger"
	"github.com/finapp2p/backend/internal/infrastructure/persistence"
	"github.com/finapp2p/backend/internal/infrastructure/registry"
	"github.com/finapp2p/backend/internal/infrastructure/remote"
	"github.com/finapp2p/backend/internal/infrastructure/storage"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	storeMemory = "memory"
	storeAPI    = "api"
)

func main() {
	os.Exit(run())
}

// run executes one command and returns the process exit status. Deferred
// cleanup happens before main exits.
func run() int {
	var (
		store    string
		logLevel string
	)
	flag.StringVar(&store, "store", storeMemory, "Repository: memory, file, redis, s3 or api")
	flag.StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() == 0 {
		printUsage()
		return 2
	}

	logCfg := logger.DefaultConfig()
	logCfg.Level = logLevel
	logCfg.Output = "stderr"
	log, err := logger.New(logCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load configuration", zap.Error(err))
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := openRepository(ctx, store, cfg, log)
	if err != nil {
		log.Error("Failed to open repository", zap.String("store", store), zap.Error(err))
		return 1
	}
	defer closeRepo()

	svc := personapp.NewPersonService(repo, registry.NewLookup(cfg.Registry, nil, log), log)
	seeder := personapp.NewDemoSeeder(repo, log)

	// A memory store starts empty on every run
	if store == storeMemory {
		if _, err := seeder.EnsureDemoData(ctx); err != nil {
			log.Error("Failed to seed demo data", zap.Error(err))
			return 1
		}
	}

	a := &app{service: svc, seeder: seeder, out: os.Stdout}
	if err := a.run(ctx, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return exitCode(err)
	}
	return 0
}

// openRepository builds the repository variant named by store
func openRepository(ctx context.Context, store string, cfg *config.Config, log *zap.Logger) (person.Repository, func(), error) {
	noop := func() {}

	switch store {
	case storeMemory:
		return persistence.NewMemoryPersonRepository(), noop, nil

	case storeAPI:
		return remote.NewPersonRepository(cfg.Remote, remote.WithLogger(log)), noop, nil

	case config.StorageFile, config.StorageRedis, config.StorageS3:
		storageCfg := cfg.Storage
		storageCfg.Backend = store

		closer := noop
		var client *redis.Client
		if store == config.StorageRedis {
			c, err := cache.NewRedisClient(ctx, cfg.Redis)
			if err != nil {
				return nil, nil, err
			}
			client = c
			closer = func() { _ = c.Close() }
		}

		blobs, err := storage.NewBlobStore(ctx, &storageCfg, client, log)
		if err != nil {
			closer()
			return nil, nil, err
		}
		opts := []persistence.SnapshotOption{persistence.WithSnapshotLogger(log)}
		if storageCfg.Key != "" {
			opts = append(opts, persistence.WithSnapshotKey(storageCfg.Key))
		}
		return persistence.NewSnapshotPersonRepository(blobs, opts...), closer, nil

	default:
		return nil, nil, fmt.Errorf("unknown store %q", store)
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `FINAPP2P registry client

Usage:
  finapp [flags] <command> [arguments]

Commands:
  seed                                  Insert the demo records into an empty store
  list [-q text] [-type pf,pj] [-status active,inactive] [-role r] [-document d]
  show <id>
  create -type pf|pj -name <name> [-document d] [-email e]
  toggle <id>                           Flip the active flag
  delete <id>
  lookup [-save] <cnpj>                 Query the CNPJ registry, optionally saving the company

Flags:
  -store string       memory, file, redis, s3 or api (default: memory)
  -log-level string   debug, info, warn, error (default: warn)

Configuration is read from config.toml and FINAPP_* environment variables.
`)
}
