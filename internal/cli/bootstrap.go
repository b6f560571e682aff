package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/freddy-le-go/mockauth/internal/config"
	"github.com/freddy-le-go/mockauth/internal/filex"
	"github.com/freddy-le-go/mockauth/internal/kvstore"
	"github.com/freddy-le-go/mockauth/internal/logging"
	"github.com/freddy-le-go/mockauth/internal/mockapi"
	"github.com/freddy-le-go/mockauth/internal/session"
)

// Bootstrap assembles the full application from configuration: the blob
// store backend, the mock credential service seeded with demo data, the
// session store with its on-disk cookie jar, and the REPL app on top.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewDefault(os.Stdout)

	dataDir, err := filex.EnsureDataDir(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	kv, err := newBlobStore(ctx, cfg, dataDir)
	if err != nil {
		return nil, fmt.Errorf("blob store (%s): %w", cfg.StoreBackend, err)
	}

	svc := mockapi.NewService(kv, logger, cfg.SecretKey)
	if cfg.FastMode {
		svc.DisableLatency()
	}
	if err := svc.Init(ctx); err != nil {
		return nil, fmt.Errorf("seed data: %w", err)
	}

	jar := session.NewFileJar(filepath.Join(dataDir, "cookies.json"))
	store := session.NewStore(svc, jar, logger, func() {
		logger.Info(context.Background(), "session cleared")
	})

	return NewApp(cfg, store, svc), nil
}

func newBlobStore(ctx context.Context, cfg *config.Config, dataDir string) (kvstore.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		return kvstore.NewMemoryStore(), nil
	case config.BackendFile:
		return kvstore.NewFileStore(filepath.Join(dataDir, "blobs.json")), nil
	case config.BackendPostgres:
		return kvstore.NewPostgresStore(ctx, cfg.DatabaseDSN)
	case config.BackendS3:
		return kvstore.NewS3Store(ctx, kvstore.S3Config{
			RootUser:     cfg.S3RootUser,
			RootPassword: cfg.S3RootPassword,
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
		})
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.StoreBackend)
	}
}
