package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aleister1102/snapgallery/internal/config"
	"github.com/aleister1102/snapgallery/internal/datastore"
	"github.com/aleister1102/snapgallery/internal/gallery"
	"github.com/aleister1102/snapgallery/internal/logger"
	"github.com/aleister1102/snapgallery/internal/snapdir"
	"github.com/aleister1102/snapgallery/internal/snapshot"
	"github.com/aleister1102/snapgallery/internal/web"
	"github.com/rs/zerolog"
)

const janitorInterval = time.Hour

// cursorStore is what the service and janitor need from a backend.
type cursorStore interface {
	gallery.CursorStore
	datastore.CursorPruner
	io.Closer
}

func main() {
	flags := ParseFlags()

	bootLogger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	gCfg, err := config.LoadGlobalConfig(flags.GlobalConfigFile, bootLogger)
	if err != nil {
		log.Fatalf("[FATAL] Main: Could not load global config using path '%s': %v", flags.GlobalConfigFile, err)
	}
	if flags.ListenAddr != "" {
		gCfg.ServerConfig.ListenAddr = flags.ListenAddr
	}

	// The snapshot dir may not exist yet on a fresh install.
	if err := os.MkdirAll(gCfg.GalleryConfig.SnapshotDir, 0755); err != nil {
		log.Fatalf("[FATAL] Main: Could not create snapshot directory '%s': %v", gCfg.GalleryConfig.SnapshotDir, err)
	}

	if err := config.ValidateConfig(gCfg); err != nil {
		log.Fatalf("[FATAL] Main: Configuration validation failed: %v", err)
	}

	appLogger, err := logger.NewLoggerBuilder().WithConfig(gCfg.LogConfig).Build()
	if err != nil {
		log.Fatalf("[FATAL] Main: Could not initialize logger: %v", err)
	}
	zLogger := *appLogger.GetZerolog()
	zLogger.Info().Msg("Logger initialized successfully.")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, gCfg, zLogger)
	stop()

	if closeErr := appLogger.Close(); closeErr != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] Main: Failed to close log files: %v\n", closeErr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] Main: %v\n", err)
		os.Exit(1)
	}
}

// run wires the gallery and serves it until ctx is cancelled.
func run(ctx context.Context, gCfg *config.GlobalConfig, zLogger zerolog.Logger) error {
	galleryCfg := gCfg.GalleryConfig

	loc, err := galleryCfg.Location()
	if err != nil {
		return err
	}
	window, err := galleryCfg.Window()
	if err != nil {
		return err
	}

	var serviceOpts []gallery.ServiceOption
	fixedNow, pinned, err := galleryCfg.FixedNowTime(loc)
	if err != nil {
		return err
	}
	if pinned {
		zLogger.Warn().Time("now", fixedNow).Msg("Clock pinned by gallery_config.fixed_now")
		serviceOpts = append(serviceOpts, gallery.WithClock(func() time.Time { return fixedNow }))
	} else {
		serviceOpts = append(serviceOpts, gallery.WithClock(func() time.Time { return time.Now().In(loc) }))
	}

	dirLister := snapdir.NewDirLister(galleryCfg.SnapshotDir, zLogger)
	var lister gallery.Lister = dirLister
	if galleryCfg.WatchDirectory {
		cached := snapdir.NewCachedLister(dirLister, zLogger)
		cached.Start(ctx)
		defer func() {
			if err := cached.Close(); err != nil {
				zLogger.Warn().Err(err).Msg("Failed to stop directory watcher")
			}
		}()
		lister = cached
	}

	store, err := newCursorStore(gCfg.SessionStoreConfig, loc, zLogger)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			zLogger.Warn().Err(err).Msg("Failed to close cursor store")
		}
	}()

	locks := datastore.NewSessionMutexManager(true, zLogger)

	paginator, err := gallery.NewPaginator(
		gallery.Settings{
			PageSize:       galleryCfg.PageSize,
			RowWidth:       galleryCfg.RowWidth,
			ImageURLPrefix: web.SnapshotURLPrefix,
		},
		window,
		snapshot.NewSampler(galleryCfg.TimeResolutions),
		snapshot.NewEnumerator(galleryCfg.ImageExtension, loc),
		lister,
		zLogger,
	)
	if err != nil {
		return err
	}

	service, err := gallery.NewService(paginator, store, locks, galleryCfg.DefaultResolution, zLogger, serviceOpts...)
	if err != nil {
		return err
	}

	renderer, err := web.NewRenderer(gCfg.ServerConfig.TemplateDir, zLogger)
	if err != nil {
		return err
	}

	janitor := datastore.NewJanitor(store, locks, gCfg.SessionStoreConfig.SessionTTL(), janitorInterval, zLogger)
	janitorCtx, stopJanitor := context.WithCancel(ctx)
	janitorDone := make(chan struct{})
	go func() {
		defer close(janitorDone)
		janitor.Run(janitorCtx)
	}()
	defer func() {
		stopJanitor()
		<-janitorDone
	}()

	zLogger.Info().
		Str("snapshot_dir", galleryCfg.SnapshotDir).
		Str("window", window.String()).
		Dur("window_length", window.Duration()).
		Str("time_zone", loc.String()).
		Ints("resolutions", galleryCfg.TimeResolutions).
		Str("store", gCfg.SessionStoreConfig.Driver).
		Msg("Gallery configured")

	server := web.NewServer(gCfg.ServerConfig, gCfg.SessionStoreConfig, galleryCfg.SnapshotDir, service, renderer, zLogger)
	return server.Start(ctx)
}

func newCursorStore(cfg config.SessionStoreConfig, loc *time.Location, zLogger zerolog.Logger) (cursorStore, error) {
	switch cfg.Driver {
	case config.StoreDriverMemory:
		zLogger.Info().Msg("Using in-memory session store; sessions reset on restart")
		return datastore.NewMemoryCursorStore(), nil
	case config.StoreDriverSQLite:
		store, err := datastore.NewSQLiteCursorStore(cfg.SQLitePath, loc, zLogger)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown session store driver %q", cfg.Driver)
	}
}
