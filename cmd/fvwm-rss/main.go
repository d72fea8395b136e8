package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/lysyi3m/fvwm-rss/app/cfg"
	"github.com/lysyi3m/fvwm-rss/app/config"
	"github.com/lysyi3m/fvwm-rss/app/database"
	"github.com/lysyi3m/fvwm-rss/app/feed"
	"github.com/lysyi3m/fvwm-rss/app/media"
	"github.com/lysyi3m/fvwm-rss/app/menu"
	"github.com/lysyi3m/fvwm-rss/app/sink"
	"github.com/lysyi3m/fvwm-rss/app/tasks"
	log "github.com/sirupsen/logrus"
)

func main() {
	// stdout may carry directives in --print mode
	log.SetOutput(os.Stderr)
	log.SetLevel(log.InfoLevel)

	appConfig, err := cfg.Load(os.Args[1:])
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}
	if appConfig == nil {
		// Help was shown
		return
	}

	if appConfig.Debug {
		log.SetLevel(log.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, appConfig); err != nil {
		stop()
		log.WithError(err).Fatal("Failed to build menus")
	}
}

func run(ctx context.Context, appConfig *cfg.Cfg) error {
	bounds, err := parseBounds(appConfig)
	if err != nil {
		return err
	}

	feeds, err := resolveFeeds(appConfig)
	if err != nil {
		return err
	}
	if len(feeds) == 0 {
		return fmt.Errorf("no enabled feeds to process")
	}

	log.WithFields(log.Fields{
		"version": appConfig.Version,
		"feeds":   len(feeds),
	}).Debug("Configuration loaded")

	batch, err := sink.Open(appConfig.TmpDir)
	if err != nil {
		return fmt.Errorf("failed to open output: %w", err)
	}
	defer batch.Close()

	httpClient := &http.Client{Timeout: appConfig.Timeout}

	converter, closeCache, err := newMediaSource(httpClient, appConfig, batch.MediaDir())
	if err != nil {
		return err
	}
	defer closeCache()

	pipeline := &tasks.Pipeline{
		Fetcher:   feed.NewFetcher(httpClient, appConfig.UserAgent),
		Parser:    feed.NewParser(),
		Extractor: feed.NewExtractor(appConfig.Limit),
		Media:     converter,
		Renderer:  menu.NewRenderer(appConfig.Browser, appConfig.BrowserOption),
		Output:    batch,
		Bounds:    bounds,
		Limit:     appConfig.Limit,
	}

	if err := tasks.NewRunner(pipeline).Run(ctx, feeds); err != nil {
		// Nothing useful was loaded; drop the partial batch.
		batch.Close()
		os.RemoveAll(batch.Dir())
		return fmt.Errorf("failed to process feeds: %w", err)
	}

	var loader sink.Loader
	if appConfig.Print {
		loader = sink.NewPrintLoader(os.Stdout, appConfig.CleanupDelay)
	} else {
		loader = sink.NewFvwmLoader(appConfig.FvwmCommand, appConfig.CleanupDelay)
	}

	if err := batch.Commit(ctx, loader); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"feeds": len(feeds),
		"lines": batch.Lines(),
		"path":  batch.Path(),
	}).Info("Menus loaded")

	return nil
}

func parseBounds(appConfig *cfg.Cfg) (tasks.Bounds, error) {
	picture, err := media.ParseBound(appConfig.Scale)
	if err != nil {
		return tasks.Bounds{}, fmt.Errorf("failed to parse scale: %w", err)
	}
	thumbnail, err := media.ParseBound(appConfig.ThumbScale)
	if err != nil {
		return tasks.Bounds{}, fmt.Errorf("failed to parse thumbnail scale: %w", err)
	}
	return tasks.Bounds{Picture: picture, Thumbnail: thumbnail}, nil
}

func resolveFeeds(appConfig *cfg.Cfg) ([]config.FeedConfig, error) {
	var file *config.FeedsFile
	if appConfig.ConfigFile != "" {
		loaded, err := config.NewLoader(appConfig.ConfigFile).Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load feeds file: %w", err)
		}
		file = loaded
	}

	overrides := config.Overrides{
		Title:  appConfig.Title,
		Menu:   appConfig.Menu,
		Parent: appConfig.Parent,
	}
	return config.Resolve(appConfig.URLs, overrides, file), nil
}

// newMediaSource converts into the batch directory, or into a persistent
// directory next to the cache database when --cache is set. The returned
// func releases the database.
func newMediaSource(httpClient *http.Client, appConfig *cfg.Cfg, batchMediaDir string) (media.Source, func(), error) {
	if appConfig.CachePath == "" {
		return media.NewConverter(httpClient, appConfig.UserAgent, batchMediaDir), func() {}, nil
	}

	db, err := database.NewConnection(appConfig.CachePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open media cache: %w", err)
	}

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to migrate media cache: %w", err)
	}

	mediaDir := filepath.Join(filepath.Dir(appConfig.CachePath), "media")
	if err := os.MkdirAll(mediaDir, 0o755); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to create media cache directory: %w", err)
	}

	repo := database.NewMediaRepository(db)
	if count, err := repo.Count(); err == nil {
		log.WithFields(log.Fields{
			"path":    appConfig.CachePath,
			"version": version,
			"dirty":   dirty,
			"entries": count,
		}).Debug("Media cache opened")
	}

	converter := media.NewCachedConverter(media.NewConverter(httpClient, appConfig.UserAgent, mediaDir), repo)

	return converter, func() {
		if err := db.Close(); err != nil {
			log.WithError(err).Error("Failed to close media cache")
		}
	}, nil
}
