package tasks

import (
	"cmp"
	"context"
	"errors"
	"fmt"

	"github.com/lysyi3m/fvwm-rss/app/config"
	"github.com/lysyi3m/fvwm-rss/app/feed"
	"github.com/lysyi3m/fvwm-rss/app/media"
	"github.com/lysyi3m/fvwm-rss/app/menu"
	log "github.com/sirupsen/logrus"
)

// Bounds are the scale ceilings for the two picture placements
type Bounds struct {
	Picture   media.Bound // enclosures, drawn above the label
	Thumbnail media.Bound // thumbnails and embedded images, drawn left of it
}

// Pipeline holds the collaborators shared by every feed of a run
type Pipeline struct {
	Fetcher   FeedFetcher
	Parser    FeedParser
	Extractor ItemExtractor
	Media     media.Source
	Renderer  MenuRenderer
	Output    Output
	Bounds    Bounds
	Limit     int
}

// BuildMenuTask renders one feed into the run's output. Fetch and parse
// failures become a placeholder entry and media failures drop the picture;
// neither is returned as an error.
type BuildMenuTask struct {
	Task
	FeedConfig config.FeedConfig
	pipeline   *Pipeline
}

func NewBuildMenuTask(feedConfig config.FeedConfig, pipeline *Pipeline) *BuildMenuTask {
	return &BuildMenuTask{
		Task:       NewTask(TaskTypeBuildMenu, feedConfig.Menu),
		FeedConfig: feedConfig,
		pipeline:   pipeline,
	}
}

func (t *BuildMenuTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	data, err := t.pipeline.Fetcher.Fetch(ctx, t.FeedConfig.URL)
	if err != nil {
		return t.fail(ctx, err)
	}

	doc, err := t.pipeline.Parser.Run(data)
	if err != nil {
		return t.fail(ctx, err)
	}

	items := t.pipeline.Extractor.Run(doc, t.FeedConfig.Filters)

	entries := make([]menu.Entry, 0, len(items))
	pictures := 0
	for _, item := range items {
		entry, err := t.entry(ctx, item)
		if err != nil {
			return err
		}
		if entry.Picture != "" {
			pictures++
		}
		entries = append(entries, entry)
	}

	title := cmp.Or(t.FeedConfig.Title, doc.Title, t.FeedConfig.Menu)

	lines := t.pipeline.Renderer.Lines(menu.Menu{
		ID:      t.FeedConfig.Menu,
		Parent:  t.FeedConfig.Parent,
		Title:   feed.Title(title, t.pipeline.Limit),
		Entries: entries,
	})
	if err := t.pipeline.Output.Append(lines...); err != nil {
		return fmt.Errorf("failed to write menu: %w", err)
	}

	log.WithFields(log.Fields{
		"type":     "BuildMenu",
		"feed":     t.FeedName,
		"kind":     doc.Kind,
		"duration": t.GetDuration(),
		"total":    len(doc.Items),
		"entries":  len(entries),
		"pictures": pictures,
	}).Info("Task completed")

	return nil
}

// entry converts the item's picture if it has one. Only cancellation is
// returned; conversion errors leave the entry without a picture.
func (t *BuildMenuTask) entry(ctx context.Context, item feed.Item) (menu.Entry, error) {
	entry := menu.Entry{Title: item.Title, Link: item.Link}
	if item.Media == nil {
		return entry, nil
	}

	bound, placement := t.placement(item.Media.Source)

	asset, err := t.pipeline.Media.Convert(ctx, item.Media.URL, bound)
	if err != nil {
		if ctx.Err() != nil {
			return entry, ctx.Err()
		}
		log.WithFields(log.Fields{
			"feed":   t.FeedName,
			"media":  item.Media.URL,
			"source": item.Media.Source,
			"error":  err,
		}).Warn("Media unavailable, rendering entry without picture")
		return entry, nil
	}

	entry.Picture = asset.Path
	entry.Placement = placement
	return entry, nil
}

func (t *BuildMenuTask) placement(source feed.MediaSource) (media.Bound, menu.Placement) {
	if source == feed.SourceEnclosure {
		return t.pipeline.Bounds.Picture, menu.PlacementAbove
	}
	return t.pipeline.Bounds.Thumbnail, menu.PlacementLeft
}

func (t *BuildMenuTask) fail(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	fields := log.Fields{"feed": t.FeedName, "url": t.FeedConfig.URL, "error": err}

	var fetchErr *feed.FetchError
	var parseErr *feed.ParseError
	switch {
	case errors.As(err, &fetchErr):
		log.WithFields(fields).Warn("Failed to fetch feed")
	case errors.As(err, &parseErr):
		log.WithFields(fields).Warn("Failed to parse feed")
	default:
		log.WithFields(fields).Warn("Failed to process feed")
	}

	if err := t.pipeline.Output.Append(t.pipeline.Renderer.ErrorLines(t.FeedConfig.Menu)...); err != nil {
		return fmt.Errorf("failed to write placeholder: %w", err)
	}
	return nil
}
