package media

import (
	"context"
	"os"

	"github.com/lysyi3m/fvwm-rss/app/database"
	log "github.com/sirupsen/logrus"
)

// Source produces a converted asset for a media URL
type Source interface {
	Convert(ctx context.Context, url string, bound Bound) (*Asset, error)
}

var (
	_ Source = (*Converter)(nil)
	_ Source = (*CachedConverter)(nil)
)

// CachedConverter reuses PNGs converted by earlier runs. Cache failures are
// logged and never fail a conversion.
type CachedConverter struct {
	next Source
	repo database.MediaRepository
}

func NewCachedConverter(next Source, repo database.MediaRepository) *CachedConverter {
	return &CachedConverter{next: next, repo: repo}
}

func (c *CachedConverter) Convert(ctx context.Context, url string, bound Bound) (*Asset, error) {
	if asset := c.lookup(url, bound); asset != nil {
		return asset, nil
	}

	asset, err := c.next.Convert(ctx, url, bound)
	if err != nil {
		return nil, err
	}

	if err := c.repo.Put(url, bound.String(), asset.Path, asset.MIME); err != nil {
		log.WithFields(log.Fields{"url": url, "error": err}).Warn("Failed to cache converted media")
	}

	return asset, nil
}

func (c *CachedConverter) lookup(url string, bound Bound) *Asset {
	cached, err := c.repo.Get(url, bound.String())
	if err != nil {
		log.WithFields(log.Fields{"url": url, "error": err}).Warn("Failed to read media cache")
		return nil
	}
	if cached == nil {
		return nil
	}

	if _, err := os.Stat(cached.Path); err != nil {
		log.WithFields(log.Fields{"url": url, "path": cached.Path}).Debug("Cached media file is gone, dropping entry")
		if err := c.repo.Delete(url, bound.String()); err != nil {
			log.WithFields(log.Fields{"url": url, "error": err}).Warn("Failed to drop stale media cache entry")
		}
		return nil
	}

	log.WithFields(log.Fields{"url": url, "path": cached.Path}).Debug("Media cache hit")
	return &Asset{Path: cached.Path, MIME: cached.MIME, Bound: bound}
}
