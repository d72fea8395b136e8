package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/huandu/go-sqlbuilder"
)

const mediaAssetsTable = "media_assets"

var _ MediaRepository = (*mediaRepository)(nil)

type mediaRepository struct {
	db *DB
}

func NewMediaRepository(db *DB) MediaRepository {
	return &mediaRepository{db: db}
}

// Get returns the cached asset for url at bound, or nil when there is none
func (r *mediaRepository) Get(url, bound string) (*MediaAsset, error) {
	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select("url", "bound", "path", "mime", "created_at").
		From(mediaAssetsTable).
		Where(sb.Equal("url", url), sb.Equal("bound", bound))
	query, args := sb.Build()

	var asset MediaAsset
	var createdAt int64

	err := r.db.QueryRow(query, args...).Scan(&asset.URL, &asset.Bound, &asset.Path, &asset.MIME, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get media asset: %w", err)
	}

	asset.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &asset, nil
}

// Put stores the asset, replacing any earlier entry for the same url and bound.
func (r *mediaRepository) Put(url, bound, path, mime string) error {
	ib := sqlbuilder.SQLite.NewInsertBuilder()
	ib.ReplaceInto(mediaAssetsTable).
		Cols("url", "bound", "path", "mime", "created_at").
		Values(url, bound, path, mime, time.Now().UTC().Unix())
	query, args := ib.Build()

	if _, err := r.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to store media asset: %w", err)
	}
	return nil
}

func (r *mediaRepository) Delete(url, bound string) error {
	db := sqlbuilder.SQLite.NewDeleteBuilder()
	db.DeleteFrom(mediaAssetsTable).Where(db.Equal("url", url), db.Equal("bound", bound))
	query, args := db.Build()

	if _, err := r.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to delete media asset: %w", err)
	}
	return nil
}

func (r *mediaRepository) Count() (int, error) {
	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select("COUNT(*)").From(mediaAssetsTable)
	query, args := sb.Build()

	var count int
	if err := r.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count media assets: %w", err)
	}
	return count, nil
}
