package database

type MediaRepository interface {
	Get(url, bound string) (*MediaAsset, error)
	Put(url, bound, path, mime string) error
	Delete(url, bound string) error
	Count() (int, error)
}
