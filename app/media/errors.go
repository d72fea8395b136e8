package media

import "fmt"

type Stage string

const (
	StageDownload Stage = "download"
	StageDetect   Stage = "detect"
	StageDecode   Stage = "decode"
	StageEncode   Stage = "encode"
)

// Error reports a failed download, type detection or conversion. Callers
// degrade the item to a picture-less entry.
type Error struct {
	URL   string
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to %s media %s: %v", e.Stage, e.URL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
