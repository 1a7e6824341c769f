package engine

import (
	"io"
	"io/fs"
	"log/slog"
	"os"
)

// Loader returns the full text of a story file.
type Loader interface {
	Load(path string) ([]byte, error)
}

type LoaderFunc func(path string) ([]byte, error)

func (f LoaderFunc) Load(path string) ([]byte, error) {
	return f(path)
}

// FileLoader reads story files from disk.
var FileLoader Loader = LoaderFunc(os.ReadFile)

// FSLoader reads story files out of fsys.
func FSLoader(fsys fs.FS) Loader {
	return LoaderFunc(func(path string) ([]byte, error) {
		return fs.ReadFile(fsys, path)
	})
}

// NewLogger builds the engine's debug logger. Debug output is enabled by
// debug or by setting NARRATE_DEBUG.
func NewLogger(w io.Writer, debug bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if debug || os.Getenv("NARRATE_DEBUG") != "" {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}
