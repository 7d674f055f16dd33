package logging

import (
	"io"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Output returns where log lines go: a size-rotated file when path is set,
// stderr otherwise. The caller closes it on shutdown.
func Output(path string) io.WriteCloser {
	if path == "" {
		return nopCloser{os.Stderr}
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		Compress:   true,
	}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
