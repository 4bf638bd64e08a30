package internal

import (
	"bytes"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

var BufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer([]byte{})
	},
}

var discardLogger = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

// DiscardLogger returns a shared logger that drops everything written to it. Components fall back
// to it when no logger is configured.
func DiscardLogger() *logrus.Logger {
	return discardLogger
}
