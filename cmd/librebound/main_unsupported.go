//go:build unix && !(cgo && (linux || freebsd))

package main

import (
	"os"

	"github.com/lanrat/rebound"
	"go.uber.org/zap"
)

func main() {
	rebound.NewLogger(os.Stderr).Fatal("librebound needs cgo on linux or freebsd", zap.Error(rebound.ErrUnsupported))
}
