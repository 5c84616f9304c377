// Package logging configures the process-wide standard logger.
package logging

import (
	"io"
	"log"
	"os"
)

// Init sends log output to stdout with microsecond timestamps
func Init() {
	InitWith(os.Stdout)
}

// InitWith is Init with an explicit destination
func InitWith(w io.Writer) {
	log.SetOutput(w)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}
