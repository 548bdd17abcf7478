package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

const (
	logDir      = "logs"
	logFileName = "rigid2d.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging routes the standard logger to logs/rigid2d.log when debug is
// set and discards it otherwise. A log over maxLogSize is rotated to .old
// first. The caller closes the returned file.
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "log dir: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}

	path := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		if err := os.Rename(path, path+".old"); err != nil {
			fmt.Fprintf(os.Stderr, "log rotate: %v\n", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log file: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}

	log.SetOutput(f)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	return f
}
