// Package logger provides centralized logging for the application.
// File: logger/logger.go
package logger

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

// ------------------- global loggers -------------------

// four logger levels accessible throughout the application
var (
	Info  *log.Logger
	Warn  *log.Logger
	Error *log.Logger
	Debug *log.Logger
)

// ------------------- logger initialization -------------------

// InitLogger creates or reinitializes the logging system. It:
// - Ensures `./logs` exists.
// - Creates a timestamped log file in `logs/`.
// - Writes logs to both the file and stdout.
// - Configures separate loggers (Info, Warn, Error, Debug) with consistent prefixes & flags.
func InitLogger() error {
	if err := os.MkdirAll("./logs", 0700); err != nil {
		return err
	}

	logFileName := filepath.Join("logs", time.Now().Format("2006-01-02_15-04-05")+".log")
	file, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) // #nosec
	if err != nil {
		return err
	}

	multiWriter := io.MultiWriter(os.Stdout, file)

	Info = log.New(multiWriter, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	Warn = log.New(multiWriter, "WARN: ", log.Ldate|log.Ltime|log.Lshortfile)
	Error = log.New(multiWriter, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	Debug = log.New(multiWriter, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
	return nil
}

// SetLogLevel adjusts the Debug logger depending on environment. Production
// discards debug output entirely; any other environment keeps it.
func SetLogLevel(env string) {
	if env == "production" {
		Debug.SetOutput(io.Discard)
	}
}

// init attempts to initialize the logger at package load time. If it fails,
// we fall back to the standard library logger for the fatal report because
// our own loggers are not ready yet.
func init() {
	if err := InitLogger(); err != nil {
		log.Fatalf("Failed to initialise custom logger: %v", err)
	}
}
