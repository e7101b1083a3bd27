package logger

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

type requestIDKey struct{}

var logger = log.New()

func init() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Info("Failed get current working directory")
		log.Fatal(err)
	}
	env := os.Getenv("ENV")
	formatTime := time.Now().Format("2006-01-02")
	// stdout suits systemd/docker; LOG_TO_FILE=true forces file logging.
	logger.Out = os.Stdout
	if os.Getenv("LOG_TO_FILE") == "true" {
		logsDir := filepath.Join(cwd, "logs")
		if mkErr := os.MkdirAll(logsDir, 0o755); mkErr != nil {
			log.Warnf("Failed to create logs directory %s: %v, falling back to stdout", logsDir, mkErr)
		} else {
			filePath := filepath.Join(logsDir, fmt.Sprintf("%s%s.log", formatTime, env))
			f, openErr := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
			if openErr != nil {
				log.Warnf("Failed to open log file %s: %v, falling back to stdout", filePath, openErr)
			} else {
				logger.Out = f
			}
		}
	}

	logger.Formatter = &log.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
	}
	logger.SetLevel(levelFor(env, os.Getenv("LOG_LEVEL")))
}

func levelFor(env, configured string) log.Level {
	if configured != "" {
		if lvl, err := log.ParseLevel(strings.ToLower(configured)); err == nil {
			return lvl
		}
	}
	if env == "prod" || env == "production" {
		return log.InfoLevel
	}
	return log.DebugLevel
}

// SetLevel changes the level after configuration is loaded
func SetLevel(level string) {
	if lvl, err := log.ParseLevel(strings.ToLower(level)); err == nil {
		logger.SetLevel(lvl)
	}
}

func GetLogger() *log.Entry {
	function, file, line, _ := runtime.Caller(1)
	return withCaller(function, file, line)
}

// WithContext is GetLogger plus the request id stored in ctx, if any
func WithContext(ctx context.Context) *log.Entry {
	function, file, line, _ := runtime.Caller(1)
	entry := withCaller(function, file, line)
	if id := RequestIDFromContext(ctx); id != "" {
		entry = entry.WithField("requestId", id)
	}
	return entry
}

// ContextWithRequestID returns a copy of ctx carrying id
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request id stored by ContextWithRequestID
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func withCaller(function uintptr, file string, line int) *log.Entry {
	name := ""
	if functionObject := runtime.FuncForPC(function); functionObject != nil {
		name = functionObject.Name()
	}
	return logger.WithFields(log.Fields{
		"function": name,
		"file":     file,
		"line":     line,
	})
}
