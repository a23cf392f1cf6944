package config

import (
	"strconv"
	"strings"
	"time"
)

// Port is the TCP port the web frontend listens on.
func Port() string {
	return GetEnv("PORT", "3000")
}

// LogFile is where the JSON log stream is written.
func LogFile() string {
	return GetEnv("LOG_FILE", "parewa.log")
}

// DBFile is the SQLite journal location.
func DBFile() string {
	return GetEnv("DB_FILE", "parewa.db")
}

// ServerReadTimeout returns the maximum duration for reading the entire request, including the body.
func ServerReadTimeout() time.Duration {
	return MustParseDuration("SERVER_READ_TIMEOUT", "10s")
}

// ServerReadHeaderTimeout returns the amount of time allowed to read request headers.
func ServerReadHeaderTimeout() time.Duration {
	return MustParseDuration("SERVER_READ_HEADER_TIMEOUT", "5s")
}

// ServerWriteTimeout returns the maximum duration before timing out writes of the response.
// It must stay above APITimeout so a slow backend still gets a rendered answer.
func ServerWriteTimeout() time.Duration {
	return MustParseDuration("SERVER_WRITE_TIMEOUT", "30s")
}

// ServerIdleTimeout returns the maximum amount of time to wait for the next request when keep-alives are enabled.
func ServerIdleTimeout() time.Duration {
	return MustParseDuration("SERVER_IDLE_TIMEOUT", "60s")
}

// ShutdownTimeout bounds graceful shutdown.
func ShutdownTimeout() time.Duration {
	return MustParseDuration("SERVER_SHUTDOWN_TIMEOUT", "10s")
}

// MaxRequestBodyBytes returns the maximum allowed size of incoming request bodies.
// Supports raw integers (bytes) or human-friendly values like "64KB", "1MB".
func MaxRequestBodyBytes() int64 {
	n, err := parseBytes(GetEnv("MAX_REQUEST_BODY_BYTES", "64KB"))
	if err != nil || n <= 0 {
		return 64 << 10
	}
	return n
}

// JournalWorkerCount controls the number of journal writers.
func JournalWorkerCount() int {
	return parseIntEnv("JOURNAL_WORKER_COUNT", 2)
}

// WorkerQueueSize controls the queue size of the journal pool.
func WorkerQueueSize() int {
	return parseIntEnv("WORKER_QUEUE_SIZE", 1024)
}

func parseBytes(s string) (int64, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	mult := int64(1)
	switch {
	case strings.HasSuffix(s, "KB"):
		mult = 1 << 10
		s = strings.TrimSuffix(s, "KB")
	case strings.HasSuffix(s, "MB"):
		mult = 1 << 20
		s = strings.TrimSuffix(s, "MB")
	case strings.HasSuffix(s, "GB"):
		mult = 1 << 30
		s = strings.TrimSuffix(s, "GB")
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	return int64(n * float64(mult)), nil
}
