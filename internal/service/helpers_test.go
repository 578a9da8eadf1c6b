package service

import (
	"bytes"
	"io"
	"log/slog"
	"time"

	"github.com/yanuaran892/perpusmpn1sedati/internal/config"
	"github.com/yanuaran892/perpusmpn1sedati/internal/domain"
)

func testConfig() *config.Config {
	return &config.Config{
		Business: config.BusinessConfig{
			MaxBorrowDays:       3,
			ExtensionDays:       3,
			MaxExtensions:       3,
			DefaultMaxLoans:     3,
			DefaultPageSize:     10,
			MaxPageSize:         100,
			ExportMaxRows:       5000,
			LibraryStatusTTL:    time.Minute,
			LibraryTimezoneName: "Asia/Jakarta",
		},
		Auth: config.AuthConfig{
			JWTSecret:  "test-secret",
			JWTIssuer:  "perpus-test",
			SessionTTL: time.Hour,
		},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

var testActor = domain.Actor{AdminID: 1, Username: "pustakawan"}
