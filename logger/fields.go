package logger

import (
	"encoding/hex"
	"log/slog"
	"time"
)

// Field helpers for structured logging
var (
	String = slog.String
	Int    = slog.Int
	Int64  = slog.Int64
	Uint64 = slog.Uint64
	Bool   = slog.Bool
	Any    = slog.Any

	Duration = func(key string, d time.Duration) slog.Attr {
		return slog.String(key, d.String())
	}

	ErrorField = func(err error) slog.Attr {
		if err == nil {
			return slog.String("error", "<nil>")
		}
		return slog.String("error", err.Error())
	}

	// Bytes logs raw input as hex so captured keys stay copy-pasteable.
	Bytes = func(key string, b []byte) slog.Attr {
		return slog.String(key, hex.EncodeToString(b))
	}

	Component = func(name string) slog.Attr {
		return slog.String("component", name)
	}

	Operation = func(name string) slog.Attr {
		return slog.String("operation", name)
	}
)
