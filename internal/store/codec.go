package store

import (
	"encoding/json"
	"errors"
	"log/slog"
)

// Collection keys.
const (
	KeyNotes        = "notes"
	KeyEvents       = "events"
	KeyTransactions = "transactions"
	KeyPreferences  = "preferences"
)

// Load decodes the document stored under key. A missing or unreadable
// document yields def; the failure is logged and never returned.
func Load[T any](b Backend, key string, def T, log *slog.Logger) T {
	if log == nil {
		log = slog.Default()
	}
	data, err := b.Read(key)
	if errors.Is(err, ErrNotFound) {
		log.Debug("no stored document, using default", "key", key)
		return def
	}
	if err != nil {
		log.Warn("read failed, using default", "key", key, "err", err)
		return def
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		log.Warn("corrupt document, using default", "key", key, "err", err)
		return def
	}
	return v
}

// Save replaces the whole document under key. Errors are logged, not returned.
func Save(b Backend, key string, v any, log *slog.Logger) {
	if log == nil {
		log = slog.Default()
	}
	data, err := json.Marshal(v)
	if err != nil {
		log.Error("encode document", "key", key, "err", err)
		return
	}
	if err := b.Write(key, data); err != nil {
		log.Error("write document", "key", key, "err", err)
		return
	}
	log.Debug("saved document", "key", key, "bytes", len(data))
}
