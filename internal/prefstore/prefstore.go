// Package prefstore reads preference-style key/value documents. Documents
// are JSON; keys are dotted paths resolved with gjson. Everything here is
// read-only and guarded by hard size and count limits so a hostile or
// corrupted document can never balloon memory.
package prefstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/alexisbeaulieu97/shipshape/internal/logger"
	shiperrors "github.com/alexisbeaulieu97/shipshape/pkg/errors"
)

const (
	// MaxDocumentBytes is the hard ceiling on a single document. Larger
	// documents are rejected outright and treated as absent.
	MaxDocumentBytes = 10 << 20
	// MaxEntries caps how many entries a bulk load emits from one document.
	MaxEntries = 1000
	// MaxSources caps how many documents one audit may consult.
	MaxSources = 10
)

// Entry is one flattened key/value pair from a bulk load.
type Entry struct {
	Key   string
	Value string
}

// Store reads key/value documents from disk.
type Store struct {
	log *logger.Logger
}

// New creates a Store. A nil logger is replaced with a no-op one.
func New(log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{log: log.WithComponent("prefstore")}
}

// Lookup resolves a single dotted key in the document at path. The second
// return reports whether the key exists. Documents are re-read on every call;
// staleness damping belongs to the evaluation cache, not here.
func (s *Store) Lookup(path, key string) (string, bool, error) {
	data, err := s.readBounded(path)
	if err != nil {
		return "", false, err
	}

	result := gjson.GetBytes(data, key)
	if !result.Exists() {
		return "", false, nil
	}
	return result.String(), true, nil
}

// LoadDump flattens the document at path into key/value entries, nested
// objects joined with dots. At most MaxEntries entries are emitted; the
// boolean reports whether the document held more.
func (s *Store) LoadDump(path string) ([]Entry, bool, error) {
	data, err := s.readBounded(path)
	if err != nil {
		return nil, false, err
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, false, shiperrors.NewStoreError(path, fmt.Errorf("document root is not an object"))
	}

	entries := make([]Entry, 0, 64)
	truncated := flatten("", root, &entries)
	if truncated {
		s.log.WithFields(map[string]any{"source": path, "kept": MaxEntries}).Warn("value store truncated to entry limit")
	}

	return entries, truncated, nil
}

// readBounded reads the document while enforcing the size cap. The stat-based
// check runs before the read so an oversized file is never pulled into memory.
func (s *Store) readBounded(path string) ([]byte, error) {
	path = expandHome(path)
	info, err := os.Stat(path)
	if err != nil {
		return nil, shiperrors.NewStoreError(path, err)
	}
	if info.Size() > MaxDocumentBytes {
		return nil, shiperrors.NewStoreError(path, fmt.Errorf("document is %d bytes, limit is %d", info.Size(), MaxDocumentBytes))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, shiperrors.NewStoreError(path, err)
	}
	if !gjson.ValidBytes(data) {
		return nil, shiperrors.NewStoreError(path, fmt.Errorf("document is not valid JSON"))
	}

	return data, nil
}

// flatten walks the object depth-first in document order, emitting scalar
// leaves. Arrays are kept whole as their raw JSON text. Returns true once the
// entry cap stops the walk.
func flatten(prefix string, value gjson.Result, out *[]Entry) bool {
	truncated := false
	value.ForEach(func(key, child gjson.Result) bool {
		if len(*out) >= MaxEntries {
			truncated = true
			return false
		}

		name := key.String()
		if prefix != "" {
			name = prefix + "." + name
		}

		if child.IsObject() {
			if flatten(name, child, out) {
				truncated = true
				return false
			}
			return true
		}

		*out = append(*out, Entry{Key: name, Value: child.String()})
		return true
	})
	return truncated
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
