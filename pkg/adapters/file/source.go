// Package file serves process definitions from a directory of BPMN documents.
package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/bpmnpath/pkg/bpmn"
	"github.com/aretw0/bpmnpath/pkg/domain"
	"github.com/fsnotify/fsnotify"
)

// Extensions are tried in order when resolving a key to a file.
// ".json" files hold a Camunda envelope, the others raw BPMN XML.
var Extensions = []string{".bpmn", ".bpmn20.xml", ".xml", ".json"}

// Source implements ports.DefinitionSource and ports.Watchable over a directory.
type Source struct {
	dir    string
	logger *slog.Logger
}

// New creates a Source rooted at dir.
func New(dir string, logger *slog.Logger) (*Source, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("definition directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("definition directory: %s is not a directory", abs)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Source{dir: abs, logger: logger}, nil
}

// Fetch reads the first file matching key and one of Extensions.
func (s *Source) Fetch(ctx context.Context, key string) (*domain.Definition, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return nil, fmt.Errorf("%w: invalid key %q", domain.ErrDefinitionNotFound, key)
	}

	for _, ext := range Extensions {
		path := filepath.Join(s.dir, key+ext)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		if ext == ".json" {
			def, err := bpmn.DecodeEnvelope(bytes.NewReader(data))
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			def.Key = key
			return def, nil
		}
		return &domain.Definition{ID: key, Key: key, XML: string(data)}, nil
	}

	return nil, fmt.Errorf("%w: %s", domain.ErrDefinitionNotFound, key)
}

// List returns the keys of every definition file in the directory.
func (s *Source) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.dir, err)
	}

	seen := make(map[string]bool)
	var keys []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if key, ok := keyOf(e.Name()); ok && !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Watch reports the key of every definition file written, created, removed or renamed.
func (s *Source) Watch(ctx context.Context) (<-chan string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", s.dir, err)
	}

	changes := make(chan string)
	go func() {
		defer close(changes)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
					!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
					continue
				}
				key, ok := keyOf(filepath.Base(event.Name))
				if !ok {
					continue
				}
				s.logger.Debug("definition changed", "key", key, "op", event.Op.String())
				select {
				case changes <- key:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warn("file watcher error", "err", err)
			}
		}
	}()

	return changes, nil
}

// String names the source for logs and metrics.
func (s *Source) String() string {
	return "file"
}

func keyOf(name string) (string, bool) {
	for _, ext := range Extensions {
		if strings.HasSuffix(name, ext) && len(name) > len(ext) {
			return strings.TrimSuffix(name, ext), true
		}
	}
	return "", false
}
