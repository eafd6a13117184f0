package rules

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Repository loads variants by name and caches them
// Cached rules are read-only and safe to share between games
type Repository struct {
	fsys   fs.FS
	logger logrus.FieldLogger

	mu    sync.RWMutex
	cache map[string]*Rules
}

// NewRepository returns a repository that reads <name>.json files from fsys
func NewRepository(logger logrus.FieldLogger, fsys fs.FS) *Repository {
	return &Repository{
		fsys:   fsys,
		logger: logger,
		cache:  make(map[string]*Rules),
	}
}

// GetOrLoad returns the cached variant, loading it on first use
func (r *Repository) GetOrLoad(name string) (*Rules, error) {
	r.mu.RLock()
	rules, ok := r.cache[name]
	r.mu.RUnlock()
	if ok {
		return rules, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// another caller may have loaded it while we waited
	if rules, ok := r.cache[name]; ok {
		return rules, nil
	}

	if strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("invalid variant name: %s", name)
	}

	data, err := fs.ReadFile(r.fsys, name+".json")
	if err != nil {
		return nil, fmt.Errorf("could not load variant %s: %w", name, err)
	}

	rules, err = Parse(data)
	if err != nil {
		r.logger.WithError(err).WithField("variant", name).Error("invalid variant")
		return nil, err
	}

	r.logger.WithFields(logrus.Fields{
		"variant": name,
		"game":    rules.Game,
		"steps":   len(rules.GamePlay),
	}).Debug("loaded variant")

	r.cache[name] = rules
	return rules, nil
}

// Names returns the names of every variant in the repository
func (r *Repository) Names() ([]string, error) {
	entries, err := fs.ReadDir(r.fsys, ".")
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".json" {
			continue
		}

		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}

	sort.Strings(names)
	return names, nil
}

// LoadAll loads every variant, returning the first error
func (r *Repository) LoadAll() error {
	names, err := r.Names()
	if err != nil {
		return err
	}

	for _, name := range names {
		if _, err := r.GetOrLoad(name); err != nil {
			return err
		}
	}

	return nil
}
