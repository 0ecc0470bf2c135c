package repository

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/releasegpt/pkg/domain/model"
)

const (
	templatesFile   = "templates.json"
	projectsFile    = "projects.json"
	connectionsFile = "connections.json"
	selectionsDir   = "selections"
)

// NewFile creates a repository backed by JSON documents under dir. Existing
// documents are loaded; every mutation rewrites the affected document.
func NewFile(dir string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Join(dir, selectionsDir), 0700); err != nil {
		return nil, goerr.Wrap(err, "failed to create storage directory", goerr.V("dir", dir))
	}

	r := NewMemory()
	if err := readJSON(filepath.Join(dir, templatesFile), &r.templates); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, projectsFile), &r.projects); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, connectionsFile), &r.connections); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(filepath.Join(dir, selectionsDir))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list selections", goerr.V("dir", dir))
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		var sel model.Selection
		if err := readJSON(filepath.Join(dir, selectionsDir, e.Name()), &sel); err != nil {
			return nil, err
		}
		r.selections[strings.TrimSuffix(e.Name(), ".json")] = &sel
	}

	r.persist = func(c collection, key string) error {
		switch c {
		case collectionTemplates:
			return writeJSON(filepath.Join(dir, templatesFile), r.templates)
		case collectionProjects:
			return writeJSON(filepath.Join(dir, projectsFile), r.projects)
		case collectionConnections:
			return writeJSON(filepath.Join(dir, connectionsFile), r.connections)
		case collectionSelections:
			path, err := selectionPath(dir, key)
			if err != nil {
				return err
			}
			sel, ok := r.selections[key]
			if !ok {
				if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
					return goerr.Wrap(err, "failed to remove selection", goerr.V("path", path))
				}
				return nil
			}
			return writeJSON(path, sel)
		default:
			return goerr.New("unknown collection", goerr.V("collection", c))
		}
	}

	return r, nil
}

func selectionPath(dir, projectID string) (string, error) {
	if projectID == "" || projectID != filepath.Base(projectID) || strings.HasPrefix(projectID, ".") {
		return "", goerr.Wrap(model.ErrInvalidInput, "invalid project ID for storage", goerr.V("id", projectID))
	}
	return filepath.Join(dir, selectionsDir, projectID+".json"), nil
}

func readJSON(path string, v any) error {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return goerr.Wrap(err, "failed to read storage file", goerr.V("path", path))
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return goerr.Wrap(err, "failed to parse storage file", goerr.V("path", path))
	}
	return nil
}

// writeJSON replaces path atomically via a temporary file and rename
func writeJSON(path string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return goerr.Wrap(err, "failed to encode storage file", goerr.V("path", path))
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return goerr.Wrap(err, "failed to create temporary file", goerr.V("path", path))
	}
	defer func() {
		_ = os.Remove(tmp.Name()) // no-op after a successful rename
	}()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return goerr.Wrap(err, "failed to write storage file", goerr.V("path", path))
	}
	if err := tmp.Close(); err != nil {
		return goerr.Wrap(err, "failed to close storage file", goerr.V("path", path))
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return goerr.Wrap(err, "failed to replace storage file", goerr.V("path", path))
	}
	return nil
}
