package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/releasegpt/pkg/infra/repository"
	"github.com/urfave/cli/v3"
)

// Storage selects where templates, projects, selections and connection
// state are kept. State lives in memory unless a directory is given.
type Storage struct {
	Dir string
}

// Flags returns CLI flags for storage configuration
func (c *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "storage-dir",
			Usage:       "Directory for JSON state files (in-memory when empty)",
			Destination: &c.Dir,
			Sources:     cli.EnvVars("RELEASEGPT_STORAGE_DIR"),
		},
	}
}

// New builds the repository for the configured backend.
func (c *Storage) New() (*repository.Repository, error) {
	if c.Dir == "" {
		return repository.NewMemory(), nil
	}

	repo, err := repository.NewFile(c.Dir)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open storage directory", goerr.V("dir", c.Dir))
	}
	return repo, nil
}
