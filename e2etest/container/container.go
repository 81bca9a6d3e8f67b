package container

import (
	"context"
	"fmt"
	"testing"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"

	"github.com/feetracker-io/wallet-fee-tracker/internal/config"
	"github.com/feetracker-io/wallet-fee-tracker/internal/db"
	"github.com/feetracker-io/wallet-fee-tracker/testutil"
)

const (
	mongoContainerName = "e2e-mongo"
	mongoUsername      = "user"
	mongoPassword      = "password"
	mongoDatabase      = "wallet-fee-tracker-e2e"
)

// Manager is a wrapper around all Docker instances, and the Docker API.
// It provides utilities to run and interact with all Docker containers used within e2e testing.
type Manager struct {
	cfg       ImageConfig
	pool      *dockertest.Pool
	resources map[string]*dockertest.Resource
}

// NewManager creates a new Manager instance and initializes
// all Docker specific utilities. Returns an error if initialization fails.
func NewManager(t *testing.T) (*Manager, error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, err
	}

	m := &Manager{
		cfg:       NewImageConfig(),
		pool:      pool,
		resources: make(map[string]*dockertest.Resource),
	}
	t.Cleanup(func() {
		require.NoError(t, m.ClearResources())
	})

	return m, nil
}

// RunMongoResource starts a mongo container and returns the config to reach it once it
// accepts connections.
func (m *Manager) RunMongoResource(t *testing.T) (*config.DbConfig, error) {
	suffix, err := testutil.RandomAlphaNum(4)
	if err != nil {
		return nil, err
	}

	// there can be only 1 container with the same name, so we add
	// random string in the end in case there is still old container running
	resource, err := m.pool.RunWithOptions(&dockertest.RunOptions{
		Name:       fmt.Sprintf("%s-%s", mongoContainerName, suffix),
		Repository: m.cfg.MongoRepository,
		Tag:        m.cfg.MongoVersion,
		Env: []string{
			"MONGO_INITDB_ROOT_USERNAME=" + mongoUsername,
			"MONGO_INITDB_ROOT_PASSWORD=" + mongoPassword,
			"MONGO_INITDB_DATABASE=" + mongoDatabase,
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	if err != nil {
		return nil, err
	}
	m.resources[mongoContainerName] = resource

	cfg := &config.DbConfig{
		Username: mongoUsername,
		Password: mongoPassword,
		DbName:   mongoDatabase,
		Address:  fmt.Sprintf("mongodb://localhost:%s/", resource.GetPort("27017/tcp")),
	}

	err = m.pool.Retry(func() error {
		database, err := db.New(context.Background(), *cfg)
		if err != nil {
			return err
		}
		defer database.Close(context.Background())
		return database.Ping(context.Background())
	})
	if err != nil {
		return nil, err
	}

	t.Logf("mongo container %s ready on %s", resource.Container.Name, cfg.Address)
	return cfg, nil
}

// ClearResources removes all outstanding Docker resources created by the Manager.
func (m *Manager) ClearResources() error {
	for name, resource := range m.resources {
		if err := m.pool.Purge(resource); err != nil {
			return fmt.Errorf("failed to purge %s: %w", name, err)
		}
		delete(m.resources, name)
	}
	return nil
}
