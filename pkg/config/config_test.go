package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfigFile(t, `
server:
  name: backoffice-api
  host: 127.0.0.1
  port: 9090

mysql:
  host: db.internal
  port: 3307
  username: svc
  password: secret
  database: backoffice
  max_idle_conns: 5
  max_open_conns: 10

redis:
  addr: cache.internal:6379
  db: 2
  pool_size: 20

mongodb:
  uri: mongodb://audit.internal:27017
  database: backoffice
  collection: audit_logs

auth:
  secret_key: super-secret
  token_ttl: 45m

log:
  level: debug
  encoding: console
  output_paths:
    - stdout
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "backoffice-api", cfg.Server.Name)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.MySQL.Host)
	assert.Equal(t, 10, cfg.MySQL.MaxOpenConns)
	assert.Equal(t, "cache.internal:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "mongodb://audit.internal:27017", cfg.MongoDB.URI)
	assert.Equal(t, "super-secret", cfg.Auth.SecretKey)
	assert.Equal(t, 45*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfigFile(t, `
mysql:
  host: localhost
auth:
  secret_key: s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestMySQLDSN(t *testing.T) {
	cfg := MySQLConfig{
		Host:     "localhost",
		Port:     3306,
		Username: "root",
		Password: "root",
		Database: "backoffice",
	}
	assert.Equal(t,
		"root:root@tcp(localhost:3306)/backoffice?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DSN())
}
