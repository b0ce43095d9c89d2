// Package integration holds tests that exercise the assembled system: the
// full grounding pipeline over the HTTP surface, and the Redis / PostgreSQL
// infrastructure against live backends.
//
// The pipeline tests run everywhere.  Backend tests are gated on
// BIOGROUND_INTEGRATION_TEST=1 plus the per-backend address variables and are
// skipped otherwise, so `go test ./...` stays green on a laptop.
package integration

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/biotext/bioground/internal/config"
)

// Environment variables gating the backend tests.
const (
	EnvIntegrationEnabled = "BIOGROUND_INTEGRATION_TEST"

	EnvRedisAddr = "BIOGROUND_TEST_REDIS_ADDR"

	EnvPostgresHost     = "BIOGROUND_TEST_PG_HOST"
	EnvPostgresPort     = "BIOGROUND_TEST_PG_PORT"
	EnvPostgresUser     = "BIOGROUND_TEST_PG_USER"
	EnvPostgresPassword = "BIOGROUND_TEST_PG_PASSWORD"
	EnvPostgresDB       = "BIOGROUND_TEST_PG_DB"
)

// skipUnlessIntegration skips t unless the integration gate and the named
// address variable are both set, returning the address.
func skipUnlessIntegration(t *testing.T, addrEnv string) string {
	t.Helper()
	if os.Getenv(EnvIntegrationEnabled) != "1" {
		t.Skipf("set %s=1 to run integration tests", EnvIntegrationEnabled)
	}
	addr := os.Getenv(addrEnv)
	if addr == "" {
		t.Skipf("set %s to run this test", addrEnv)
	}
	return addr
}

// writeFile writes a fixture file into dir.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// newPipelineConfig lays out a complete resource directory (gene, chemical,
// and term tables, a ChEBI relation table, and the curated grounding map with
// companions) and returns a Config pointing at it.
func newPipelineConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	writeFile(t, dir, "hgnc_entries.tsv",
		"hgnc_id\tsymbol\tuniprot_id\n"+
			"1097\tBRAF\tP15056\n"+
			"6840\tMAP2K1\t\n")
	writeFile(t, dir, "uniprot_entries.tsv",
		"accession\tgene_name\torganism\n"+
			"P15056\tBRAF\thuman\n")
	writeFile(t, dir, "chebi_entries.tsv",
		"chebi_id\tname\n"+
			"15996\tGTP\n"+
			"33250\tatom\n")
	writeFile(t, dir, "chebi_secondaries.tsv",
		"secondary_id\tprimary_id\n"+
			"73778\t15996\n")
	writeFile(t, dir, "chebi_relations.tsv",
		"child_id\tparent_id\n"+
			"15996\t33250\n")
	writeFile(t, dir, "mesh_id_label_mappings.tsv",
		"mesh_id\tlabel\nD000255\tAdenosine Triphosphate\n")
	writeFile(t, dir, "go_id_label_mappings.tsv",
		"go_id\tlabel\nGO:0006915\tapoptotic process\n")

	gmPath := writeFile(t, dir, "grounding_map.csv",
		"BRAF,HGNC,BRAF\n"+
			"GTP,CHEBI,CHEBI:73778\n"+
			"XXX\n")
	ignorePath := writeFile(t, dir, "ignore.csv", "the\n")

	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	cfg.Resources.Dir = dir
	cfg.Resources.GroundingMapPath = gmPath
	cfg.Resources.IgnorePath = ignorePath
	return cfg
}

// testRedisConfig builds a RedisConfig for the given address on an isolated
// database.
func testRedisConfig(addr string) config.RedisConfig {
	cfg := config.RedisConfig{Addr: addr, DB: 15}
	return cfg
}

// testPostgresConfig builds a DatabaseConfig from the environment.
func testPostgresConfig(t *testing.T) config.DatabaseConfig {
	t.Helper()
	cfg := config.DatabaseConfig{
		Host:     os.Getenv(EnvPostgresHost),
		Port:     5432,
		User:     envOr(EnvPostgresUser, "postgres"),
		Password: os.Getenv(EnvPostgresPassword),
		DBName:   envOr(EnvPostgresDB, "bioground_test"),
		SSLMode:  "disable",
		MaxConns: 4,
	}
	if p := os.Getenv(EnvPostgresPort); p != "" {
		if _, err := fmt.Sscanf(p, "%d", &cfg.Port); err != nil {
			t.Fatalf("invalid %s: %v", EnvPostgresPort, err)
		}
	}
	return cfg
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

//Personal.AI order the ending
