package db

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/user/onlinestore/apperror"
	"github.com/user/onlinestore/config"
)

func TestMigrationLogger(t *testing.T) {
	var buf bytes.Buffer
	ml := &migrationLogger{logger: slog.New(slog.NewTextHandler(&buf, nil)), verbose: true}

	ml.Printf("applied %d migration(s)\n", 2)
	assert.True(t, ml.Verbose())
	assert.Contains(t, buf.String(), "applied 2 migration(s)")
}

func TestRollbackMigrationsRejectsBadSteps(t *testing.T) {
	cfg := &config.PoolConfig{Host: "localhost", Port: 5432, User: "u", Password: "p", DBName: "store"}

	for _, steps := range []int{0, -1} {
		err := RollbackMigrations(cfg, "./migrations", steps)
		appErr, ok := apperror.FromError(err)
		if assert.True(t, ok) {
			assert.Equal(t, apperror.MigrationError, appErr.Type)
		}
	}
}
