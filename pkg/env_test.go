package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetenv(t *testing.T) {
	const (
		key          = "FEETRACKER_TEST_GETENV"
		defaultValue = "default"
	)

	t.Run("missing variable falls back to default", func(t *testing.T) {
		assert.Equal(t, defaultValue, Getenv("FEETRACKER_TEST_MISSING", defaultValue))
	})
	t.Run("empty value used instead of default", func(t *testing.T) {
		t.Setenv(key, "")
		assert.Empty(t, Getenv(key, defaultValue))
	})
	t.Run("ok", func(t *testing.T) {
		t.Setenv(key, "/etc/feetracker/config.yml")
		assert.Equal(t, "/etc/feetracker/config.yml", Getenv(key, defaultValue))
	})
}
