package server_test

import (
	"testing"
	"time"

	"leader-dojo/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_ImportTimeout(t *testing.T) {
	tests := []struct {
		name    string
		seconds int
		want    time.Duration
	}{
		{"Default", 60, 60 * time.Second},
		{"Zero disables", 0, 0},
		{"Negative disables", -5, 0},
		{"Custom", 120, 2 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{ImportTimeoutSeconds: tt.seconds}
			assert.Equal(t, tt.want, c.ImportTimeout())
		})
	}
}
