package alarm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tinyfeed/internal/config"
)

func TestNewPromPusherDoesNotPanic(t *testing.T) {
	cfg := &config.Config{
		URL:          "http://pushgateway.example.com",
		Job:          "tinyfeed",
		Instance:     "instance-1",
		PromUsername: "user",
		PromPassword: "pass",
	}
	require.NotPanics(t, func() {
		NewPromPusher(cfg)
	})
}
