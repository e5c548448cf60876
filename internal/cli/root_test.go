package cli

import (
	"errors"
	"testing"

	"github.com/tickstream-hq/tardis-harvester/pkg/tardis"
)

func TestNewClientRequiresKey(t *testing.T) {
	t.Setenv("TARDIS_API_KEY", "")
	apiKey = ""

	if _, err := newClient(); !errors.Is(err, tardis.ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestNewClientPrefersFlagOverEnv(t *testing.T) {
	t.Setenv("TARDIS_API_KEY", "env-key")
	apiKey = "flag-key"
	defer func() { apiKey = "" }()

	client, err := newClient()
	if err != nil {
		t.Fatalf("newClient: %v", err)
	}
	if client == nil {
		t.Fatalf("expected client")
	}
}

func TestNewClientFallsBackToEnv(t *testing.T) {
	t.Setenv("TARDIS_API_KEY", "env-key")
	apiKey = ""

	if _, err := newClient(); err != nil {
		t.Fatalf("newClient with env key: %v", err)
	}
}
