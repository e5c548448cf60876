package publishers

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadRegistryYAML(t *testing.T) {
	path := writeTempConfig(t, "publishers.yaml", `
publishers:
  - id: console
    type: log
  - id: hook
    type: http
    http:
      url: https://sink.test/events
  - id: queue
    type: sqs
    enabled: false
    sqs:
      uri: https://sqs.test/queue
      region: eu-west-1
`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if got := len(reg.All()); got != 3 {
		t.Fatalf("expected 3 publishers, got %d", got)
	}
	enabled := reg.Enabled()
	if len(enabled) != 2 {
		t.Fatalf("expected 2 enabled publishers, got %d", len(enabled))
	}

	hook, ok := reg.ByID("hook")
	if !ok {
		t.Fatalf("hook publisher not found")
	}
	if hook.HTTP == nil || hook.HTTP.Method != "POST" || hook.HTTP.TimeoutSeconds != httpDefaultTimeoutSeconds {
		t.Fatalf("http defaults not applied: %+v", hook.HTTP)
	}
}

func TestLoadRegistryJSON(t *testing.T) {
	path := writeTempConfig(t, "publishers.json", `{
  "publishers": [
    {"id": "topic", "type": "sns", "sns": {"topic_arn": "arn:aws:sns:::t", "region": "us-east-1"}},
    {"id": "gcp", "type": "gcp_pubsub", "gcp_pubsub": {"project_id": "p", "topic": "t"}}
  ]
}`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if got := len(reg.Enabled()); got != 2 {
		t.Fatalf("expected 2 enabled publishers, got %d", got)
	}
}

func TestLoadRegistryValidation(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{
			name: "missing id",
			content: `
publishers:
  - type: log
`,
		},
		{
			name: "duplicate ids",
			content: `
publishers:
  - id: a
    type: log
  - id: a
    type: log
`,
		},
		{
			name: "sqs without region",
			content: `
publishers:
  - id: queue
    type: sqs
    sqs:
      uri: https://sqs.test/queue
`,
		},
		{
			name: "sns without topic",
			content: `
publishers:
  - id: topic
    type: sns
    sns:
      region: us-east-1
`,
		},
		{
			name: "http without url",
			content: `
publishers:
  - id: hook
    type: http
    http:
      method: POST
`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeTempConfig(t, "publishers.yaml", tc.content)
			if _, err := LoadRegistry(path); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestRegistryRejectsUnknownType(t *testing.T) {
	reg := DefaultRegistry()
	if _, err := reg.PublisherFor(nil, PublisherConfig{ID: "x", Type: "kafka"}, nil); err == nil {
		t.Fatalf("expected error for unregistered type")
	}
}
