package buildinfo

import (
	"strings"
	"testing"
)

func TestCurrent(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })
	Version = "v9.9.9"

	if got := Current().Version; got != "v9.9.9" {
		t.Errorf("Current().Version = %q", got)
	}
	if !strings.Contains(String(), "v9.9.9") || !strings.Contains(Template(), "{{.Name}} version v9.9.9") {
		t.Error("version missing from formatted output")
	}
}
