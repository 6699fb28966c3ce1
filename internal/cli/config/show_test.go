package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	appconfig "mdcatalog/pkg/config"
)

func TestRenderConfig(t *testing.T) {
	cfg := appconfig.Default()
	cfg.Lookup.LinkLabels = map[string]string{"engtl": "Official"}

	out := renderConfig(cfg)
	assert.Contains(t, out, "localhost:8080")
	assert.Contains(t, out, "1 Shounen, 2 Shoujo, 3 Seinen, 4 Josei")
	assert.Contains(t, out, "engtl=Official,")
	assert.Contains(t, out, "amz=Amazon")
}
