package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTable(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "brand_models.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadTable(t *testing.T) {
	path := writeTable(t, `Toyota;Camry
Toyota;Corolla
BMW;3 серия
# comment line
BMW;X5
Toyota;Camry

broken-line-without-delimiter
;no-brand
Lada;`)

	c := Load(path)
	assert.False(t, c.Empty())
	assert.Equal(t, []string{"BMW", "Toyota"}, c.Brands())
	assert.Equal(t, []string{"Camry", "Corolla"}, c.Models("toyota"))
	assert.Equal(t, []string{"3 серия", "X5"}, c.Models(" BMW "))
	assert.Empty(t, c.Models("Lada"))
}

func TestMissingFileDegradesToEmpty(t *testing.T) {
	c := Load("/nonexistent/brand_models.csv")
	assert.True(t, c.Empty())
	assert.Empty(t, c.Brands())
	assert.Empty(t, c.Models("Toyota"))

	c = Load("")
	assert.True(t, c.Empty())
}
