package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// El middleware de swagger entra en pánico al arrancar si el archivo no existe,
// así que el JSON va versionado en el repo. Este test evita que desaparezca o
// se corrompa sin que nadie lo note.
func TestSwaggerJSON_ExisteYEsValido(t *testing.T) {
	path := filepath.Join(findModuleRoot(t), "docs", "swagger.json")

	raw, err := os.ReadFile(path)
	require.NoError(t, err, "docs/swagger.json debe estar versionado en el repo")

	var doc struct {
		Swagger string                     `json:"swagger"`
		Paths   map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "2.0", doc.Swagger)

	// Rutas clave de la API documentadas
	for _, p := range []string{
		"/api/auth/login",
		"/api/replenishments",
		"/api/replenishments/multi",
		"/api/sales/day-closing",
		"/api/reports/inventory/pdf",
	} {
		assert.Contains(t, doc.Paths, p)
	}
}

func findModuleRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		require.NotEqual(t, dir, parent, "no se encontró go.mod")
		dir = parent
	}
}
