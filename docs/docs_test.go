package docs_test

import (
	"encoding/json"
	"testing"

	"github.com/gofiber/contrib/swagger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	"github.com/jhoicas/Sacoleiras-api/docs"
)

func TestReadDoc_RutasPrincipales(t *testing.T) {
	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Swagger string                     `json:"swagger"`
		Paths   map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "2.0", doc.Swagger)
	for _, p := range []string{"/api/auth/login", "/api/ledger", "/api/stock", "/api/resellers/{id}/statement.pdf"} {
		assert.Contains(t, doc.Paths, p)
	}
}

func TestJSON_SirveDocumentoEmbebido(t *testing.T) {
	raw := docs.JSON()
	require.True(t, json.Valid(raw))

	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, docs.SwaggerInfo.Title, doc.Info.Title)

	// sin swagger.json en disco el middleware arma igual la UI
	assert.NotPanics(t, func() {
		swagger.New(swagger.Config{BasePath: "/", FileContent: raw, Path: "docs"})
	})
}
