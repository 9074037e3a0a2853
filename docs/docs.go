// Package docs registra el documento OpenAPI de la API en swag.
// swagger.json va embebido; JSON() es lo que sirve el middleware de Swagger UI en /docs.
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed swagger.json
var docTemplate string

// SwaggerInfo metadatos exportados del documento.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Sacoleiras API",
	Description:      "Estoque em consignação: catálogo, sacoleiras, lançamentos e relatórios.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// JSON documento OpenAPI registrado, listo para servir.
func JSON() []byte {
	return []byte(SwaggerInfo.ReadDoc())
}
