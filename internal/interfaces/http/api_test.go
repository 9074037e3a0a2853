package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Sacoleiras-api/internal/application/auth"
	"github.com/jhoicas/Sacoleiras-api/internal/application/dto"
	"github.com/jhoicas/Sacoleiras-api/internal/application/ledger"
	"github.com/jhoicas/Sacoleiras-api/internal/application/report"
	"github.com/jhoicas/Sacoleiras-api/internal/application/stock"
	"github.com/jhoicas/Sacoleiras-api/internal/application/usecase"
	"github.com/jhoicas/Sacoleiras-api/internal/infrastructure/memory"
	"github.com/jhoicas/Sacoleiras-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Sacoleiras-api/internal/infrastructure/xlsx"
	apphttp "github.com/jhoicas/Sacoleiras-api/internal/interfaces/http"
	"github.com/jhoicas/Sacoleiras-api/pkg/logger"
)

const testAdminCode = "codigo-admin-test"

// newAPI arma la API completa sobre el store en memoria.
func newAPI() *fiber.App {
	store := memory.NewStore()
	stockUC := stock.NewUseCase(store.Ledger(), store.Products())
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(store.Users(), store.Resellers(), auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
		}, testAdminCode),
		CategoryUC: usecase.NewCategoryUseCase(store.Categories(), store),
		ProductUC:  usecase.NewProductUseCase(store.Products(), store.Categories()),
		ResellerUC: usecase.NewResellerUseCase(store.Resellers(), store.Users()),
		LedgerUC:   ledger.NewUseCase(store.Ledger(), store.Products(), store.Resellers()),
		StockUC:    stockUC,
		ReportUC: report.NewUseCase(stockUC, store.Resellers(), store.Ledger(),
			pdf.NewMarotoPDFGenerator(), xlsx.NewStockExporter(), "Sacoleiras Test"),
		JWTSecret: testJWTSecret,
		Logger:    logger.Nop(),
	})
	return app
}

// call envía la petición y decodifica la respuesta JSON en out (si no es nil).
func call(t *testing.T, app *fiber.App, method, path, token string, body, out interface{}) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	if out != nil {
		defer resp.Body.Close()
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func login(t *testing.T, app *fiber.App, email, password string) dto.LoginResponse {
	t.Helper()
	var out dto.LoginResponse
	resp := call(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{"email": email, "password": password}, &out)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return out
}

// fixture estado base: admin, categoría Blusas, producto Blusa (45), sacoleiras Ana (con usuario) y Bia.
type fixture struct {
	app        *fiber.App
	admin      string
	ana        string
	anaUserID  string
	anaID      string
	biaID      string
	categoryID string
	productID  string
}

func setup(t *testing.T) fixture {
	t.Helper()
	f := fixture{app: newAPI()}

	resp := call(t, f.app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"email": "admin@sacoleiras.test", "password": "admin-pass-1", "role": "admin", "admin_code": testAdminCode,
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	f.admin = login(t, f.app, "admin@sacoleiras.test", "admin-pass-1").Token

	var anaUser dto.UserResponse
	resp = call(t, f.app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"email": "Ana@Sacoleiras.test", "password": "ana-pass-12", "name": "Ana",
	}, &anaUser)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "sacoleira", anaUser.Role)

	var cat dto.CategoryResponse
	resp = call(t, f.app, http.MethodPost, "/api/categories", f.admin, fiber.Map{"name": "Blusas"}, &cat)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	f.categoryID = cat.ID

	var prod dto.ProductResponse
	resp = call(t, f.app, http.MethodPost, "/api/products", f.admin, fiber.Map{
		"name": "Blusa", "category_id": cat.ID, "price": "45", "min_stock": 10,
	}, &prod)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Blusas", prod.Category)
	f.productID = prod.ID

	var ana, bia dto.ResellerResponse
	resp = call(t, f.app, http.MethodPost, "/api/resellers", f.admin, fiber.Map{"name": "Ana", "user_id": anaUser.ID}, &ana)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = call(t, f.app, http.MethodPost, "/api/resellers", f.admin, fiber.Map{"name": "Bia"}, &bia)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	f.anaID, f.biaID = ana.ID, bia.ID
	f.anaUserID = anaUser.ID

	for _, e := range []fiber.Map{
		{"product_id": f.productID, "reseller_id": f.anaID, "kind": "entrega", "quantity": 10},
		{"product_id": f.productID, "reseller_id": f.anaID, "kind": "devolucao", "quantity": 2},
		{"product_id": f.productID, "reseller_id": f.biaID, "kind": "entrega", "quantity": 3},
	} {
		resp = call(t, f.app, http.MethodPost, "/api/ledger", f.admin, e, nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	// el login posterior al vínculo lleva la sacoleira en el token
	out := login(t, f.app, "ana@sacoleiras.test", "ana-pass-12")
	require.Equal(t, f.anaID, out.User.ResellerID)
	f.ana = out.Token
	return f
}

func TestAPI_Health(t *testing.T) {
	resp := call(t, newAPI(), http.MethodGet, "/health", "", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_EstoqueAdmin(t *testing.T) {
	f := setup(t)

	var view dto.StockViewResponse
	resp := call(t, f.app, http.MethodGet, "/api/stock", f.admin, nil, &view)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 11, view.TotalQuantity)
	assert.Equal(t, "495", view.TotalValue.String())
	require.Len(t, view.Resellers, 2)
	assert.Equal(t, "Ana", view.Resellers[0].ResellerName)
	assert.Equal(t, 8, view.Resellers[0].TotalQuantity)

	var summary dto.StockSummaryResponse
	resp = call(t, f.app, http.MethodGet, "/api/stock/summary", f.admin, nil, &summary)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, dto.StockSummaryResponse{"Ana": {"Blusa": 8}, "Bia": {"Blusa": 3}}, summary)

	var low []dto.StockPositionResponse
	resp = call(t, f.app, http.MethodGet, "/api/stock/low", f.admin, nil, &low)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, low, 2, "ambas por debajo del mínimo 10")

	view = dto.StockViewResponse{}
	resp = call(t, f.app, http.MethodGet, "/api/stock?q=BIA", f.admin, nil, &view)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, view.Resellers, 1)
	assert.Equal(t, "Bia", view.Resellers[0].ResellerName)
}

func TestAPI_SacoleiraVeSoloLoSuyo(t *testing.T) {
	f := setup(t)

	var view dto.StockViewResponse
	resp := call(t, f.app, http.MethodGet, "/api/stock", f.ana, nil, &view)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, view.Resellers, 1)
	assert.Equal(t, f.anaID, view.Resellers[0].ResellerID)
	assert.Equal(t, 8, view.TotalQuantity)

	var list dto.LedgerListResponse
	resp = call(t, f.app, http.MethodGet, "/api/ledger?reseller_id=all", f.ana, nil, &list)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, list.Total)

	resp = call(t, f.app, http.MethodGet, "/api/stock?reseller_id="+f.biaID, f.ana, nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = call(t, f.app, http.MethodGet, "/api/resellers/"+f.biaID, f.ana, nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = call(t, f.app, http.MethodGet, "/api/resellers/"+f.anaID, f.ana, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = call(t, f.app, http.MethodGet, "/api/resellers", f.ana, nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = call(t, f.app, http.MethodPost, "/api/products", f.ana, fiber.Map{"name": "X", "price": "1"}, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, f.app, http.MethodPost, "/api/ledger", f.ana, fiber.Map{
		"product_id": f.productID, "reseller_id": f.biaID, "kind": "entrega", "quantity": 1,
	}, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "no registra para otra sacoleira")

	var entry dto.LedgerEntryResponse
	resp = call(t, f.app, http.MethodPost, "/api/ledger", f.ana, fiber.Map{
		"product_id": f.productID, "reseller_id": f.anaID, "kind": "devolucao", "quantity": 1,
	}, &entry)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "45", entry.UnitValue.String())
	assert.Equal(t, "45", entry.Total.String())
}

func TestAPI_SacoleiraSinVinculo(t *testing.T) {
	f := setup(t)
	resp := call(t, f.app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"email": "nova@sacoleiras.test", "password": "nova-pass-1",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	tok := login(t, f.app, "nova@sacoleiras.test", "nova-pass-1").Token

	resp = call(t, f.app, http.MethodGet, "/api/stock", tok, nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var me dto.MeResponse
	resp = call(t, f.app, http.MethodGet, "/api/auth/me", tok, nil, &me)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "sacoleira", me.Role)
	assert.Empty(t, me.ResellerID)
}

func TestAPI_VinculoQuitadoCortaAcceso(t *testing.T) {
	f := setup(t)

	resp := call(t, f.app, http.MethodPut, "/api/resellers/"+f.anaID, f.admin, fiber.Map{"user_id": ""}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// el token de Ana sigue firmado con su sacoleira, pero el vínculo ya no existe
	for _, path := range []string{"/api/ledger", "/api/stock", "/api/resellers/" + f.anaID + "/statement.pdf"} {
		var body dto.ErrorResponse
		resp = call(t, f.app, http.MethodGet, path, f.ana, nil, &body)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, path)
		assert.Equal(t, "RESELLER_NOT_LINKED", body.Code, path)
	}
	var me dto.MeResponse
	resp = call(t, f.app, http.MethodGet, "/api/auth/me", f.ana, nil, &me)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, me.ResellerID)

	// vinculada ahora a Bia: el mismo token ve solo lo de Bia
	resp = call(t, f.app, http.MethodPut, "/api/resellers/"+f.biaID, f.admin, fiber.Map{"user_id": f.anaUserID}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view dto.StockViewResponse
	resp = call(t, f.app, http.MethodGet, "/api/stock", f.ana, nil, &view)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, view.Resellers, 1)
	assert.Equal(t, f.biaID, view.Resellers[0].ResellerID)
	assert.Equal(t, 3, view.TotalQuantity)

	me = dto.MeResponse{}
	resp = call(t, f.app, http.MethodGet, "/api/auth/me", f.ana, nil, &me)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, f.biaID, me.ResellerID)

	resp = call(t, f.app, http.MethodGet, "/api/resellers/"+f.anaID, f.ana, nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAPI_CategoriaEnUsoNoSeElimina(t *testing.T) {
	f := setup(t)

	var body dto.ErrorResponse
	resp := call(t, f.app, http.MethodDelete, "/api/categories/"+f.categoryID, f.admin, nil, &body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CATEGORY_IN_USE", body.Code)

	var cats []dto.CategoryResponse
	resp = call(t, f.app, http.MethodGet, "/api/categories", f.ana, nil, &cats)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, cats, 1)
}

func TestAPI_Validaciones(t *testing.T) {
	f := setup(t)

	var body dto.ErrorResponse
	resp := call(t, f.app, http.MethodPost, "/api/ledger", f.admin, fiber.Map{
		"product_id": f.productID, "reseller_id": f.anaID, "kind": "entrega", "quantity": 0,
	}, &body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Contains(t, body.Fields, "quantity")

	resp = call(t, f.app, http.MethodPost, "/api/ledger", f.admin, fiber.Map{
		"product_id": f.productID, "reseller_id": f.anaID, "kind": "venda", "quantity": 1,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(t, f.app, http.MethodPost, "/api/products", f.admin, fiber.Map{"name": "Saia", "price": "0"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(t, f.app, http.MethodGet, "/api/ledger?from=ontem", f.admin, nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(t, f.app, http.MethodPost, "/api/ledger", f.admin, fiber.Map{
		"product_id": uuid.New().String(), "reseller_id": f.anaID, "kind": "entrega", "quantity": 1,
	}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	body = dto.ErrorResponse{}
	resp = call(t, f.app, http.MethodPost, "/api/ledger", f.admin, fiber.Map{
		"product_id": "abc", "reseller_id": f.anaID, "kind": "entrega", "quantity": 3000000000,
	}, &body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body.Fields, "product_id")
	assert.Contains(t, body.Fields, "quantity")

	resp = call(t, f.app, http.MethodPost, "/api/ledger", f.admin, fiber.Map{
		"product_id": f.productID, "reseller_id": f.anaID, "kind": "entrega", "quantity": 3, "unit_value": "1.005",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "más de dos decimales")

	resp = call(t, f.app, http.MethodPost, "/api/products", f.admin, fiber.Map{"name": "Saia", "price": "0.004"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	for _, path := range []string{"/api/products/abc", "/api/ledger/abc", "/api/resellers/abc", "/api/resellers/abc/statement.pdf"} {
		resp = call(t, f.app, http.MethodGet, path, f.admin, nil, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}
	for _, path := range []string{"/api/ledger?product_id=abc", "/api/ledger?reseller_id=abc", "/api/stock?reseller_id=abc"} {
		resp = call(t, f.app, http.MethodGet, path, f.admin, nil, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
	}

	resp = call(t, f.app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"email": "otro@sacoleiras.test", "password": "otro-pass-1", "role": "admin", "admin_code": "errado",
	}, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, f.app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": "admin@sacoleiras.test", "password": "incorrecta",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_Reportes(t *testing.T) {
	f := setup(t)

	resp := call(t, f.app, http.MethodGet, "/api/resellers/"+f.anaID+"/statement.pdf", f.ana, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))

	resp = call(t, f.app, http.MethodGet, "/api/resellers/"+f.biaID+"/statement.pdf", f.ana, nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, f.app, http.MethodGet, "/api/stock/export.xlsx", f.admin, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")
	b, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("PK")), "xlsx es un zip")
}
