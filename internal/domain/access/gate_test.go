package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Sacoleiras-api/internal/domain"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/access"
)

var (
	admin      = access.Identity{UserID: "u-admin", Role: "admin"}
	sacoleira  = access.Identity{UserID: "u-ana", Role: "sacoleira", ResellerID: "r-ana"}
	semVinculo = access.Identity{UserID: "u-x", Role: "sacoleira"}
)

func TestAuthorize_AdminSinRestricciones(t *testing.T) {
	resources := []access.Resource{
		access.ResourceProduct, access.ResourceCategory, access.ResourceReseller,
		access.ResourceLedger, access.ResourceStock, access.ResourceUser,
	}
	actions := []access.Action{access.ActionRead, access.ActionCreate, access.ActionUpdate, access.ActionDelete}
	for _, r := range resources {
		for _, a := range actions {
			assert.NoError(t, access.Authorize(admin, a, r), "%s %s", a, r)
		}
	}
}

func TestAuthorize_Sacoleira(t *testing.T) {
	tests := []struct {
		action   access.Action
		resource access.Resource
		want     error
	}{
		{access.ActionRead, access.ResourceLedger, nil},
		{access.ActionCreate, access.ResourceLedger, nil},
		{access.ActionRead, access.ResourceStock, nil},
		{access.ActionRead, access.ResourceProduct, nil},
		{access.ActionRead, access.ResourceCategory, nil},
		{access.ActionRead, access.ResourceReseller, nil},
		{access.ActionUpdate, access.ResourceLedger, domain.ErrForbidden},
		{access.ActionDelete, access.ResourceLedger, domain.ErrForbidden},
		{access.ActionCreate, access.ResourceProduct, domain.ErrForbidden},
		{access.ActionUpdate, access.ResourceProduct, domain.ErrForbidden},
		{access.ActionDelete, access.ResourceProduct, domain.ErrForbidden},
		{access.ActionCreate, access.ResourceCategory, domain.ErrForbidden},
		{access.ActionDelete, access.ResourceCategory, domain.ErrForbidden},
		{access.ActionCreate, access.ResourceReseller, domain.ErrForbidden},
		{access.ActionUpdate, access.ResourceReseller, domain.ErrForbidden},
		{access.ActionDelete, access.ResourceReseller, domain.ErrForbidden},
		{access.ActionRead, access.ResourceUser, domain.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(string(tt.action)+"_"+string(tt.resource), func(t *testing.T) {
			err := access.Authorize(sacoleira, tt.action, tt.resource)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAuthorize_RolDesconocido(t *testing.T) {
	err := access.Authorize(access.Identity{UserID: "u", Role: "vendedor"}, access.ActionRead, access.ResourceStock)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestScopeReseller_Admin(t *testing.T) {
	got, err := access.ScopeReseller(admin, "")
	require.NoError(t, err)
	assert.Empty(t, got, "admin sin filtro ve todas las sacoleiras")

	got, err = access.ScopeReseller(admin, "r-bia")
	require.NoError(t, err)
	assert.Equal(t, "r-bia", got)
}

func TestScopeReseller_SacoleiraSiempreSuPropioID(t *testing.T) {
	got, err := access.ScopeReseller(sacoleira, "")
	require.NoError(t, err)
	assert.Equal(t, "r-ana", got)

	got, err = access.ScopeReseller(sacoleira, "r-ana")
	require.NoError(t, err)
	assert.Equal(t, "r-ana", got)
}

func TestScopeReseller_SacoleiraPidiendoOtraEsRechazada(t *testing.T) {
	got, err := access.ScopeReseller(sacoleira, "r-bia")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, got)
}

func TestScopeReseller_SacoleiraSinVinculo(t *testing.T) {
	_, err := access.ScopeReseller(semVinculo, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
