package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleForEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  Role
	}{
		{"plain member", "eudes@exemplo.com", RoleMember},
		{"admin mailbox", "admin@santacasa.com", RoleAdmin},
		{"admin substring anywhere", "fake.admin@evil.com", RoleAdmin},
		{"uppercase admin", "ADMIN@SANTACASA.COM", RoleAdmin},
		{"admin without at sign", "administrador@santacasa.com", RoleMember},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RoleForEmail(tt.email))
		})
	}
}

func TestFilterBenefits(t *testing.T) {
	catalog := BenefitCatalog()

	assert.Len(t, FilterBenefits(catalog, ""), len(catalog))

	pharmacy := FilterBenefits(catalog, "Farmácia")
	assert.Len(t, pharmacy, 1)
	assert.Equal(t, "Medicamentos de Uso Contínuo", pharmacy[0].Title)

	assert.Empty(t, FilterBenefits(catalog, "Odontologia"))
}
