package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/E72-BI/cartao-santa-casa/internal/domain"
	"github.com/E72-BI/cartao-santa-casa/internal/events"
	"github.com/E72-BI/cartao-santa-casa/internal/persistence"
	"github.com/E72-BI/cartao-santa-casa/internal/repository"
)

func newMembersFixture(t *testing.T, importDelay time.Duration, members ...domain.Member) (*MembersService, *repository.MemberDirectory) {
	t.Helper()
	logger := zap.NewNop()
	directory := repository.NewMemberDirectory(persistence.NewMemoryStore(), logger)
	directory.Insert(context.Background(), members...)
	return NewMembersService(directory, events.NewInMemoryDispatcher(), logger, importDelay), directory
}

func TestExportCSV(t *testing.T) {
	svc, _ := newMembersFixture(t, 0, domain.Member{
		ID:         "m1",
		Name:       "EUDES CAVALCANTE",
		Email:      "eudes@exemplo.com",
		CPF:        "000.000.000-00",
		CardType:   domain.CardTypeDiamante,
		ExpiryDate: "12/2030",
		BirthDate:  "16/12/1975",
		Status:     domain.MemberStatusActive,
	})

	out := string(svc.ExportCSV())

	require.True(t, strings.HasPrefix(out, "\uFEFF"), "export must carry the UTF-8 BOM")

	lines := strings.Split(strings.TrimSuffix(strings.TrimPrefix(out, "\uFEFF"), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Nome,Email,CPF,Tipo de Plano,Validade,Nascimento,Status", lines[0])
	assert.Equal(t, `"EUDES CAVALCANTE",eudes@exemplo.com,000.000.000-00,Diamante,12/2030,16/12/1975,Ativo`, lines[1])
}

func TestExportFilenameCarriesDate(t *testing.T) {
	svc, _ := newMembersFixture(t, 0)
	svc.now = func() time.Time { return time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC) }
	assert.Equal(t, "beneficiarios_santa_casa_2026-09-01.csv", svc.ExportFilename())
}

func TestImportCSVRoundTripsExport(t *testing.T) {
	exporter, _ := newMembersFixture(t, 0,
		domain.Member{ID: "m1", Name: "João Silva Oliveira", Email: "joao.silva@exemplo.com", CPF: "123.456.789-00", CardType: domain.CardTypePrata, ExpiryDate: "06/2026", BirthDate: "15/05/1985", Status: domain.MemberStatusActive},
		domain.Member{ID: "m2", Name: "Maria Fernanda Costa", Email: "maria.costa@exemplo.com", CPF: "987.654.321-11", CardType: domain.CardTypeOuro, ExpiryDate: "10/2027", BirthDate: "22/09/1990", Status: domain.MemberStatusInactive},
	)

	svc, directory := newMembersFixture(t, 0)
	count, err := svc.ImportCSV(context.Background(), exporter.ExportCSV())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	imported := directory.All()
	require.Len(t, imported, 2)

	first := imported[0]
	assert.Equal(t, "João Silva Oliveira", first.Name)
	assert.Equal(t, "joao.silva@exemplo.com", first.Email)
	assert.Equal(t, domain.CardTypePrata, first.CardType)
	assert.Equal(t, "06/2026", first.ExpiryDate)
	assert.True(t, first.IsValidated, "imported records are already trusted")
	assert.False(t, first.HasPassword())
	assert.NotEmpty(t, first.ID)

	assert.Equal(t, domain.MemberStatusInactive, imported[1].Status)
	assert.Equal(t, domain.CardTypeOuro, imported[1].CardType)
}

func TestImportCSVWithoutHeader(t *testing.T) {
	svc, directory := newMembersFixture(t, 0)

	csvContent := `"ANA SILVA",ana@x.com,111,Prata,09/2031,01/01/2000,Ativo` + "\n"
	count, err := svc.ImportCSV(context.Background(), []byte(csvContent))
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, "ANA SILVA", directory.All()[0].Name)
}

func TestImportCSVRejectsMalformedContent(t *testing.T) {
	svc, directory := newMembersFixture(t, 0)

	_, err := svc.ImportCSV(context.Background(), []byte("just,three,columns\n"))
	require.Error(t, err)

	_, err = svc.ImportCSV(context.Background(), []byte("Nome,Email,CPF,Tipo de Plano,Validade,Nascimento,Status\n"))
	require.Error(t, err, "header-only file has no members")

	assert.Empty(t, directory.All())
}

func TestImportCSVHonorsCancellation(t *testing.T) {
	svc, directory := newMembersFixture(t, 5*time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	csvContent := `"ANA SILVA",ana@x.com,111,Prata,09/2031,01/01/2000,Ativo` + "\n"
	start := time.Now()
	_, err := svc.ImportCSV(ctx, []byte(csvContent))
	require.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
	assert.Empty(t, directory.All(), "a discarded import must not mutate the directory")
}

func TestUpdateAndDelete(t *testing.T) {
	m := domain.Member{ID: "m1", Name: "ANA", Email: "ana@x.com", Status: domain.MemberStatusActive}
	svc, directory := newMembersFixture(t, 0, m)
	ctx := context.Background()

	m.Status = domain.MemberStatusInactive
	svc.Update(ctx, m)
	assert.Equal(t, domain.MemberStatusInactive, directory.All()[0].Status)

	svc.Delete(ctx, "m1")
	assert.Empty(t, directory.All())
}

func TestListDelegatesSearch(t *testing.T) {
	svc, _ := newMembersFixture(t, 0,
		domain.Member{ID: "m1", Name: "ANA SILVA", Email: "ana@x.com"},
		domain.Member{ID: "m2", Name: "BIA COSTA", Email: "bia@y.com"},
	)

	assert.Len(t, svc.List(""), 2)
	result := svc.List("silva")
	require.Len(t, result, 1)
	assert.Equal(t, "m1", result[0].ID)
}
