package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/E72-BI/cartao-santa-casa/internal/domain"
	"github.com/E72-BI/cartao-santa-casa/internal/events"
	"github.com/E72-BI/cartao-santa-casa/internal/repository"
	"github.com/E72-BI/cartao-santa-casa/pkg/util"
)

// utf8BOM makes spreadsheet tools decode the export as UTF-8.
const utf8BOM = "\uFEFF"

var exportHeader = []string{"Nome", "Email", "CPF", "Tipo de Plano", "Validade", "Nascimento", "Status"}

// MembersService covers the administrator operations over the directory:
// listing, search, bulk import, CSV export, record edit and removal.
type MembersService struct {
	directory   *repository.MemberDirectory
	dispatcher  events.Dispatcher
	logger      *zap.Logger
	importDelay time.Duration
	now         func() time.Time
}

// NewMembersService builds the service.
func NewMembersService(directory *repository.MemberDirectory, dispatcher events.Dispatcher, logger *zap.Logger, importDelay time.Duration) *MembersService {
	return &MembersService{
		directory:   directory,
		dispatcher:  dispatcher,
		logger:      logger,
		importDelay: importDelay,
		now:         time.Now,
	}
}

// List returns members matching the search term, or all members for an
// empty term.
func (s *MembersService) List(term string) []domain.Member {
	return s.directory.Search(term)
}

// Update replaces a directory record; the active session is refreshed by
// the directory when it points at the same member.
func (s *MembersService) Update(ctx context.Context, member domain.Member) {
	s.directory.Update(ctx, member)
	s.publish(ctx, events.EventMemberUpdated, member.ID, events.MemberUpdatedPayload{
		Email:  member.Email,
		Status: member.Status,
	})
}

// Delete removes a directory record by identifier.
func (s *MembersService) Delete(ctx context.Context, id string) {
	s.directory.Remove(ctx, id)
	s.publish(ctx, events.EventMemberRemoved, id, nil)
}

// ExportCSV renders the whole directory as a comma-separated export with a
// UTF-8 byte-order marker and a fixed 7-column header. The name field is
// always quoted, matching the spreadsheet the program distributes.
func (s *MembersService) ExportCSV() []byte {
	var buf bytes.Buffer
	buf.WriteString(utf8BOM)
	buf.WriteString(strings.Join(exportHeader, ","))
	buf.WriteByte('\n')

	for _, m := range s.directory.All() {
		fields := []string{
			quoteField(m.Name),
			m.Email,
			m.CPF,
			string(m.CardType),
			m.ExpiryDate,
			m.BirthDate,
			string(m.Status),
		}
		buf.WriteString(strings.Join(fields, ","))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// ExportFilename names the download after the export date.
func (s *MembersService) ExportFilename() string {
	return fmt.Sprintf("beneficiarios_santa_casa_%s.csv", s.now().Format("2006-01-02"))
}

// ImportCSV parses a 7-column spreadsheet export (the same shape ExportCSV
// emits, header row optional) and appends the rows to the directory.
// Imported records are treated as already-trusted: validated, no password,
// fresh identifiers. Completion is preceded by the configured cosmetic
// delay; cancelling the context discards the pending import.
func (s *MembersService) ImportCSV(ctx context.Context, content []byte) (int, error) {
	content = bytes.TrimPrefix(content, []byte(utf8BOM))

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = len(exportHeader)
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return 0, util.NewValidationError("Arquivo inválido: esperado CSV de 7 colunas.", map[string]any{"cause": err.Error()})
	}

	members := make([]domain.Member, 0, len(rows))
	for i, row := range rows {
		if i == 0 && strings.EqualFold(row[0], exportHeader[0]) {
			continue
		}
		members = append(members, domain.Member{
			ID:          uuid.NewString(),
			Name:        row[0],
			Email:       strings.ToLower(row[1]),
			CPF:         row[2],
			CardType:    parseCardType(row[3]),
			ExpiryDate:  row[4],
			BirthDate:   row[5],
			Status:      parseStatus(row[6]),
			IsValidated: true,
		})
	}
	if len(members) == 0 {
		return 0, util.NewValidationError("Nenhum beneficiário encontrado no arquivo.", nil)
	}

	if s.importDelay > 0 {
		timer := time.NewTimer(s.importDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-timer.C:
		}
	}

	s.directory.Insert(ctx, members...)
	s.publish(ctx, events.EventMembersImported, "", events.MembersImportedPayload{Count: len(members)})
	s.logger.Info("imported members", zap.Int("count", len(members)))
	return len(members), nil
}

// quoteField wraps a value in double quotes with CSV-style escaping.
func quoteField(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

func parseCardType(value string) domain.CardType {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "ouro":
		return domain.CardTypeOuro
	case "diamante":
		return domain.CardTypeDiamante
	default:
		return domain.CardTypePrata
	}
}

func parseStatus(value string) domain.MemberStatus {
	if strings.EqualFold(strings.TrimSpace(value), string(domain.MemberStatusInactive)) {
		return domain.MemberStatusInactive
	}
	return domain.MemberStatusActive
}

func (s *MembersService) publish(ctx context.Context, eventType events.EventType, memberID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		MemberID:  memberID,
		Timestamp: s.now(),
		Payload:   payload,
	})
}
