package repository

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/E72-BI/cartao-santa-casa/internal/domain"
	"github.com/E72-BI/cartao-santa-casa/internal/persistence"
)

// MemberDirectory is the sole writer of the member collection. It keeps the
// ordered collection in memory and overwrites the whole collection in the
// key-value store on every mutation. All operations are total: an unknown
// email or identifier is a silent no-op, never an error.
type MemberDirectory struct {
	mu      sync.RWMutex
	members []domain.Member
	store   persistence.Store
	logger  *zap.Logger
	session *SessionStore
}

// NewMemberDirectory returns a directory backed by the key-value store.
func NewMemberDirectory(store persistence.Store, logger *zap.Logger) *MemberDirectory {
	return &MemberDirectory{store: store, logger: logger}
}

// BindSession connects the session store so that Update refreshes the active
// session's cached member in the same operation.
func (d *MemberDirectory) BindSession(session *SessionStore) {
	d.session = session
}

// Load restores the persisted collection. When the store is empty and seed
// records are given, they become the initial collection.
func (d *MemberDirectory) Load(ctx context.Context, seed []domain.Member) {
	raw, err := d.store.Get(ctx, persistence.KeyDirectory)
	if err != nil {
		d.logger.Warn("load member directory", zap.Error(err))
		return
	}
	if len(raw) == 0 {
		if len(seed) > 0 {
			d.mu.Lock()
			d.members = append([]domain.Member{}, seed...)
			d.mu.Unlock()
			d.persist(ctx)
			d.logger.Info("seeded member directory", zap.Int("count", len(seed)))
		}
		return
	}

	var members []domain.Member
	if err := json.Unmarshal(raw, &members); err != nil {
		d.logger.Warn("decode member directory", zap.Error(err))
		return
	}
	d.mu.Lock()
	d.members = members
	d.mu.Unlock()
}

// FindByEmail matches case-insensitively and returns the first match.
// Duplicate emails are tolerated; first match wins.
func (d *MemberDirectory) FindByEmail(email string) (domain.Member, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, m := range d.members {
		if strings.EqualFold(m.Email, email) {
			return m, true
		}
	}
	return domain.Member{}, false
}

// Insert appends new records to the end of the collection. No duplicate
// checks are performed.
func (d *MemberDirectory) Insert(ctx context.Context, members ...domain.Member) {
	if len(members) == 0 {
		return
	}
	d.mu.Lock()
	d.members = append(d.members, members...)
	d.mu.Unlock()
	d.persist(ctx)
}

// SetPassword replaces the password of the record matching the email.
func (d *MemberDirectory) SetPassword(ctx context.Context, email, password string) {
	d.mutateByEmail(ctx, email, func(m *domain.Member) {
		m.Password = password
	})
}

// MarkValidated flags the record matching the email as email-validated.
func (d *MemberDirectory) MarkValidated(ctx context.Context, email string) {
	d.mutateByEmail(ctx, email, func(m *domain.Member) {
		m.IsValidated = true
	})
}

// Update replaces the record whose identifier matches. When the replaced
// record is the active session's member, the session is refreshed in the
// same operation.
func (d *MemberDirectory) Update(ctx context.Context, member domain.Member) {
	changed := false
	d.mu.Lock()
	for i := range d.members {
		if d.members[i].ID == member.ID {
			d.members[i] = member
			changed = true
			break
		}
	}
	d.mu.Unlock()
	if !changed {
		return
	}
	d.persist(ctx)
	if d.session != nil {
		d.session.refreshMember(ctx, member)
	}
}

// Remove deletes the record with the given identifier.
func (d *MemberDirectory) Remove(ctx context.Context, id string) {
	changed := false
	d.mu.Lock()
	for i := range d.members {
		if d.members[i].ID == id {
			d.members = append(d.members[:i], d.members[i+1:]...)
			changed = true
			break
		}
	}
	d.mu.Unlock()
	if changed {
		d.persist(ctx)
	}
}

// All returns a snapshot of the collection in insertion order.
func (d *MemberDirectory) All() []domain.Member {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]domain.Member{}, d.members...)
}

// Search filters the collection by a case-insensitive term against name and
// email, and a plain substring against CPF. An empty term returns everything.
func (d *MemberDirectory) Search(term string) []domain.Member {
	if term == "" {
		return d.All()
	}
	lower := strings.ToLower(term)

	d.mu.RLock()
	defer d.mu.RUnlock()
	matches := make([]domain.Member, 0, len(d.members))
	for _, m := range d.members {
		if strings.Contains(strings.ToLower(m.Name), lower) ||
			strings.Contains(strings.ToLower(m.Email), lower) ||
			strings.Contains(m.CPF, term) {
			matches = append(matches, m)
		}
	}
	return matches
}

func (d *MemberDirectory) mutateByEmail(ctx context.Context, email string, mutate func(*domain.Member)) {
	changed := false
	d.mu.Lock()
	for i := range d.members {
		if strings.EqualFold(d.members[i].Email, email) {
			mutate(&d.members[i])
			changed = true
			break
		}
	}
	d.mu.Unlock()
	if changed {
		d.persist(ctx)
	}
}

// persist overwrites the whole collection; store failures are logged and
// never surfaced to callers.
func (d *MemberDirectory) persist(ctx context.Context) {
	d.mu.RLock()
	raw, err := json.Marshal(d.members)
	d.mu.RUnlock()
	if err != nil {
		d.logger.Warn("encode member directory", zap.Error(err))
		return
	}
	if err := d.store.Set(ctx, persistence.KeyDirectory, raw); err != nil {
		d.logger.Warn("persist member directory", zap.Error(err))
	}
}

// SeedMembers returns the reference records used to initialize a fresh
// directory so a new instance is immediately usable.
func SeedMembers() []domain.Member {
	return []domain.Member{
		{
			ID:          "1",
			Name:        "EUDES CAVALCANTE",
			Email:       "eudes@exemplo.com",
			CPF:         "000.000.000-00",
			CardType:    domain.CardTypeDiamante,
			ExpiryDate:  "12/2030",
			BirthDate:   "16/12/1975",
			Status:      domain.MemberStatusActive,
			IsValidated: true,
			Password:    "123",
		},
		{
			ID:          "admin",
			Name:        "Administrador Santa Casa",
			Email:       "admin@santacasa.com",
			CPF:         "000.000.000-00",
			CardType:    domain.CardTypeDiamante,
			ExpiryDate:  "12/2030",
			BirthDate:   "01/01/1980",
			Status:      domain.MemberStatusActive,
			IsValidated: true,
			Password:    "admin",
		},
	}
}
