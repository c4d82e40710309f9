package repository

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/E72-BI/cartao-santa-casa/internal/domain"
	"github.com/E72-BI/cartao-santa-casa/internal/persistence"
)

func newTestDirectory(t *testing.T) (*MemberDirectory, *persistence.MemoryStore) {
	t.Helper()
	store := persistence.NewMemoryStore()
	return NewMemberDirectory(store, zap.NewNop()), store
}

func testMember(id, name, email string) domain.Member {
	return domain.Member{
		ID:          id,
		Name:        name,
		Email:       email,
		CPF:         "111.222.333-44",
		CardType:    domain.CardTypePrata,
		ExpiryDate:  "09/2031",
		BirthDate:   "01/01/2000",
		Status:      domain.MemberStatusActive,
		IsValidated: true,
	}
}

func TestFindByEmailIsCaseInsensitive(t *testing.T) {
	dir, _ := newTestDirectory(t)
	m := testMember("m1", "ANA SILVA", "a@b.com")
	dir.Insert(context.Background(), m)

	upper, ok := dir.FindByEmail("A@B.com")
	require.True(t, ok)
	lower, ok := dir.FindByEmail("a@b.com")
	require.True(t, ok)
	assert.Equal(t, upper, lower)
	assert.Equal(t, m, upper)
}

func TestInsertThenFindReturnsRecord(t *testing.T) {
	dir, _ := newTestDirectory(t)
	m := testMember("m1", "EUDES CAVALCANTE", "eudes@exemplo.com")

	dir.Insert(context.Background(), m)

	found, ok := dir.FindByEmail(m.Email)
	require.True(t, ok)
	assert.Equal(t, m, found)
}

func TestFindByEmailFirstMatchWinsUnderDuplicates(t *testing.T) {
	dir, _ := newTestDirectory(t)
	first := testMember("m1", "FIRST", "dup@exemplo.com")
	second := testMember("m2", "SECOND", "DUP@exemplo.com")
	dir.Insert(context.Background(), first, second)

	found, ok := dir.FindByEmail("dup@exemplo.com")
	require.True(t, ok)
	assert.Equal(t, "m1", found.ID)
}

func TestSetPassword(t *testing.T) {
	dir, _ := newTestDirectory(t)
	ctx := context.Background()
	dir.Insert(ctx, testMember("m1", "ANA", "ana@x.com"))

	dir.SetPassword(ctx, "ANA@X.com", "1234")

	found, ok := dir.FindByEmail("ana@x.com")
	require.True(t, ok)
	assert.Equal(t, "1234", found.Password)
}

func TestMarkValidated(t *testing.T) {
	dir, _ := newTestDirectory(t)
	ctx := context.Background()
	m := testMember("m1", "ANA", "ana@x.com")
	m.IsValidated = false
	dir.Insert(ctx, m)

	dir.MarkValidated(ctx, "Ana@X.com")

	found, ok := dir.FindByEmail("ana@x.com")
	require.True(t, ok)
	assert.True(t, found.IsValidated)
}

func TestMutationsAreNoOpsForUnknownTargets(t *testing.T) {
	dir, _ := newTestDirectory(t)
	ctx := context.Background()
	m := testMember("m1", "ANA", "ana@x.com")
	dir.Insert(ctx, m)

	assert.NotPanics(t, func() {
		dir.SetPassword(ctx, "ghost@x.com", "1234")
		dir.MarkValidated(ctx, "ghost@x.com")
		dir.Update(ctx, testMember("ghost", "GHOST", "ghost@x.com"))
		dir.Remove(ctx, "ghost")
	})

	assert.Equal(t, []domain.Member{m}, dir.All())
}

func TestUpdateReplacesByIDAndIsIdempotent(t *testing.T) {
	dir, _ := newTestDirectory(t)
	ctx := context.Background()
	dir.Insert(ctx, testMember("m1", "ANA", "ana@x.com"), testMember("m2", "BIA", "bia@x.com"))

	edited := testMember("m1", "ANA MARIA", "ana@x.com")
	edited.CardType = domain.CardTypeOuro

	dir.Update(ctx, edited)
	once := dir.All()

	dir.Update(ctx, edited)
	twice := dir.All()

	assert.Equal(t, once, twice)
	assert.Equal(t, "ANA MARIA", once[0].Name)
	assert.Equal(t, "BIA", once[1].Name)
}

func TestUpdateRefreshesActiveSession(t *testing.T) {
	store := persistence.NewMemoryStore()
	logger := zap.NewNop()
	sessions := NewSessionStore(store, logger)
	dir := NewMemberDirectory(store, logger)
	dir.BindSession(sessions)
	ctx := context.Background()

	m := testMember("m1", "ANA", "ana@x.com")
	dir.Insert(ctx, m)
	sessions.SignIn(ctx, m)

	edited := m
	edited.Status = domain.MemberStatusInactive
	dir.Update(ctx, edited)

	sess := sessions.Current()
	require.NotNil(t, sess.Member)
	assert.Equal(t, domain.MemberStatusInactive, sess.Member.Status)

	// a different member's update must not touch the session
	other := testMember("m2", "BIA", "bia@x.com")
	dir.Insert(ctx, other)
	other.Name = "BIA EDITED"
	dir.Update(ctx, other)
	assert.Equal(t, "ANA", sessions.Current().Member.Name)
}

func TestRemoveDeletesByID(t *testing.T) {
	dir, _ := newTestDirectory(t)
	ctx := context.Background()
	dir.Insert(ctx, testMember("m1", "ANA", "ana@x.com"), testMember("m2", "BIA", "bia@x.com"))

	dir.Remove(ctx, "m1")

	all := dir.All()
	require.Len(t, all, 1)
	assert.Equal(t, "m2", all[0].ID)
	_, ok := dir.FindByEmail("ana@x.com")
	assert.False(t, ok)
}

func TestSearchMatchesNameEmailAndCPF(t *testing.T) {
	dir, _ := newTestDirectory(t)
	ctx := context.Background()
	a := testMember("m1", "ANA SILVA", "ana@x.com")
	b := testMember("m2", "BIA COSTA", "bia@y.com")
	b.CPF = "987.654.321-11"
	dir.Insert(ctx, a, b)

	assert.Equal(t, []domain.Member{a}, dir.Search("silva"))
	assert.Equal(t, []domain.Member{b}, dir.Search("bia@"))
	assert.Equal(t, []domain.Member{b}, dir.Search("987.654"))
	assert.Len(t, dir.Search(""), 2)
	assert.Empty(t, dir.Search("nobody"))
}

func TestEveryMutationPersistsWholeCollection(t *testing.T) {
	dir, store := newTestDirectory(t)
	ctx := context.Background()
	dir.Insert(ctx, testMember("m1", "ANA", "ana@x.com"))
	dir.SetPassword(ctx, "ana@x.com", "1234")

	raw, err := store.Get(ctx, persistence.KeyDirectory)
	require.NoError(t, err)

	var persisted []domain.Member
	require.NoError(t, json.Unmarshal(raw, &persisted))
	require.Len(t, persisted, 1)
	assert.Equal(t, "1234", persisted[0].Password)

	// a fresh directory over the same store sees the same collection
	reloaded := NewMemberDirectory(store, zap.NewNop())
	reloaded.Load(ctx, nil)
	assert.Equal(t, dir.All(), reloaded.All())
}

func TestLoadSeedsEmptyStoreOnly(t *testing.T) {
	dir, store := newTestDirectory(t)
	ctx := context.Background()

	dir.Load(ctx, SeedMembers())
	require.Len(t, dir.All(), 2)

	// seeding persisted; a second load with a different seed must keep the data
	again := NewMemberDirectory(store, zap.NewNop())
	again.Load(ctx, []domain.Member{testMember("x", "X", "x@x.com")})
	assert.Equal(t, dir.All(), again.All())
}
