package glossary

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/translate-mock/internal/domain/language"
	"github.com/janhq/translate-mock/internal/infrastructure/store"
)

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

func newTestService(t *testing.T) (*Service, *testClock) {
	t.Helper()
	clock := &testClock{now: time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)}
	return NewService(language.Default(), store.Options{Clock: clock.Now}, zerolog.Nop()), clock
}

var enDe = DictionaryInput{SourceLang: "en", TargetLang: "de", Entries: "artist\tMaler\nprize\tPreis", Format: FormatTSV}

func TestCreateAndInfo(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	info, err := svc.Create(ctx, "My glossary", "owner", []DictionaryInput{
		enDe,
		{SourceLang: "DE", TargetLang: "EN", Entries: "Maler,artist", Format: FormatCSV},
	})
	require.NoError(t, err)

	_, err = uuid.Parse(info.ID)
	require.NoError(t, err)
	assert.Equal(t, "My glossary", info.Name)
	assert.Equal(t, []DictionaryInfo{
		{SourceLang: "en", TargetLang: "de", EntryCount: 2},
		{SourceLang: "de", TargetLang: "en", EntryCount: 1},
	}, info.Dictionaries)

	got, err := svc.Info(ctx, info.ID, "owner")
	require.NoError(t, err)
	assert.Equal(t, info, got)
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		gname  string
		inputs []DictionaryInput
		want   error
	}{
		{"missing name", "", []DictionaryInput{enDe}, ErrMissingName},
		{"no dictionaries", "g", nil, ErrMissingDictionaries},
		{"unsupported pair", "g", []DictionaryInput{{SourceLang: "en", TargetLang: "bg", Entries: "a\tb"}}, ErrUnsupportedPair},
		{"same language", "g", []DictionaryInput{{SourceLang: "en", TargetLang: "en", Entries: "a\tb"}}, ErrUnsupportedPair},
		{"bad entries", "g", []DictionaryInput{{SourceLang: "en", TargetLang: "de", Entries: "no tab"}}, ErrInvalidEntries},
		{"bad format", "g", []DictionaryInput{{SourceLang: "en", TargetLang: "de", Entries: "a\tb", Format: "json"}}, ErrEntriesFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.gname, "owner", tt.inputs)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Zero(t, svc.Len(), "failed creations register nothing")
}

func TestOwnershipIsEnforced(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	info, err := svc.Create(ctx, "g", "alice", []DictionaryInput{enDe})
	require.NoError(t, err)

	_, err = svc.Info(ctx, info.ID, "bob")
	assert.ErrorIs(t, err, ErrGlossaryNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, info.ID, "bob"), ErrGlossaryNotFound)
	assert.Empty(t, svc.List(ctx, "bob"))

	_, err = svc.Info(ctx, "not-a-uuid", "alice")
	assert.ErrorIs(t, err, ErrInvalidGlossaryID)
	_, err = svc.Info(ctx, uuid.NewString(), "alice")
	assert.ErrorIs(t, err, ErrGlossaryNotFound)
}

func TestListOrderedByCreation(t *testing.T) {
	svc, clock := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, "first", "owner", []DictionaryInput{enDe})
	require.NoError(t, err)
	clock.now = clock.now.Add(time.Second)
	second, err := svc.Create(ctx, "second", "owner", []DictionaryInput{enDe})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "other", "someone-else", []DictionaryInput{enDe})
	require.NoError(t, err)

	list := svc.List(ctx, "owner")
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
}

func TestEntriesAndRemoveDictionary(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	info, err := svc.Create(ctx, "g", "owner", []DictionaryInput{enDe})
	require.NoError(t, err)

	d, err := svc.Entries(ctx, info.ID, "owner", "EN", "DE")
	require.NoError(t, err)
	assert.Equal(t, "artist\tMaler\nprize\tPreis", EncodeTSV(d.Entries))

	_, err = svc.Entries(ctx, info.ID, "owner", "de", "en")
	assert.ErrorIs(t, err, ErrDictionaryNotFound)
	_, err = svc.Entries(ctx, info.ID, "owner", "en", "xx")
	assert.ErrorIs(t, err, ErrUnsupportedPair)

	require.NoError(t, svc.RemoveDictionary(ctx, info.ID, "owner", "en", "de"))
	assert.ErrorIs(t, svc.RemoveDictionary(ctx, info.ID, "owner", "en", "de"), ErrDictionaryNotFound)

	got, err := svc.Info(ctx, info.ID, "owner")
	require.NoError(t, err)
	assert.Empty(t, got.Dictionaries)
}

func TestPutDictionaryReplacesOnlyItsPair(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	info, err := svc.Create(ctx, "g", "owner", []DictionaryInput{
		enDe,
		{SourceLang: "en", TargetLang: "fr", Entries: "artist\tartiste"},
		{SourceLang: "de", TargetLang: "en", Entries: "Maler\tartist"},
	})
	require.NoError(t, err)

	di, err := svc.PutDictionary(ctx, info.ID, "owner", DictionaryInput{SourceLang: "EN", TargetLang: "DE", Entries: "only\tnur", Format: FormatTSV})
	require.NoError(t, err)
	assert.Equal(t, DictionaryInfo{SourceLang: "en", TargetLang: "de", EntryCount: 1}, di)

	got, err := svc.Info(ctx, info.ID, "owner")
	require.NoError(t, err)
	assert.Equal(t, []DictionaryInfo{
		{SourceLang: "en", TargetLang: "de", EntryCount: 1},
		{SourceLang: "en", TargetLang: "fr", EntryCount: 1},
		{SourceLang: "de", TargetLang: "en", EntryCount: 1},
	}, got.Dictionaries)

	di, err = svc.PutDictionary(ctx, info.ID, "owner", DictionaryInput{SourceLang: "fr", TargetLang: "de", Entries: "un\teins"})
	require.NoError(t, err)
	assert.Equal(t, "fr", di.SourceLang)
}

func TestPatch(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	info, err := svc.Create(ctx, "old", "owner", []DictionaryInput{enDe})
	require.NoError(t, err)

	got, err := svc.Patch(ctx, info.ID, "owner", "new", nil)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Name)

	_, err = svc.Patch(ctx, info.ID, "owner", "", []DictionaryInput{enDe, enDe})
	assert.ErrorIs(t, err, ErrTooManyDictionaries)

	_, err = svc.Patch(ctx, info.ID, "owner", "", []DictionaryInput{{SourceLang: "en", TargetLang: "de", Entries: "a\tb"}})
	assert.ErrorIs(t, err, ErrEntriesFormat)

	got, err = svc.Patch(ctx, info.ID, "owner", "", []DictionaryInput{{SourceLang: "en", TargetLang: "es", Entries: "a,b", Format: FormatCSV}})
	require.NoError(t, err)
	assert.Equal(t, "new", got.Name)
	assert.Len(t, got.Dictionaries, 2)
}

func TestLookupAndTranslate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	info, err := svc.Create(ctx, "g", "owner", []DictionaryInput{enDe})
	require.NoError(t, err)

	lookup, err := svc.Lookup(ctx, info.ID, "owner", "EN", "DE")
	require.NoError(t, err)
	out, ok := lookup("artist")
	assert.True(t, ok)
	assert.Equal(t, "Maler", out)

	_, err = svc.Lookup(ctx, info.ID, "owner", "EN", "FR")
	assert.ErrorIs(t, err, ErrDictionaryNotFound)

	g, err := svc.Get(ctx, info.ID, "owner")
	require.NoError(t, err)
	out, ok = g.Translate("prize", "en", "de")
	assert.True(t, ok)
	assert.Equal(t, "Preis", out)
	_, ok = g.Translate("unknown", "en", "de")
	assert.False(t, ok)
}

func TestDeleteAndExpiry(t *testing.T) {
	svc, clock := newTestService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, "a", "owner", []DictionaryInput{enDe})
	require.NoError(t, err)
	b, err := svc.Create(ctx, "b", "owner", []DictionaryInput{enDe})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, a.ID, "owner"))
	assert.ErrorIs(t, svc.Delete(ctx, a.ID, "owner"), ErrGlossaryNotFound)

	assert.Equal(t, 1, svc.Sweep(clock.now.Add(11*time.Minute)))
	_, err = svc.Info(ctx, b.ID, "owner")
	assert.ErrorIs(t, err, ErrGlossaryNotFound)
}
