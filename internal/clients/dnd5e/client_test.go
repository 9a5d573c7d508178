package dnd5e

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	rpgerr "github.com/KirkDiggler/tactics-engine/internal/errors"
	apiDnd5e "github.com/fadedpez/dnd5e-api/clients/dnd5e"
	"github.com/fadedpez/dnd5e-api/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSpellAPI struct {
	spells map[string]*entities.Spell
	refs   []*entities.ReferenceItem
	input  *apiDnd5e.ListSpellsInput
	err    error
}

func (f *fakeSpellAPI) GetSpell(key string) (*entities.Spell, error) {
	return f.spells[key], f.err
}

func (f *fakeSpellAPI) ListSpells(input *apiDnd5e.ListSpellsInput) ([]*entities.ReferenceItem, error) {
	f.input = input
	return f.refs, f.err
}

func TestClient_GetSpell(t *testing.T) {
	api := &fakeSpellAPI{spells: map[string]*entities.Spell{
		"sleep": {
			Key:           "sleep",
			Name:          "Sleep",
			SpellLevel:    1,
			Range:         "90 feet",
			Duration:      "1 minute",
			Concentration: false,
			SpellClasses:  []*entities.ReferenceItem{{Key: "wizard"}, nil, {Key: "bard"}},
		},
	}}
	c := &client{client: api}

	spell, err := c.GetSpell("sleep")
	require.NoError(t, err)
	assert.Equal(t, &Spell{
		Key:      "sleep",
		Name:     "Sleep",
		Level:    1,
		Range:    "90 feet",
		Duration: "1 minute",
		Classes:  []string{"wizard", "bard"},
	}, spell)

	_, err = c.GetSpell("wish")
	assert.True(t, rpgerr.IsNotFound(err))

	_, err = c.GetSpell("")
	assert.True(t, rpgerr.IsInvalidArgument(err))

	api.err = errors.New("timeout")
	_, err = c.GetSpell("sleep")
	assert.ErrorContains(t, err, "failed to get spell sleep")
}

func TestClient_ListSpellsByClass(t *testing.T) {
	api := &fakeSpellAPI{refs: []*entities.ReferenceItem{
		{Key: "fire-bolt", Name: "Fire Bolt"},
		{Key: ""},
		nil,
		{Key: "sleep", Name: "Sleep"},
	}}
	c := &client{client: api}

	refs, err := c.ListSpellsByClass("wizard")
	require.NoError(t, err)
	assert.Equal(t, []*SpellReference{
		{Key: "fire-bolt", Name: "Fire Bolt"},
		{Key: "sleep", Name: "Sleep"},
	}, refs)
	assert.Equal(t, "wizard", api.input.Class)

	_, err = c.ListSpellsByClass("")
	assert.True(t, rpgerr.IsInvalidArgument(err))
}

func TestRebaseTransport(t *testing.T) {
	var gotPath string
	mirror := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer mirror.Close()

	httpClient := &http.Client{Transport: &rebaseTransport{base: mirror.URL + "/srd"}}

	resp, err := httpClient.Get(DefaultBaseURL + "/spells/sleep")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "/srd/spells/sleep", gotPath)

	resp, err = httpClient.Get(mirror.URL + "/direct")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "/direct", gotPath)
}

func TestNew(t *testing.T) {
	_, err := New(nil)
	assert.True(t, rpgerr.IsInvalidArgument(err))

	c, err := New(&Config{BaseURL: "http://localhost:3000/api/"})
	require.NoError(t, err)
	assert.NotNil(t, c)
}
