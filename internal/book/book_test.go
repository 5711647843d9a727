package book

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDraft(t *testing.T) {
	// late evening in Tokyo is still the 19th locally
	today := time.Date(2026, 10, 19, 23, 59, 0, 0, time.FixedZone("JST", 9*3600))

	d := NewDraft(today)

	assert.Equal(t, Draft{PublishedDate: "2026-10-19", ReadDate: "2026-10-19"}, d)
}

func TestDraft_SetGet(t *testing.T) {
	var d Draft
	for i, f := range Fields {
		require.NoError(t, d.Set(f, f+"-value"), "field %d", i)
	}
	for _, f := range Fields {
		assert.Equal(t, f+"-value", d.Get(f))
	}

	assert.ErrorIs(t, d.Set("id", "1"), ErrUnknownField)
	assert.Equal(t, "", d.Get("id"))
}

func TestDraft_SetOnlyTouchesOneField(t *testing.T) {
	d := Draft{Title: "T", Notes: "N"}
	require.NoError(t, d.Set(FieldPublisher, "P"))
	assert.Equal(t, Draft{Title: "T", Publisher: "P", Notes: "N"}, d)
}

func TestBook_JSONIsFlat(t *testing.T) {
	b := Book{ID: 1, Draft: Draft{Title: "Foo", ReadDate: "2024-01-02"}}

	raw, err := json.Marshal(b)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Len(t, m, len(Fields)+1)
	assert.Equal(t, float64(1), m["id"])
	assert.Equal(t, "Foo", m["title"])
	assert.Equal(t, "2024-01-02", m["read_date"])
}
