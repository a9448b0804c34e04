package docstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func setupTestStore(t *testing.T) *Store {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	return store
}

type testDoc struct {
	ID   string         `json:"_id"`
	Type string         `json:"type"`
	Name string         `json:"name"`
	Meta map[string]any `json:"meta"`
}

func TestInsertAndFindOne(t *testing.T) {
	store := setupTestStore(t)

	doc := testDoc{ID: "d1", Type: "widget", Name: "first"}
	assert.NoError(t, store.InsertOne(doc.ID, doc))

	var got testDoc
	found, err := store.FindOne(Filter{"_id": "d1"}, &got)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "first", got.Name)
}

func TestFindOne_NotFound(t *testing.T) {
	store := setupTestStore(t)

	var got testDoc
	found, err := store.FindOne(Filter{"_id": "missing"}, &got)
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestFindOne_NestedSubsetFilter(t *testing.T) {
	store := setupTestStore(t)

	store.InsertOne("d1", testDoc{ID: "d1", Type: "widget", Name: "a",
		Meta: map[string]any{"color": "red", "size": "L"}})
	store.InsertOne("d2", testDoc{ID: "d2", Type: "widget", Name: "b",
		Meta: map[string]any{"color": "blue", "size": "L"}})

	var got testDoc
	found, err := store.FindOne(Filter{
		"type": "widget",
		"meta": Filter{"color": "blue"},
	}, &got)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "b", got.Name)
}

func TestFind_WithOrderClause(t *testing.T) {
	store := setupTestStore(t)

	store.InsertOne("d1", testDoc{ID: "d1", Type: "widget", Name: "bravo"})
	store.InsertOne("d2", testDoc{ID: "d2", Type: "widget", Name: "alpha"})
	store.InsertOne("d3", testDoc{ID: "d3", Type: "gadget", Name: "zulu"})

	var docs []testDoc
	err := store.Find(Filter{"type": "widget"}, &docs, Clause{
		Order: "json_extract(doc, '$.name') ASC",
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, len(docs))
	assert.Equal(t, "alpha", docs[0].Name)
	assert.Equal(t, "bravo", docs[1].Name)
}

func TestFind_WithWhereClause(t *testing.T) {
	store := setupTestStore(t)

	store.InsertOne("d1", testDoc{ID: "d1", Type: "widget", Name: "alpha"})
	store.InsertOne("d2", testDoc{ID: "d2", Type: "widget", Name: "bravo"})
	store.InsertOne("d3", testDoc{ID: "d3", Type: "widget", Name: "charlie"})

	var docs []testDoc
	err := store.Find(Filter{"type": "widget"}, &docs, Clause{
		Where: "json_extract(doc, '$.name') > ?",
		Args:  []any{"alpha"},
		Order: "json_extract(doc, '$.name') ASC",
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, len(docs))
	assert.Equal(t, "bravo", docs[0].Name)
}

func TestReplaceOne(t *testing.T) {
	store := setupTestStore(t)

	store.InsertOne("d1", testDoc{ID: "d1", Type: "widget", Name: "before"})
	assert.NoError(t, store.ReplaceOne("d1", testDoc{ID: "d1", Type: "widget", Name: "after"}))

	var got testDoc
	found, _ := store.FindOne(Filter{"_id": "d1"}, &got)
	assert.True(t, found)
	assert.Equal(t, "after", got.Name)
}

func TestDeleteOne(t *testing.T) {
	store := setupTestStore(t)

	store.InsertOne("d1", testDoc{ID: "d1", Type: "widget", Name: "gone"})
	assert.NoError(t, store.DeleteOne("d1"))

	var got testDoc
	found, err := store.FindOne(Filter{"_id": "d1"}, &got)
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestClearAll(t *testing.T) {
	store := setupTestStore(t)

	store.InsertOne("d1", testDoc{ID: "d1", Type: "widget"})
	store.InsertOne("d2", testDoc{ID: "d2", Type: "gadget"})
	assert.NoError(t, store.ClearAll())

	var docs []testDoc
	assert.NoError(t, store.Find(Filter{}, &docs))
	assert.Equal(t, 0, len(docs))
}
