// Package docstore is a keyed JSON document store over sqlite. Documents are
// self-describing (they carry their own "type" and "version" fields); the
// store itself is schemaless. Filters match by structural subset equality on
// nested fields, translated to json_extract comparisons.
package docstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

type document struct {
	ID  string         `gorm:"column:id;primaryKey"`
	Doc datatypes.JSON `gorm:"column:doc"`
}

func (document) TableName() string { return "documents" }

// Open connects to the sqlite file at path (":memory:" works) and migrates
// the single documents table.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open docstore %q: %w", path, err)
	}
	if err := db.AutoMigrate(&document{}); err != nil {
		return nil, fmt.Errorf("migrate docstore: %w", err)
	}
	log.Println("opened docstore at:", path)
	return &Store{db: db}, nil
}

// Clause is the raw escape hatch for comparisons and ordering over a nested
// document field, e.g.
//
//	Clause{
//	    Where: "json_extract(doc, '$.meta.isoDate') > ?",
//	    Args:  []any{"2021-01-01"},
//	    Order: "json_extract(doc, '$.meta.isoDate') ASC",
//	}
//
// Date-string lexical ordering doubles as chronological ordering because
// dates are stored in YYYY-MM-DD form.
type Clause struct {
	Where string
	Args  []any
	Order string
}

// Filter is a structural-subset match document. Nested maps match nested
// fields ({"meta": {"isDraft": false}} matches doc.meta.isDraft == false).
type Filter map[string]any

func (s *Store) InsertOne(id string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return s.db.Create(&document{ID: id, Doc: datatypes.JSON(raw)}).Error
}

// ReplaceOne overwrites the document stored under id. Replacing an absent id
// is a no-op.
func (s *Store) ReplaceOne(id string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return s.db.Save(&document{ID: id, Doc: datatypes.JSON(raw)}).Error
}

func (s *Store) DeleteOne(id string) error {
	return s.db.Delete(&document{}, "id = ?", id).Error
}

// FindOne decodes the first matching document into out. Returns false when
// nothing matches.
func (s *Store) FindOne(filter Filter, out any, etc ...Clause) (bool, error) {
	var row document
	err := s.query(filter, etc...).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(row.Doc, out)
}

// Find decodes all matching documents into out, which must be a pointer to a
// slice.
func (s *Store) Find(filter Filter, out any, etc ...Clause) error {
	var rows []document
	if err := s.query(filter, etc...).Find(&rows).Error; err != nil {
		return err
	}
	raw := make([]json.RawMessage, len(rows))
	for i, r := range rows {
		raw[i] = json.RawMessage(r.Doc)
	}
	buf, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(buf, out)
}

// ClearAll deletes every document in the store.
func (s *Store) ClearAll() error {
	return s.db.Exec("DELETE FROM documents").Error
}

func (s *Store) query(filter Filter, etc ...Clause) *gorm.DB {
	tx := s.db.Model(&document{})
	paths := map[string]any{}
	flatten(filter, "", paths)

	keys := make([]string, 0, len(paths))
	for k := range paths {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, path := range keys {
		tx = tx.Where(fmt.Sprintf("json_extract(doc, '$.%s') = ?", path), paths[path])
	}
	for _, cl := range etc {
		if cl.Where != "" {
			tx = tx.Where(cl.Where, cl.Args...)
		}
		if cl.Order != "" {
			tx = tx.Order(cl.Order)
		}
	}
	return tx
}

func flatten(filter Filter, prefix string, paths map[string]any) {
	for key, val := range filter {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		switch sub := val.(type) {
		case Filter:
			flatten(sub, path, paths)
		case map[string]any:
			flatten(sub, path, paths)
		default:
			paths[path] = val
		}
	}
}
