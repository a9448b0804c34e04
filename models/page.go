package models

import (
	"vilolog/common"
	"vilolog/docstore"
)

// PageVersion is the current page schema version tag.
const PageVersion = 0

const isoDateField = "json_extract(doc, '$.meta.isoDate')"

type PageMeta struct {
	Title    string `json:"title" validate:"required"`
	Slug     string `json:"slug" validate:"required,slug"`
	ISODate  string `json:"isoDate" validate:"required,isodate"`
	Template string `json:"template" validate:"required,endswith=.html"`
	IsDraft  bool   `json:"isDraft"`
}

// Page is the typed form of a persisted "page" document. Body holds the raw
// markup source (markdown); AuthorID references a user id but is set only at
// creation, not enforced as a foreign key.
type Page struct {
	ID        string   `json:"_id" validate:"required"`
	BlogID    string   `json:"blogId"`
	Version   int      `json:"version"`
	Type      string   `json:"type" validate:"required,eq=page"`
	Meta      PageMeta `json:"meta"`
	Body      string   `json:"body" validate:"required"`
	AuthorID  string   `json:"authorId" validate:"required"`
	CreatedAt int64    `json:"createdAt" validate:"required"`
}

func ValidateMeta(meta *PageMeta) error {
	if err := validate.Struct(meta); err != nil {
		return &common.SchemaError{Entity: "page meta", Detail: err.Error()}
	}
	return nil
}

func ValidatePage(p *Page, blogID string) error {
	if p.BlogID != blogID {
		return &common.SchemaError{Entity: "page", Detail: "blogId mismatch"}
	}
	if p.Version != PageVersion {
		return &common.SchemaError{Entity: "page", Detail: "unexpected schema version"}
	}
	if err := validate.Struct(p); err != nil {
		return &common.SchemaError{Entity: "page", Detail: err.Error()}
	}
	return nil
}

// BuildPage constructs a new, unsaved, valid page authored by author.
func BuildPage(meta PageMeta, body string, author *User, blogID string) (*Page, error) {
	p := &Page{
		ID:        common.GenerateID(),
		BlogID:    blogID,
		Version:   PageVersion,
		Type:      "page",
		Meta:      meta,
		Body:      body,
		AuthorID:  author.ID,
		CreatedAt: common.Now(),
	}
	if err := ValidatePage(p, blogID); err != nil {
		return nil, err
	}
	return p, nil
}

func InsertPage(s *docstore.Store, p *Page, blogID string) error {
	if err := ValidatePage(p, blogID); err != nil {
		return err
	}
	return s.InsertOne(p.ID, p)
}

func ReplacePage(s *docstore.Store, p *Page, blogID string) error {
	if err := ValidatePage(p, blogID); err != nil {
		return err
	}
	return s.ReplaceOne(p.ID, p)
}

func DeletePage(s *docstore.Store, p *Page, blogID string) error {
	return s.DeleteOne(p.ID)
}

func pageFilter(blogID string, extra docstore.Filter) docstore.Filter {
	f := docstore.Filter{"type": "page", "blogId": blogID}
	for k, v := range extra {
		f[k] = v
	}
	return f
}

func getPage(s *docstore.Store, extra docstore.Filter, blogID string, etc ...docstore.Clause) (*Page, error) {
	var p Page
	found, err := s.FindOne(pageFilter(blogID, extra), &p, etc...)
	if err != nil || !found {
		return nil, err
	}
	if p.Version != PageVersion {
		return nil, &common.SchemaError{Entity: "page", Detail: "unexpected schema version"}
	}
	return &p, nil
}

// GetPageByID returns nil without error when no such page exists.
func GetPageByID(s *docstore.Store, id, blogID string) (*Page, error) {
	return getPage(s, docstore.Filter{"_id": id}, blogID)
}

func GetPageBySlug(s *docstore.Store, slug, blogID string) (*Page, error) {
	return getPage(s, docstore.Filter{"meta": docstore.Filter{"slug": slug}}, blogID)
}

// EnsureSlugFree reports ErrSlugTaken when another page of the tenant already
// owns slug. Check-then-act: race-prone under concurrent writers, accepted
// because writers are a small trusted set of editors.
func EnsureSlugFree(s *docstore.Store, slug, blogID string) error {
	existing, err := GetPageBySlug(s, slug, blogID)
	if err != nil {
		return err
	}
	if existing != nil {
		return common.ErrSlugTaken
	}
	return nil
}

// ListPages returns the tenant's pages ordered by meta.isoDate descending
// (most recent first). Drafts are filtered out unless includeDrafts is set.
func ListPages(s *docstore.Store, blogID string, includeDrafts bool) ([]Page, error) {
	extra := docstore.Filter{}
	if !includeDrafts {
		extra["meta"] = docstore.Filter{"isDraft": false}
	}
	var pages []Page
	err := s.Find(pageFilter(blogID, extra), &pages,
		docstore.Clause{Order: isoDateField + " DESC"})
	return pages, err
}

// NextAndPrevPages returns the chronologically adjacent pages sharing
// page's template: next is the lowest isoDate strictly greater, prev the
// highest strictly lower. Either may be nil. Pages rendered through different
// templates never chain, even when part of the same series.
func NextAndPrevPages(s *docstore.Store, page *Page, blogID string, includeDrafts bool) (next, prev *Page, err error) {
	extra := docstore.Filter{"meta": docstore.Filter{"template": page.Meta.Template}}
	if !includeDrafts {
		extra["meta"].(docstore.Filter)["isDraft"] = false
	}
	next, err = getPage(s, extra, blogID, docstore.Clause{
		Where: isoDateField + " > ?",
		Args:  []any{page.Meta.ISODate},
		Order: isoDateField + " ASC",
	})
	if err != nil {
		return nil, nil, err
	}
	prev, err = getPage(s, extra, blogID, docstore.Clause{
		Where: isoDateField + " < ?",
		Args:  []any{page.Meta.ISODate},
		Order: isoDateField + " DESC",
	})
	if err != nil {
		return nil, nil, err
	}
	return next, prev, nil
}

// DeleteAllPages bulk-deletes every page of the tenant and reports how many
// went. Used by the reset operations.
func DeleteAllPages(s *docstore.Store, blogID string) (int, error) {
	pages, err := ListPages(s, blogID, true)
	if err != nil {
		return 0, err
	}
	for _, p := range pages {
		if err := s.DeleteOne(p.ID); err != nil {
			return 0, err
		}
	}
	return len(pages), nil
}
