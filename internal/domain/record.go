package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// Domain is one of the two parallel entity kinds served by the API.
type Domain string

const (
	// DomainContent is the content-item domain.
	DomainContent Domain = "content"
	// DomainDeveloper is the developer-profile domain.
	DomainDeveloper Domain = "developer"
)

// DefaultLang is applied when a record or query carries no language.
const DefaultLang = "en"

// Record is the shared contract of an ingestable entity. The id is the join
// key across the record store key ("<domain>:<id>"), the vector index entry,
// and the recommendation merge.
type Record interface {
	RecordID() string
	RecordDomain() Domain
	// EmbeddingText builds the single descriptive text that is embedded.
	EmbeddingText() string
	// IndexMetadata is the flattened, index-queryable projection of the
	// record. Lossy: the record store JSON stays authoritative.
	IndexMetadata() map[string]string
	Language() string
}

// ContentItem is an ingestable piece of content. Overwritten by re-ingestion
// with the same id, never deleted.
type ContentItem struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Author string   `json:"author"`
	URL    string   `json:"url"`
	Tags   []string `json:"tags,omitempty"`
	Lang   string   `json:"lang"`
}

// ApplyDefaults fills the language if absent.
func (c *ContentItem) ApplyDefaults() {
	if c.Lang == "" {
		c.Lang = DefaultLang
	}
}

// Validate checks required fields and URL shape.
func (c *ContentItem) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("id is required")
	}
	if c.Title == "" {
		return fmt.Errorf("title is required")
	}
	if c.Author == "" {
		return fmt.Errorf("author is required")
	}
	if err := validateAbsoluteURL("url", c.URL); err != nil {
		return err
	}
	return nil
}

// RecordID implements Record.
func (c *ContentItem) RecordID() string { return c.ID }

// RecordDomain implements Record.
func (c *ContentItem) RecordDomain() Domain { return DomainContent }

// EmbeddingText builds the descriptive text from title and tags.
func (c *ContentItem) EmbeddingText() string {
	return fmt.Sprintf("%s: (Tags: %s)", c.Title, strings.Join(c.Tags, ", "))
}

// IndexMetadata implements Record.
func (c *ContentItem) IndexMetadata() map[string]string {
	return map[string]string{
		"title": c.Title,
		"url":   c.URL,
		"lang":  c.Lang,
		"tags":  strings.Join(c.Tags, ","),
	}
}

// Language implements Record.
func (c *ContentItem) Language() string { return c.Lang }

// DeveloperItem is an ingestable developer profile.
type DeveloperItem struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Avatar          string   `json:"avatar"`
	Intro           string   `json:"intro"`
	Skills          []string `json:"skills"`
	LinkToPortfolio string   `json:"linkToPortfolio"`
	Lang            string   `json:"lang"`
}

// ApplyDefaults fills the language if absent.
func (d *DeveloperItem) ApplyDefaults() {
	if d.Lang == "" {
		d.Lang = DefaultLang
	}
}

// Validate checks required fields, URL shape, and non-empty skills.
func (d *DeveloperItem) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("id is required")
	}
	if d.Name == "" {
		return fmt.Errorf("name is required")
	}
	if d.Intro == "" {
		return fmt.Errorf("intro is required")
	}
	if len(d.Skills) == 0 {
		return fmt.Errorf("skills must not be empty")
	}
	if err := validateAbsoluteURL("avatar", d.Avatar); err != nil {
		return err
	}
	if err := validateAbsoluteURL("linkToPortfolio", d.LinkToPortfolio); err != nil {
		return err
	}
	return nil
}

// RecordID implements Record.
func (d *DeveloperItem) RecordID() string { return d.ID }

// RecordDomain implements Record.
func (d *DeveloperItem) RecordDomain() Domain { return DomainDeveloper }

// EmbeddingText builds the descriptive text from name, intro, and skills.
func (d *DeveloperItem) EmbeddingText() string {
	return fmt.Sprintf("%s: %s (Skills: %s)", d.Name, d.Intro, strings.Join(d.Skills, ", "))
}

// IndexMetadata carries an explicit type discriminator so developer vectors
// stay distinguishable even if the domains ever share an index.
func (d *DeveloperItem) IndexMetadata() map[string]string {
	return map[string]string{
		"name":   d.Name,
		"intro":  d.Intro,
		"skills": strings.Join(d.Skills, ","),
		"lang":   d.Lang,
		"type":   string(DomainDeveloper),
	}
}

// Language implements Record.
func (d *DeveloperItem) Language() string { return d.Lang }

// MetadataFields lists the index metadata keys per domain, used as FT.SEARCH
// RETURN fields so query results never carry the raw vector blob.
func MetadataFields(dom Domain) []string {
	switch dom {
	case DomainDeveloper:
		return []string{"name", "intro", "skills", "lang", "type"}
	default:
		return []string{"title", "url", "lang", "tags"}
	}
}

func validateAbsoluteURL(field, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", field)
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%s must be an absolute URL", field)
	}
	return nil
}
