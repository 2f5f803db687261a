package domain

import (
	"strings"
	"testing"
)

func validContent() *ContentItem {
	return &ContentItem{
		ID:     "c1",
		Title:  "Vue Composition API",
		Author: "alex",
		URL:    "https://example.com/vue",
		Tags:   []string{"vue", "composition-api"},
		Lang:   "en",
	}
}

func validDeveloper() *DeveloperItem {
	return &DeveloperItem{
		ID:              "d1",
		Name:            "Alex",
		Avatar:          "https://example.com/a.png",
		Intro:           "Frontend developer",
		Skills:          []string{"vue", "nuxt"},
		LinkToPortfolio: "https://example.com/alex",
		Lang:            "en",
	}
}

func TestContentItem_ApplyDefaults(t *testing.T) {
	c := validContent()
	c.Lang = ""
	c.ApplyDefaults()
	if c.Lang != "en" {
		t.Errorf("expected default lang en, got %q", c.Lang)
	}

	c.Lang = "pt"
	c.ApplyDefaults()
	if c.Lang != "pt" {
		t.Errorf("explicit lang must survive defaults, got %q", c.Lang)
	}
}

func TestContentItem_Validate(t *testing.T) {
	if err := validContent().Validate(); err != nil {
		t.Fatalf("valid item rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*ContentItem)
	}{
		{"missing id", func(c *ContentItem) { c.ID = "" }},
		{"missing title", func(c *ContentItem) { c.Title = "" }},
		{"missing author", func(c *ContentItem) { c.Author = "" }},
		{"missing url", func(c *ContentItem) { c.URL = "" }},
		{"relative url", func(c *ContentItem) { c.URL = "/vue" }},
		{"hostless url", func(c *ContentItem) { c.URL = "https://" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := validContent()
			tc.mutate(c)
			if err := c.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestDeveloperItem_Validate(t *testing.T) {
	if err := validDeveloper().Validate(); err != nil {
		t.Fatalf("valid item rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*DeveloperItem)
	}{
		{"missing id", func(d *DeveloperItem) { d.ID = "" }},
		{"missing name", func(d *DeveloperItem) { d.Name = "" }},
		{"missing intro", func(d *DeveloperItem) { d.Intro = "" }},
		{"empty skills", func(d *DeveloperItem) { d.Skills = nil }},
		{"relative avatar", func(d *DeveloperItem) { d.Avatar = "a.png" }},
		{"relative portfolio", func(d *DeveloperItem) { d.LinkToPortfolio = "alex" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := validDeveloper()
			tc.mutate(d)
			if err := d.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestContentItem_EmbeddingText(t *testing.T) {
	c := validContent()
	got := c.EmbeddingText()
	want := "Vue Composition API: (Tags: vue, composition-api)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	c.Tags = nil
	if got := c.EmbeddingText(); got != "Vue Composition API: (Tags: )" {
		t.Errorf("got %q for tagless item", got)
	}
}

func TestDeveloperItem_EmbeddingText(t *testing.T) {
	d := validDeveloper()
	got := d.EmbeddingText()
	want := "Alex: Frontend developer (Skills: vue, nuxt)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestContentItem_IndexMetadata(t *testing.T) {
	meta := validContent().IndexMetadata()
	if meta["title"] != "Vue Composition API" {
		t.Errorf("unexpected title: %q", meta["title"])
	}
	if meta["tags"] != "vue,composition-api" {
		t.Errorf("tags must be comma-joined, got %q", meta["tags"])
	}
	if meta["lang"] != "en" {
		t.Errorf("unexpected lang: %q", meta["lang"])
	}
	if _, ok := meta["author"]; ok {
		t.Error("author must not be projected into index metadata")
	}
}

func TestDeveloperItem_IndexMetadata(t *testing.T) {
	meta := validDeveloper().IndexMetadata()
	if meta["type"] != "developer" {
		t.Errorf("expected type discriminator, got %q", meta["type"])
	}
	if meta["skills"] != "vue,nuxt" {
		t.Errorf("skills must be comma-joined, got %q", meta["skills"])
	}
}

func TestMetadataFields(t *testing.T) {
	content := MetadataFields(DomainContent)
	dev := MetadataFields(DomainDeveloper)

	if strings.Join(content, ",") != "title,url,lang,tags" {
		t.Errorf("unexpected content fields: %v", content)
	}
	if strings.Join(dev, ",") != "name,intro,skills,lang,type" {
		t.Errorf("unexpected developer fields: %v", dev)
	}
}
