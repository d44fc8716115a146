package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// AnswerUnknown fills the answer of a parsed question that had no answer marker.
	AnswerUnknown = "N/A"

	// CategoryUnknown is used for both category and subcategory when no keyword group matches.
	CategoryUnknown = "Unknown"

	// MinStemLength is the exclusive lower bound on stem length for a retained item.
	MinStemLength = 10
	// MinOptions is the minimum number of options for a retained item.
	MinOptions = 2
)

// Question is one multiple-choice exam item. Created by ingestion, immutable afterwards.
type Question struct {
	ID          int64     `json:"id,omitempty"`
	Stem        string    `json:"stem"`
	Options     Options   `json:"options"`
	Answer      string    `json:"answer"`
	Explanation string    `json:"explanation"`
	Category    string    `json:"category,omitempty"`
	Subcategory string    `json:"subcategory,omitempty"`
	Source      string    `json:"source,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// IsRetainable reports whether the item passes the noise filter applied after structuring.
func (q *Question) IsRetainable() bool {
	return utf8.RuneCountInString(strings.TrimSpace(q.Stem)) > MinStemLength && len(q.Options) >= MinOptions
}

// SimilarityBase is the text whose length drives the similarity ranking.
func (q *Question) SimilarityBase() string {
	if len(q.Options) == 0 {
		return q.Stem
	}
	return q.Stem + " " + q.Options.JoinedText()
}

// Filter narrows question lookups. Empty fields match everything.
type Filter struct {
	Category    string
	Subcategory string
}

// CategoryCount is one category/subcategory pair with its question count.
type CategoryCount struct {
	Category    string `json:"category" db:"category"`
	Subcategory string `json:"subcategory" db:"subcategory"`
	Count       int    `json:"count" db:"count"`
}

// PageSource tells where a page's text came from.
type PageSource string

const (
	PageSourceEmbedded PageSource = "embedded"
	PageSourceOCR      PageSource = "ocr"
)

// PageText is the resolved text of one PDF page. Index is 1-based.
type PageText struct {
	Index  int        `json:"index"`
	Source PageSource `json:"source"`
	Text   string     `json:"text"`
}

// IngestResult summarises one ingestion run.
type IngestResult struct {
	Source        string      `json:"source"`
	Items         []*Question `json:"items"`
	Inserted      int         `json:"inserted"`
	Pages         int         `json:"pages"`
	SkippedChunks int         `json:"skipped_chunks"`
	ArtifactPath  string      `json:"artifact_path,omitempty"`
}
