package models

import "sort"

// Content is a single playable/readable unit inside a chapter
type Content struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Type     string `json:"type"` // VIDEO, ARTICLE, QUIZ, PDF
	URL      string `json:"url"`
	Duration int    `json:"duration"` // seconds
	Order    int    `json:"order"`
}

// Chapter holds an ordered list of contents
type Chapter struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Order    int       `json:"order"`
	Contents []Content `json:"contents"`
}

// CourseDetail is the course record served to the player, read-only from the
// client's perspective except for marking contents viewed
type CourseDetail struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Author       string    `json:"author"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	Chapters     []Chapter `json:"chapters"`
}

// FlattenContents returns the single ordered play sequence: chapters sorted by
// their order field, each chapter's contents sorted by theirs, concatenated.
func (c *CourseDetail) FlattenContents() []Content {
	chapters := make([]Chapter, len(c.Chapters))
	copy(chapters, c.Chapters)
	sort.SliceStable(chapters, func(i, j int) bool {
		return chapters[i].Order < chapters[j].Order
	})

	var flat []Content
	for _, ch := range chapters {
		contents := make([]Content, len(ch.Contents))
		copy(contents, ch.Contents)
		sort.SliceStable(contents, func(i, j int) bool {
			return contents[i].Order < contents[j].Order
		})
		flat = append(flat, contents...)
	}
	return flat
}
