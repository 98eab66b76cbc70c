package models

// Ebook is the minimal ebook record the storefront needs for previews
type Ebook struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	PreviewURL string `json:"previewUrl"`
}
