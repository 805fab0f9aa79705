package model

import (
	"zifaf/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "galleries"
	EntityName = "gallery"

	FieldID          = "id"
	FieldVendorID    = "vendor_id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldImages      = "images"
)

// Gallery is a vendor's image album. Image URLs are canonical public URLs
// stored at upload time and served as-is.
type Gallery struct {
	ID          string         `db:"id"`
	VendorID    string         `db:"vendor_id"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	Images      pq.StringArray `db:"images"`
	model.Metadata
}
