package model

import "zifaf/shared/model"

const (
	TableName  = "listings"
	EntityName = "listing"

	FieldID            = "id"
	FieldVendorID      = "vendor_id"
	FieldKind          = "kind"
	FieldName          = "name"
	FieldDescription   = "description"
	FieldPrice         = "price"
	FieldMenCapacity   = "men_capacity"
	FieldWomenCapacity = "women_capacity"
	FieldImageURL      = "image_url"
)

type Listing struct {
	ID            string  `db:"id"`
	VendorID      string  `db:"vendor_id"`
	Kind          string  `db:"kind"`
	Name          string  `db:"name"`
	Description   *string `db:"description"`
	Price         float64 `db:"price"`
	MenCapacity   *int    `db:"men_capacity"`
	WomenCapacity *int    `db:"women_capacity"`
	ImageURL      *string `db:"image_url"`
	model.Metadata
}
