package model

import "zifaf/shared/model"

const (
	TableName  = "vendors"
	EntityName = "vendor"

	FieldID          = "id"
	FieldUserID      = "user_id"
	FieldName        = "name"
	FieldVendorType  = "vendor_type"
	FieldCity        = "city"
	FieldDescription = "description"
	FieldPhone       = "phone"
	FieldRate        = "rate"
	FieldRatingCount = "rating_count"
	FieldVisible     = "visible"
	FieldAccepting   = "accepting"
)

type Vendor struct {
	ID          string  `db:"id"`
	UserID      string  `db:"user_id"`
	Name        string  `db:"name"`
	VendorType  string  `db:"vendor_type"`
	City        string  `db:"city"`
	Description *string `db:"description"`
	Phone       *string `db:"phone"`
	Rate        float64 `db:"rate"`
	RatingCount int     `db:"rating_count"`
	Visible     bool    `db:"visible"`
	Accepting   bool    `db:"accepting"`
	model.Metadata
}
