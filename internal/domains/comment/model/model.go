package model

import "zifaf/shared/model"

const (
	TableName  = "comments"
	EntityName = "comment"

	FieldID       = "id"
	FieldUserID   = "user_id"
	FieldVendorID = "vendor_id"
	FieldText     = "text"
)

// Comment is an append-only customer note on a vendor. There is no edit or
// delete in the customer flow.
type Comment struct {
	ID       string `db:"id"`
	UserID   string `db:"user_id"`
	VendorID string `db:"vendor_id"`
	Text     string `db:"text"`
	model.Metadata
}
