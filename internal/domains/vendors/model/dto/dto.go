package dto

import (
	"zifaf/internal/domains/vendors/model"
	"zifaf/shared"
	gDto "zifaf/shared/dto"
	gModel "zifaf/shared/model"
	"zifaf/shared/timezone"

	"github.com/google/uuid"
)

type RegisterVendorRequest struct {
	Name        string  `json:"name"        validate:"required,max=255"`
	VendorType  string  `json:"vendor_type" validate:"required,oneof=hall cake dj decoration photography"`
	City        string  `json:"city"        validate:"required,max=100"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Phone       *string `json:"phone"       validate:"omitempty,max=20"`
}

func (r *RegisterVendorRequest) ToModel(userID string) model.Vendor {
	return model.Vendor{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        r.Name,
		VendorType:  r.VendorType,
		City:        r.City,
		Description: r.Description,
		Phone:       r.Phone,
		Rate:        0,
		RatingCount: 0,
		Visible:     true,
		Accepting:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}
}

type UpdateVendorRequest struct {
	Name        *string `db:"name"        json:"name"        validate:"omitempty,max=255"`
	City        *string `db:"city"        json:"city"        validate:"omitempty,max=100"`
	Description *string `db:"description" json:"description" validate:"omitempty,max=2000"`
	Phone       *string `db:"phone"       json:"phone"       validate:"omitempty,max=20"`
	Visible     *bool   `db:"visible"     json:"visible"`
	Accepting   *bool   `db:"accepting"   json:"accepting"`
}

type VendorResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Name        string  `json:"name"`
	VendorType  string  `json:"vendor_type"`
	City        string  `json:"city"`
	Description *string `json:"description"`
	Phone       *string `json:"phone"`
	Rate        float64 `json:"rate"`
	RatingCount int     `json:"rating_count"`
	Visible     bool    `json:"visible"`
	Accepting   bool    `json:"accepting"`
	gDto.Metadata
}

func (r *VendorResponse) FromModel(vendor model.Vendor) {
	r.ID = vendor.ID
	r.UserID = vendor.UserID
	r.Name = vendor.Name
	r.VendorType = vendor.VendorType
	r.City = vendor.City
	r.Description = vendor.Description
	r.Phone = vendor.Phone
	r.Rate = vendor.Rate
	r.RatingCount = vendor.RatingCount
	r.Visible = vendor.Visible
	r.Accepting = vendor.Accepting
	r.Metadata.FromModel(vendor.Metadata)
}

type GetVendorsResponse struct {
	Vendors   []VendorResponse `json:"vendors"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetVendorsResponse) FromModels(models []model.Vendor, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Vendors = make([]VendorResponse, len(models))
	for i, mod := range models {
		r.Vendors[i].FromModel(mod)
	}
}
