package dto

import (
	"zifaf/internal/domains/listing/model"
	"zifaf/shared"
	gDto "zifaf/shared/dto"
	gModel "zifaf/shared/model"
	"zifaf/shared/timezone"

	"github.com/google/uuid"
)

type CreateListingRequest struct {
	VendorID      string  `json:"vendor_id"      validate:"required,uuid"`
	Name          string  `json:"name"           validate:"required,max=255"`
	Description   *string `json:"description"    validate:"omitempty,max=2000"`
	Price         float64 `json:"price"          validate:"required,gte=0"`
	MenCapacity   *int    `json:"men_capacity"   validate:"omitempty,gte=0"`
	WomenCapacity *int    `json:"women_capacity" validate:"omitempty,gte=0"`
	ImageURL      *string `json:"image_url"      validate:"omitempty,url"`
}

func (c *CreateListingRequest) ToModel(kind, user string) model.Listing {
	return model.Listing{
		ID:            uuid.NewString(),
		VendorID:      c.VendorID,
		Kind:          kind,
		Name:          c.Name,
		Description:   c.Description,
		Price:         c.Price,
		MenCapacity:   c.MenCapacity,
		WomenCapacity: c.WomenCapacity,
		ImageURL:      c.ImageURL,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateListingRequest struct {
	Name          *string  `db:"name"           json:"name"           validate:"omitempty,max=255"`
	Description   *string  `db:"description"    json:"description"    validate:"omitempty,max=2000"`
	Price         *float64 `db:"price"          json:"price"          validate:"omitempty,gte=0"`
	MenCapacity   *int     `db:"men_capacity"   json:"men_capacity"   validate:"omitempty,gte=0"`
	WomenCapacity *int     `db:"women_capacity" json:"women_capacity" validate:"omitempty,gte=0"`
	ImageURL      *string  `db:"image_url"      json:"image_url"      validate:"omitempty,url"`
}

type ListingResponse struct {
	ID            string  `json:"id"`
	VendorID      string  `json:"vendor_id"`
	Kind          string  `json:"kind"`
	Name          string  `json:"name"`
	Description   *string `json:"description"`
	Price         float64 `json:"price"`
	MenCapacity   *int    `json:"men_capacity"`
	WomenCapacity *int    `json:"women_capacity"`
	ImageURL      *string `json:"image_url"`
	gDto.Metadata
}

func (r *ListingResponse) FromModel(listing model.Listing) {
	r.ID = listing.ID
	r.VendorID = listing.VendorID
	r.Kind = listing.Kind
	r.Name = listing.Name
	r.Description = listing.Description
	r.Price = listing.Price
	r.MenCapacity = listing.MenCapacity
	r.WomenCapacity = listing.WomenCapacity
	r.ImageURL = listing.ImageURL
	r.Metadata.FromModel(listing.Metadata)
}

type GetListingsResponse struct {
	Listings  []ListingResponse `json:"listings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetListingsResponse) FromModels(models []model.Listing, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Listings = make([]ListingResponse, len(models))
	for i, mod := range models {
		r.Listings[i].FromModel(mod)
	}
}
