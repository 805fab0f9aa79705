package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"zifaf/internal/domains/gallery/model"
	"zifaf/internal/domains/gallery/model/dto"
	gModel "zifaf/shared/model"
	"zifaf/shared/timezone"
)

func TestCreateGalleryRequest_ToModel(t *testing.T) {
	req := dto.CreateGalleryRequest{
		VendorID:    "vendor-id-123",
		Title:       "Winter Collection",
		Description: "Indoor shoots",
		Images:      []string{"https://cdn.example.com/gallery/a.jpg", "https://cdn.example.com/gallery/b.jpg"},
	}

	gallery := req.ToModel("owner-id")

	assert.NotEmpty(t, gallery.ID)
	assert.Equal(t, "vendor-id-123", gallery.VendorID)
	assert.Equal(t, "Winter Collection", gallery.Title)
	assert.Equal(t, "Indoor shoots", gallery.Description)
	assert.Len(t, gallery.Images, 2)
	assert.Equal(t, "owner-id", gallery.CreatedBy)
	assert.Equal(t, "owner-id", gallery.ModifiedBy)
}

func TestGalleryResponse_FromModel(t *testing.T) {
	gallery := model.Gallery{
		ID:          "gallery-id",
		VendorID:    "vendor-id-123",
		Title:       "Winter Collection",
		Description: "Indoor shoots",
		Images:      []string{"https://cdn.example.com/gallery/a.jpg"},
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "owner-id",
			ModifiedBy: "owner-id",
		},
	}

	var res dto.GalleryResponse
	res.FromModel(gallery)

	assert.Equal(t, gallery.ID, res.ID)
	assert.Equal(t, gallery.VendorID, res.VendorID)
	assert.Equal(t, gallery.Title, res.Title)
	assert.Equal(t, []string(gallery.Images), res.Images)
	assert.Equal(t, "owner-id", res.CreatedBy)
}

func TestGetGalleriesResponse_FromModels(t *testing.T) {
	models := []model.Gallery{
		{ID: "gallery-1", Title: "First"},
		{ID: "gallery-2", Title: "Second"},
	}

	var res dto.GetGalleriesResponse
	res.FromModels(models, 25, 10)

	assert.Equal(t, 25, res.TotalData)
	assert.Equal(t, 3, res.TotalPage)
	assert.Len(t, res.Galleries, 2)
	assert.Equal(t, "gallery-1", res.Galleries[0].ID)
	assert.Equal(t, "gallery-2", res.Galleries[1].ID)
}

func TestGetGalleriesResponse_FromModels_EmptyList(t *testing.T) {
	var res dto.GetGalleriesResponse
	res.FromModels(nil, 0, 10)

	assert.Equal(t, 0, res.TotalData)
	assert.Equal(t, 1, res.TotalPage)
	assert.Empty(t, res.Galleries)
}

func TestUploadImageResponse_FromModel(t *testing.T) {
	var res dto.UploadImageResponse
	res.FromModel("https://cdn.example.com/gallery/a.jpg", "a.jpg")

	assert.Equal(t, "https://cdn.example.com/gallery/a.jpg", res.URL)
	assert.Equal(t, "a.jpg", res.FileName)
}
