package dto

import (
	"zifaf/internal/domains/comment/model"
	"zifaf/shared"
	gDto "zifaf/shared/dto"
	gModel "zifaf/shared/model"
	"zifaf/shared/timezone"

	"github.com/google/uuid"
)

type PostCommentRequest struct {
	VendorID string `json:"vendor_id" validate:"required,uuid"`
	Text     string `json:"text"      validate:"required,max=2000"`
}

func (c *PostCommentRequest) ToModel(user string) model.Comment {
	return model.Comment{
		ID:       uuid.NewString(),
		UserID:   user,
		VendorID: c.VendorID,
		Text:     c.Text,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type CommentResponse struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	VendorID string `json:"vendor_id"`
	Text     string `json:"text"`
	gDto.Metadata
}

func (r *CommentResponse) FromModel(comment model.Comment) {
	r.ID = comment.ID
	r.UserID = comment.UserID
	r.VendorID = comment.VendorID
	r.Text = comment.Text
	r.Metadata.FromModel(comment.Metadata)
}

type GetCommentsResponse struct {
	Comments  []CommentResponse `json:"comments"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetCommentsResponse) FromModels(models []model.Comment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Comments = make([]CommentResponse, len(models))
	for i, mod := range models {
		r.Comments[i].FromModel(mod)
	}
}
