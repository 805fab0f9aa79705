package dto

import (
	"fmt"

	"zifaf/internal/domains/visit/model"
	"zifaf/shared"
	"zifaf/shared/constant"
	gDto "zifaf/shared/dto"
	gModel "zifaf/shared/model"
	"zifaf/shared/timezone"

	"github.com/google/uuid"
)

type CreateVisitRequest struct {
	VendorID  string `json:"vendor_id"  validate:"required,uuid"`
	VisitDate string `json:"visit_date" validate:"required,datetime=2006-01-02"`
	VisitTime string `json:"visit_time" validate:"required,datetime=15:04"`
}

func (c *CreateVisitRequest) ToModel(user string) (model.Visit, error) {
	visitDate, err := timezone.Parse(constant.EventDateFormat, c.VisitDate)
	if err != nil {
		return model.Visit{}, fmt.Errorf("failed to parse visit date: %w", err)
	}

	return model.Visit{
		ID:        uuid.NewString(),
		UserID:    user,
		VendorID:  c.VendorID,
		VisitDate: visitDate,
		VisitTime: c.VisitTime,
		Accepted:  false,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type AcceptVisitRequest struct {
	Accepted bool `db:"accepted" json:"accepted"`
}

type VisitResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	VendorID  string `json:"vendor_id"`
	VisitDate string `json:"visit_date"`
	VisitTime string `json:"visit_time"`
	Accepted  bool   `json:"accepted"`
	gDto.Metadata
}

func (r *VisitResponse) FromModel(visit model.Visit) {
	r.ID = visit.ID
	r.UserID = visit.UserID
	r.VendorID = visit.VendorID
	r.VisitDate = timezone.Format(visit.VisitDate, constant.EventDateFormat)
	r.VisitTime = visit.VisitTime
	r.Accepted = visit.Accepted
	r.Metadata.FromModel(visit.Metadata)
}

type GetVisitsResponse struct {
	Visits    []VisitResponse `json:"visits"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetVisitsResponse) FromModels(models []model.Visit, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Visits = make([]VisitResponse, len(models))
	for i, mod := range models {
		r.Visits[i].FromModel(mod)
	}
}
