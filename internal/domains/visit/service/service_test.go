package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"zifaf/config"
	"zifaf/infras/otel/mocks"
	vendorMocks "zifaf/internal/domains/vendors/mocks"
	vendorModel "zifaf/internal/domains/vendors/model"
	visitMocks "zifaf/internal/domains/visit/mocks"
	"zifaf/internal/domains/visit/model"
	"zifaf/internal/domains/visit/model/dto"
	"zifaf/internal/domains/visit/service"
	cacheMocks "zifaf/shared/cache/mocks"
	"zifaf/shared/constant"
	"zifaf/shared/failure"
)

func visitContext(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func visitableVendor(ownerID string) vendorModel.Vendor {
	return vendorModel.Vendor{
		ID:         "vendor-id-123",
		UserID:     ownerID,
		Name:       "Jasmine Hall",
		VendorType: constant.VendorTypeHall,
		City:       "Amman",
		Visible:    true,
		Accepting:  true,
	}
}

func TestVisitService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := visitMocks.NewMockVisit(ctrl)
	mockVendorRepo := vendorMocks.NewMockVendor(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockVendorRepo, cfg, mockCache, mockOtel)

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	ctx := visitContext("customer-id", constant.RoleCustomer)

	t.Run("success", func(t *testing.T) {
		mockVendorRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(visitableVendor("owner-id"), nil)

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, visit model.Visit) error {
				assert.Equal(t, "customer-id", visit.UserID)
				assert.Equal(t, "vendor-id-123", visit.VendorID)
				assert.Equal(t, "14:30", visit.VisitTime)
				assert.False(t, visit.Accepted)

				return nil
			})

		err := svc.Create(ctx, dto.CreateVisitRequest{
			VendorID:  "vendor-id-123",
			VisitDate: "2026-10-20",
			VisitTime: "14:30",
		})

		assert.NoError(t, err)
	})

	t.Run("hidden vendor reads as missing", func(t *testing.T) {
		hidden := visitableVendor("owner-id")
		hidden.Visible = false

		mockVendorRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(hidden, nil)

		err := svc.Create(ctx, dto.CreateVisitRequest{
			VendorID:  "vendor-id-123",
			VisitDate: "2026-10-20",
			VisitTime: "14:30",
		})

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("malformed visit date", func(t *testing.T) {
		mockVendorRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(visitableVendor("owner-id"), nil)

		err := svc.Create(ctx, dto.CreateVisitRequest{
			VendorID:  "vendor-id-123",
			VisitDate: "20-10-2026",
			VisitTime: "14:30",
		})

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestVisitService_Accept(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := visitMocks.NewMockVisit(ctrl)
	mockVendorRepo := vendorMocks.NewMockVendor(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockVendorRepo, cfg, mockCache, mockOtel)

	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	pendingVisit := model.Visit{
		ID:       "visit-id",
		UserID:   "customer-id",
		VendorID: "vendor-id-123",
		Accepted: false,
	}

	t.Run("owner accepts a pending visit", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingVisit, nil)

		mockVendorRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(visitableVendor("owner-id"), nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, true, fields["accepted"])

				return nil
			})

		err := svc.Accept(visitContext("owner-id", constant.RoleVendor), "visit-id")

		assert.NoError(t, err)
	})

	t.Run("accepting twice is a no-op", func(t *testing.T) {
		accepted := pendingVisit
		accepted.Accepted = true

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(accepted, nil)

		mockVendorRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(visitableVendor("owner-id"), nil)

		err := svc.Accept(visitContext("owner-id", constant.RoleVendor), "visit-id")

		assert.NoError(t, err)
	})

	t.Run("only the visited vendor or an admin may accept", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingVisit, nil)

		mockVendorRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(visitableVendor("owner-id"), nil)

		err := svc.Accept(visitContext("another-owner", constant.RoleVendor), "visit-id")

		assert.ErrorIs(t, err, failure.ResourceRestrictedError)
	})

	t.Run("admin accepts on behalf of the vendor", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingVisit, nil)

		mockVendorRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(visitableVendor("owner-id"), nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		err := svc.Accept(visitContext("admin-id", constant.RoleAdmin), "visit-id")

		assert.NoError(t, err)
	})

	t.Run("unknown visit", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Visit{}, nil)

		err := svc.Accept(visitContext("owner-id", constant.RoleVendor), "missing-visit")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
