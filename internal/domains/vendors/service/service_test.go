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
	"zifaf/internal/domains/vendors/model"
	"zifaf/internal/domains/vendors/model/dto"
	"zifaf/internal/domains/vendors/service"
	"zifaf/shared/cache"
	cacheMocks "zifaf/shared/cache/mocks"
	"zifaf/shared/constant"
	gDto "zifaf/shared/dto"
	"zifaf/shared/failure"
)

func vendorContext(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func listedVendor(ownerID string, visible bool) model.Vendor {
	return model.Vendor{
		ID:         "vendor-id-123",
		UserID:     ownerID,
		Name:       "Qasr Al Afrah",
		VendorType: constant.VendorTypeHall,
		City:       "Amman",
		Visible:    visible,
		Accepting:  true,
	}
}

func hasVisibleFilter(filter gDto.FilterGroup) bool {
	for _, f := range filter.Filters {
		if ff, ok := f.(gDto.Filter); ok && ff.Field == model.FieldVisible && ff.Value == true {
			return true
		}
	}

	return false
}

func TestVendorService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := vendorMocks.NewMockVendor(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	t.Run("visible vendor readable by anyone", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(cache.Nil)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(listedVendor("owner-id", true), nil)

		res, err := svc.Get(context.Background(), "vendor-id-123")

		assert.NoError(t, err)
		assert.Equal(t, "vendor-id-123", res.ID)
	})

	t.Run("hidden vendor reads as not found for anonymous", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(cache.Nil)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(listedVendor("owner-id", false), nil)

		_, err := svc.Get(context.Background(), "vendor-id-123")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("hidden vendor reads as not found for another customer", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(cache.Nil)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(listedVendor("owner-id", false), nil)

		_, err := svc.Get(vendorContext("customer-id", constant.RoleCustomer), "vendor-id-123")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("hidden vendor visible to its owner", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(cache.Nil)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(listedVendor("owner-id", false), nil)

		res, err := svc.Get(vendorContext("owner-id", constant.RoleVendor), "vendor-id-123")

		assert.NoError(t, err)
		assert.Equal(t, "vendor-id-123", res.ID)
	})

	t.Run("hidden vendor visible to admin", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(cache.Nil)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(listedVendor("owner-id", false), nil)

		res, err := svc.Get(vendorContext("admin-id", constant.RoleAdmin), "vendor-id-123")

		assert.NoError(t, err)
		assert.Equal(t, "vendor-id-123", res.ID)
	})

	t.Run("hidden vendor filtered on cache hit", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, out any) error {
				cached, ok := out.(*dto.VendorResponse)
				assert.True(t, ok)

				cached.ID = "vendor-id-123"
				cached.UserID = "owner-id"
				cached.Visible = false

				return nil
			})

		_, err := svc.Get(context.Background(), "vendor-id-123")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestVendorService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := vendorMocks.NewMockVendor(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	t.Run("public listing only shows visible vendors", func(t *testing.T) {
		mockRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
				assert.True(t, hasVisibleFilter(filter))

				return 1, nil
			})

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Vendor, error) {
				assert.True(t, hasVisibleFilter(filter))

				return []model.Vendor{listedVendor("owner-id", true)}, nil
			})

		res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd})

		assert.NoError(t, err)
		assert.Len(t, res.Vendors, 1)
	})

	t.Run("admin listing is unscoped", func(t *testing.T) {
		mockRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
				assert.False(t, hasVisibleFilter(filter))

				return 0, nil
			})

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Vendor, error) {
				assert.False(t, hasVisibleFilter(filter))

				return []model.Vendor{}, nil
			})

		_, err := svc.GetAll(vendorContext("admin-id", constant.RoleAdmin), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd})

		assert.NoError(t, err)
	})
}
