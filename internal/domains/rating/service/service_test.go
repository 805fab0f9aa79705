package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"zifaf/config"
	"zifaf/infras/otel/mocks"
	bookingMocks "zifaf/internal/domains/booking/mocks"
	"zifaf/internal/domains/rating/model/dto"
	"zifaf/internal/domains/rating/service"
	vendorMocks "zifaf/internal/domains/vendors/mocks"
	vendorModel "zifaf/internal/domains/vendors/model"
	cacheMocks "zifaf/shared/cache/mocks"
	"zifaf/shared/constant"
	"zifaf/shared/failure"
)

func ratedVendor(rate float64, count int) vendorModel.Vendor {
	return vendorModel.Vendor{
		ID:          "vendor-id-123",
		UserID:      "owner-id",
		Name:        "Layali Zaffa",
		VendorType:  constant.VendorTypeDJ,
		City:        "Irbid",
		Rate:        rate,
		RatingCount: count,
		Visible:     true,
		Accepting:   true,
	}
}

func TestRatingService_Submit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockVendorRepo := vendorMocks.NewMockVendor(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockVendorRepo, mockBookingRepo, cfg, mockCache, mockOtel)

	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "customer-id")

	t.Run("incremental mean over existing ratings", func(t *testing.T) {
		mockVendorRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(ratedVendor(4.0, 3), nil)

		mockBookingRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mockVendorRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.InDelta(t, 4.25, fields[vendorModel.FieldRate], 1e-9)
				assert.Equal(t, 4, fields[vendorModel.FieldRatingCount])

				return nil
			})

		res, err := svc.Submit(ctx, dto.SubmitRatingRequest{Stars: 5}, "vendor-id-123")

		assert.NoError(t, err)
		assert.InDelta(t, 4.25, res.Rate, 1e-9)
		assert.Equal(t, 4, res.RatingCount)
	})

	t.Run("first rating equals the stars given", func(t *testing.T) {
		mockVendorRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(ratedVendor(0, 0), nil)

		mockBookingRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mockVendorRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		res, err := svc.Submit(ctx, dto.SubmitRatingRequest{Stars: 3}, "vendor-id-123")

		assert.NoError(t, err)
		assert.InDelta(t, 3.0, res.Rate, 1e-9)
		assert.Equal(t, 1, res.RatingCount)
	})

	t.Run("no confirmed reservation means no rating", func(t *testing.T) {
		mockVendorRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(ratedVendor(4.0, 3), nil)

		mockBookingRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		_, err := svc.Submit(ctx, dto.SubmitRatingRequest{Stars: 5}, "vendor-id-123")

		assert.ErrorIs(t, err, failure.NotEligibleToRate)
	})

	t.Run("unknown vendor", func(t *testing.T) {
		mockVendorRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(vendorModel.Vendor{}, nil)

		_, err := svc.Submit(ctx, dto.SubmitRatingRequest{Stars: 5}, "missing-vendor")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("stars outside 1 to 5 rejected", func(t *testing.T) {
		for _, stars := range []int{0, 6, -1} {
			_, err := svc.Submit(ctx, dto.SubmitRatingRequest{Stars: stars}, "vendor-id-123")

			assert.ErrorIs(t, err, failure.InvalidStarValue)
		}
	})
}
