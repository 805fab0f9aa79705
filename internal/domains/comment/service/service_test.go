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
	commentMocks "zifaf/internal/domains/comment/mocks"
	"zifaf/internal/domains/comment/model"
	"zifaf/internal/domains/comment/model/dto"
	"zifaf/internal/domains/comment/service"
	vendorMocks "zifaf/internal/domains/vendors/mocks"
	vendorModel "zifaf/internal/domains/vendors/model"
	"zifaf/shared/cache"
	cacheMocks "zifaf/shared/cache/mocks"
	"zifaf/shared/constant"
	gDto "zifaf/shared/dto"
	"zifaf/shared/failure"
)

func commentContext(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func TestCommentService_Post(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := commentMocks.NewMockComment(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockVendorRepo := vendorMocks.NewMockVendor(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockBookingRepo, mockVendorRepo, cfg, mockCache, mockOtel)

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	ctx := commentContext("customer-id", constant.RoleCustomer)

	vendor := vendorModel.Vendor{
		ID:         "vendor-id-123",
		UserID:     "owner-id",
		Name:       "Andalus Decor",
		VendorType: constant.VendorTypeDecoration,
		Visible:    true,
	}

	t.Run("success after a confirmed reservation", func(t *testing.T) {
		mockVendorRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(vendor, nil)

		mockBookingRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, comment model.Comment) error {
				assert.Equal(t, "customer-id", comment.UserID)
				assert.Equal(t, "vendor-id-123", comment.VendorID)
				assert.Equal(t, "Lovely venue, the staff went above and beyond.", comment.Text)

				return nil
			})

		err := svc.Post(ctx, dto.PostCommentRequest{
			VendorID: "vendor-id-123",
			Text:     "Lovely venue, the staff went above and beyond.",
		})

		assert.NoError(t, err)
	})

	t.Run("no confirmed reservation means no comment", func(t *testing.T) {
		mockVendorRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(vendor, nil)

		mockBookingRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := svc.Post(ctx, dto.PostCommentRequest{
			VendorID: "vendor-id-123",
			Text:     "Never actually booked them.",
		})

		assert.ErrorIs(t, err, failure.NotEligibleToComment)
	})

	t.Run("hidden vendor reads as not found", func(t *testing.T) {
		hidden := vendor
		hidden.Visible = false

		mockVendorRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(hidden, nil)

		err := svc.Post(ctx, dto.PostCommentRequest{
			VendorID: "vendor-id-123",
			Text:     "Trying to comment on an unlisted vendor.",
		})

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("unknown vendor", func(t *testing.T) {
		mockVendorRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(vendorModel.Vendor{}, nil)

		err := svc.Post(ctx, dto.PostCommentRequest{
			VendorID: "missing-vendor",
			Text:     "Hello?",
		})

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestCommentService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := commentMocks.NewMockComment(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockVendorRepo := vendorMocks.NewMockVendor(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockBookingRepo, mockVendorRepo, cfg, mockCache, mockOtel)

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	t.Run("forces newest-first ordering", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(cache.Nil).
			Times(2)

		mockRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(2, nil)

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Comment, error) {
				assert.Equal(t, constant.FieldCreatedAt, params.SortBy)
				assert.Equal(t, gDto.SortDirDesc, params.SortDir)

				return []model.Comment{
					{ID: "comment-2", VendorID: "vendor-id-123", Text: "second"},
					{ID: "comment-1", VendorID: "vendor-id-123", Text: "first"},
				}, nil
			})

		res, err := svc.GetAll(
			context.Background(),
			gDto.QueryParams{Page: 1, Limit: 10, SortBy: "text", SortDir: "ASC"},
			gDto.FilterGroup{},
		)

		assert.NoError(t, err)
		assert.Equal(t, 2, res.TotalData)
		assert.Len(t, res.Comments, 2)
		assert.Equal(t, "comment-2", res.Comments[0].ID)
	})
}

func TestCommentService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := commentMocks.NewMockComment(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockVendorRepo := vendorMocks.NewMockVendor(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockBookingRepo, mockVendorRepo, cfg, mockCache, mockOtel)

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	t.Run("admin removes a comment", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mockRepo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		err := svc.Delete(commentContext("admin-id", constant.RoleAdmin), "comment-id")

		assert.NoError(t, err)
	})

	t.Run("moderation is admin only", func(t *testing.T) {
		for _, role := range []string{constant.RoleCustomer, constant.RoleVendor} {
			err := svc.Delete(commentContext("user-id", role), "comment-id")

			assert.ErrorIs(t, err, failure.ForbiddenError)
		}
	})

	t.Run("unknown comment", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := svc.Delete(commentContext("admin-id", constant.RoleAdmin), "missing-comment")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
