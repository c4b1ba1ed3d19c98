package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"beanvault/internal/domain"
	"beanvault/internal/port"
	"beanvault/internal/service"
	"beanvault/mocks"
)

func TestBeanService_List_NormalizesPagination(t *testing.T) {
	beanRepo := new(mocks.MockBeanRepo)
	latestRepo := new(mocks.MockLatestDataRepo)
	svc := service.NewBeanService(beanRepo, latestRepo)

	beanRepo.On("List", mock.Anything, mock.Anything, 0, 10).
		Return([]domain.CoffeeBean{}, 0, nil)

	out, err := svc.List(context.Background(), service.BeanListInput{Page: -3, PageSize: 33})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, 10, out.PageSize)
	assert.NotNil(t, out.Beans)
	beanRepo.AssertExpectations(t)
}

func TestBeanService_List_ProviderWithoutPeriodUsesLatest(t *testing.T) {
	beanRepo := new(mocks.MockBeanRepo)
	latestRepo := new(mocks.MockLatestDataRepo)
	svc := service.NewBeanService(beanRepo, latestRepo)

	latestRepo.On("Get", mock.Anything, "yunnan").
		Return(&domain.LatestData{Provider: "yunnan", DataYear: 2025, DataMonth: 6}, nil)
	beanRepo.On("List", mock.Anything,
		port.BeanFilter{Provider: "yunnan", DataYear: 2025, DataMonth: 6}, 0, 10).
		Return([]domain.CoffeeBean{{Name: "Yirgacheffe"}}, 1, nil)

	out, err := svc.List(context.Background(), service.BeanListInput{Provider: "yunnan"})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Total)
	beanRepo.AssertExpectations(t)
	latestRepo.AssertExpectations(t)
}

func TestBeanService_List_ExplicitPeriodSkipsLatestLookup(t *testing.T) {
	beanRepo := new(mocks.MockBeanRepo)
	latestRepo := new(mocks.MockLatestDataRepo)
	svc := service.NewBeanService(beanRepo, latestRepo)

	beanRepo.On("List", mock.Anything,
		port.BeanFilter{Provider: "yunnan", DataYear: 2024, DataMonth: 3}, 0, 10).
		Return([]domain.CoffeeBean{}, 0, nil)

	_, err := svc.List(context.Background(), service.BeanListInput{
		Provider: "yunnan", DataYear: 2024, DataMonth: 3,
	})
	require.NoError(t, err)
	latestRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestBeanService_Latest_CachesResult(t *testing.T) {
	beanRepo := new(mocks.MockBeanRepo)
	latestRepo := new(mocks.MockLatestDataRepo)
	svc := service.NewBeanService(beanRepo, latestRepo)

	latestRepo.On("Get", mock.Anything, "yunnan").
		Return(&domain.LatestData{Provider: "yunnan", DataYear: 2025, DataMonth: 6}, nil).
		Once()

	first, err := svc.Latest(context.Background(), "yunnan")
	require.NoError(t, err)
	second, err := svc.Latest(context.Background(), "yunnan")
	require.NoError(t, err)

	assert.Equal(t, first.DataYear, second.DataYear)
	latestRepo.AssertExpectations(t)
	latestRepo.AssertNumberOfCalls(t, "Get", 1)
}

func TestBeanService_InvalidateLatest_DropsCache(t *testing.T) {
	beanRepo := new(mocks.MockBeanRepo)
	latestRepo := new(mocks.MockLatestDataRepo)
	svc := service.NewBeanService(beanRepo, latestRepo)

	latestRepo.On("Get", mock.Anything, "yunnan").
		Return(&domain.LatestData{Provider: "yunnan", DataYear: 2025, DataMonth: 6}, nil).
		Twice()

	_, err := svc.Latest(context.Background(), "yunnan")
	require.NoError(t, err)

	svc.InvalidateLatest("yunnan")

	_, err = svc.Latest(context.Background(), "yunnan")
	require.NoError(t, err)
	latestRepo.AssertNumberOfCalls(t, "Get", 2)
}

func TestBeanService_GetByKey_ResolvesLatestPeriod(t *testing.T) {
	beanRepo := new(mocks.MockBeanRepo)
	latestRepo := new(mocks.MockLatestDataRepo)
	svc := service.NewBeanService(beanRepo, latestRepo)

	latestRepo.On("Get", mock.Anything, "yunnan").
		Return(&domain.LatestData{Provider: "yunnan", DataYear: 2025, DataMonth: 6}, nil)
	beanRepo.On("GetByKey", mock.Anything, "yunnan", 2025, 6, "YG-01").
		Return(&domain.CoffeeBean{Code: "YG-01", Name: "Yirgacheffe"}, nil)

	bean, err := svc.GetByKey(context.Background(), "yunnan", 0, 0, "YG-01")
	require.NoError(t, err)
	assert.Equal(t, "Yirgacheffe", bean.Name)
	beanRepo.AssertExpectations(t)
}

func TestBeanService_GetByKey_NotFound(t *testing.T) {
	beanRepo := new(mocks.MockBeanRepo)
	latestRepo := new(mocks.MockLatestDataRepo)
	svc := service.NewBeanService(beanRepo, latestRepo)

	beanRepo.On("GetByKey", mock.Anything, "yunnan", 2025, 6, "nope").
		Return(nil, domain.ErrNotFound)

	_, err := svc.GetByKey(context.Background(), "yunnan", 2025, 6, "nope")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBeanService_PriceTrends(t *testing.T) {
	beanRepo := new(mocks.MockBeanRepo)
	latestRepo := new(mocks.MockLatestDataRepo)
	svc := service.NewBeanService(beanRepo, latestRepo)

	price := 84.0
	beanRepo.On("PriceTrends", mock.Anything, "Yirgacheffe").
		Return([]domain.PricePoint{
			{Name: "Yirgacheffe", DataYear: 2025, DataMonth: 5, PricePerKg: &price},
			{Name: "Yirgacheffe", DataYear: 2025, DataMonth: 6, PricePerKg: &price},
		}, nil)

	points, err := svc.PriceTrends(context.Background(), "Yirgacheffe")
	require.NoError(t, err)
	assert.Len(t, points, 2)
}
