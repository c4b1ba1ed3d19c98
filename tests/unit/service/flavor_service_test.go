package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"beanvault/internal/parser"
	"beanvault/internal/port"
	"beanvault/internal/service"
	"beanvault/mocks"
)

func TestFlavorService_CategorizeProvider(t *testing.T) {
	beanRepo := new(mocks.MockBeanRepo)
	categorizer := new(mocks.MockFlavorCategorizer)
	svc := service.NewFlavorService(beanRepo, categorizer)

	profiles := []port.FlavorProfile{
		{Code: "YG-01", FlavorProfile: "柑橘, 花香"},
		{Code: "MD-02", FlavorProfile: "草本, 泥土"},
	}
	beanRepo.On("ListProfiles", mock.Anything, "yunnan", 2025, 6).Return(profiles, nil)
	categorizer.On("Categorize", mock.Anything, profiles, parser.DefaultFlavorCategories).
		Return([]port.FlavorAssignment{
			{Code: "YG-01", FlavorCategory: "明亮果酸型(Bright & Fruity Acidity)"},
			{Code: "MD-02", FlavorCategory: ""},
		}, nil)
	beanRepo.On("UpdateFlavorCategories", mock.Anything, "yunnan", 2025, 6,
		map[string]string{
			"YG-01": "明亮果酸型(Bright & Fruity Acidity)",
			"MD-02": parser.UncategorizedFlavor,
		}).Return(2, nil)

	result, err := svc.CategorizeProvider(context.Background(), "yunnan", 2025, 6)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Profiles)
	assert.Equal(t, 2, result.Categories)
	assert.Equal(t, 2, result.Updated)

	beanRepo.AssertExpectations(t)
	categorizer.AssertExpectations(t)
}

func TestFlavorService_CategorizeProvider_NothingToDo(t *testing.T) {
	beanRepo := new(mocks.MockBeanRepo)
	categorizer := new(mocks.MockFlavorCategorizer)
	svc := service.NewFlavorService(beanRepo, categorizer)

	beanRepo.On("ListProfiles", mock.Anything, "yunnan", 2025, 6).
		Return([]port.FlavorProfile{}, nil)

	result, err := svc.CategorizeProvider(context.Background(), "yunnan", 2025, 6)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Profiles)
	categorizer.AssertNotCalled(t, "Categorize", mock.Anything, mock.Anything, mock.Anything)
}

func TestFlavorService_CategorizeProvider_NoUsableAssignments(t *testing.T) {
	beanRepo := new(mocks.MockBeanRepo)
	categorizer := new(mocks.MockFlavorCategorizer)
	svc := service.NewFlavorService(beanRepo, categorizer)

	profiles := []port.FlavorProfile{{Code: "YG-01", FlavorProfile: "柑橘"}}
	beanRepo.On("ListProfiles", mock.Anything, "yunnan", 2025, 6).Return(profiles, nil)
	categorizer.On("Categorize", mock.Anything, profiles, mock.Anything).
		Return([]port.FlavorAssignment{{Code: "", FlavorCategory: "whatever"}}, nil)

	_, err := svc.CategorizeProvider(context.Background(), "yunnan", 2025, 6)
	require.Error(t, err)
	beanRepo.AssertNotCalled(t, "UpdateFlavorCategories", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFlavorService_CategorizeProvider_CategorizerError(t *testing.T) {
	beanRepo := new(mocks.MockBeanRepo)
	categorizer := new(mocks.MockFlavorCategorizer)
	svc := service.NewFlavorService(beanRepo, categorizer)

	profiles := []port.FlavorProfile{{Code: "YG-01", FlavorProfile: "柑橘"}}
	beanRepo.On("ListProfiles", mock.Anything, "yunnan", 2025, 6).Return(profiles, nil)
	categorizer.On("Categorize", mock.Anything, profiles, mock.Anything).
		Return(nil, errors.New("model unavailable"))

	_, err := svc.CategorizeProvider(context.Background(), "yunnan", 2025, 6)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model unavailable")
}
