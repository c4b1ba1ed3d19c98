package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"beanvault/internal/domain"
	"beanvault/internal/service"
	"beanvault/mocks"
)

func TestParseQueueWorker_DispatchesClaimedLists(t *testing.T) {
	priceListRepo := new(mocks.MockPriceListRepo)
	ingestService := new(mocks.MockIngestService)

	pl := domain.PriceList{
		ID:       uuid.New(),
		Provider: "yunnan",
		Status:   domain.ParseStatusProcessing,
	}

	priceListRepo.On("ClaimQueued", mock.Anything, 2).
		Return([]domain.PriceList{pl}, nil).Once()
	priceListRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.PriceList{}, nil).Maybe()
	ingestService.On("ParsePriceList", mock.Anything, mock.AnythingOfType("*domain.PriceList"), 5).
		Return().Once()

	worker := service.NewParseQueueWorker(priceListRepo, ingestService, service.ParseQueueConfig{
		PollInterval: 50 * time.Millisecond,
		MaxRetries:   5,
		Concurrency:  2,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not shut down")
	}

	priceListRepo.AssertExpectations(t)
	ingestService.AssertExpectations(t)
}

func TestParseQueueWorker_SurvivesClaimErrors(t *testing.T) {
	priceListRepo := new(mocks.MockPriceListRepo)
	ingestService := new(mocks.MockIngestService)

	priceListRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return(nil, errors.New("db connection lost"))

	worker := service.NewParseQueueWorker(priceListRepo, ingestService, service.ParseQueueConfig{
		PollInterval: 50 * time.Millisecond,
		MaxRetries:   5,
		Concurrency:  2,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not shut down")
	}

	ingestService.AssertNotCalled(t, "ParsePriceList", mock.Anything, mock.Anything, mock.Anything)
}
