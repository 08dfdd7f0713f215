package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstbill/internal/config"
	"gstbill/internal/domain"
	"gstbill/internal/port"
	"gstbill/internal/service"
	"gstbill/mocks"
)

func fixedClock(year int) func() time.Time {
	return func() time.Time { return time.Date(year, 6, 1, 12, 0, 0, 0, time.UTC) }
}

func testNumberingConfig() config.NumberingConfig {
	return config.NumberingConfig{LookupTimeout: time.Second, RecentLimit: 10}
}

func docsWithNumbers(numbers ...string) []domain.Document {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	docs := make([]domain.Document, 0, len(numbers))
	for i, n := range numbers {
		docs = append(docs, domain.Document{
			ID:        uuid.New(),
			DocType:   domain.DocTypeInvoice,
			Details:   domain.DocumentDetails{Number: n},
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	return docs
}

func newNumberingService(year int) (service.NumberingService, *mocks.MockDocumentRepo, *mocks.MockDuplicateFinder) {
	docRepo := new(mocks.MockDocumentRepo)
	finder := new(mocks.MockDuplicateFinder)
	svc := service.NewNumberingServiceWithClock(docRepo, finder, testNumberingConfig(), fixedClock(year))
	return svc, docRepo, finder
}

func TestNumberingService_NextNumber_MaxBasedContinuation(t *testing.T) {
	svc, docRepo, _ := newNumberingService(2024)
	userID := uuid.New()

	docRepo.On("ListByType", mock.Anything, userID, domain.DocTypeInvoice).
		Return(docsWithNumbers("#1/2024", "#3/2024", "#notanumber"), nil)

	got, err := svc.NextNumber(context.Background(), userID, domain.DocTypeInvoice)

	require.NoError(t, err)
	assert.Equal(t, "#4/2024", got)
	docRepo.AssertExpectations(t)
}

func TestNumberingService_NextNumber_ResetsEachYear(t *testing.T) {
	svc, docRepo, _ := newNumberingService(2024)
	userID := uuid.New()

	docRepo.On("ListByType", mock.Anything, userID, domain.DocTypeQuotation).
		Return(docsWithNumbers("#9/2023", "#12/2023"), nil)

	got, err := svc.NextNumber(context.Background(), userID, domain.DocTypeQuotation)

	require.NoError(t, err)
	assert.Equal(t, "#1/2024", got)
}

func TestNumberingService_NextNumber_RepositoryErrorFallsBack(t *testing.T) {
	svc, docRepo, _ := newNumberingService(2025)
	userID := uuid.New()

	docRepo.On("ListByType", mock.Anything, userID, domain.DocTypeInvoice).
		Return(nil, errors.New("connection refused"))

	got, err := svc.NextNumber(context.Background(), userID, domain.DocTypeInvoice)

	require.NoError(t, err)
	assert.Equal(t, "#1/2025", got)
}

func TestNumberingService_NextNumber_TimeoutIsHardError(t *testing.T) {
	docRepo := new(mocks.MockDocumentRepo)
	finder := new(mocks.MockDuplicateFinder)
	cfg := config.NumberingConfig{LookupTimeout: 10 * time.Millisecond}
	svc := service.NewNumberingServiceWithClock(docRepo, finder, cfg, fixedClock(2024))
	userID := uuid.New()

	docRepo.On("ListByType", mock.Anything, userID, domain.DocTypeInvoice).
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return(nil, context.DeadlineExceeded)

	got, err := svc.NextNumber(context.Background(), userID, domain.DocTypeInvoice)

	assert.Empty(t, got)
	assert.ErrorIs(t, err, domain.ErrLookupTimeout)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNumberingService_Unauthenticated(t *testing.T) {
	svc, docRepo, finder := newNumberingService(2024)
	ctx := context.Background()

	_, err := svc.NextNumber(ctx, uuid.Nil, domain.DocTypeInvoice)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = svc.RecentNumbers(ctx, uuid.Nil, domain.DocTypeInvoice, 5)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = svc.CheckDuplicate(ctx, uuid.Nil, "#1/2024", domain.DocTypeInvoice, nil)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.Equal(t, "not authenticated", err.Error())

	docRepo.AssertNotCalled(t, "ListByType", mock.Anything, mock.Anything, mock.Anything)
	finder.AssertNotCalled(t, "FindDuplicates", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNumberingService_RecentNumbers_NewestFirstWithLimit(t *testing.T) {
	svc, docRepo, _ := newNumberingService(2024)
	userID := uuid.New()

	// created in order: oldest first
	docRepo.On("ListByType", mock.Anything, userID, domain.DocTypeInvoice).
		Return(docsWithNumbers("#1/2024", "INV-7", "#2/2024", "#3/2024"), nil)

	got, err := svc.RecentNumbers(context.Background(), userID, domain.DocTypeInvoice, 3)

	require.NoError(t, err)
	assert.Equal(t, []string{"#3/2024", "#2/2024", "INV-7"}, got)
}

func TestNumberingService_RecentNumbers_DefaultLimit(t *testing.T) {
	svc, docRepo, _ := newNumberingService(2024)
	userID := uuid.New()

	numbers := make([]string, 0, 15)
	for i := 0; i < 15; i++ {
		numbers = append(numbers, "n")
	}
	docRepo.On("ListByType", mock.Anything, userID, domain.DocTypeInvoice).
		Return(docsWithNumbers(numbers...), nil)

	got, err := svc.RecentNumbers(context.Background(), userID, domain.DocTypeInvoice, 0)

	require.NoError(t, err)
	assert.Len(t, got, 10)
}

func TestNumberingService_RecentNumbers_RepositoryErrorReturnsEmpty(t *testing.T) {
	svc, docRepo, _ := newNumberingService(2024)
	userID := uuid.New()

	docRepo.On("ListByType", mock.Anything, userID, domain.DocTypeInvoice).
		Return(nil, errors.New("boom"))

	got, err := svc.RecentNumbers(context.Background(), userID, domain.DocTypeInvoice, 5)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNumberingService_CheckDuplicate_ExcludesSelf(t *testing.T) {
	svc, _, finder := newNumberingService(2024)
	userID := uuid.New()
	docID := uuid.New()

	finder.On("FindDuplicates", mock.Anything, userID, docID, domain.DocTypeInvoice, "#5/2024").
		Return([]port.DuplicateMatch{}, nil)
	finder.On("FindDuplicates", mock.Anything, userID, uuid.Nil, domain.DocTypeInvoice, "#5/2024").
		Return([]port.DuplicateMatch{{DocumentID: docID}}, nil)

	dup, err := svc.CheckDuplicate(context.Background(), userID, "#5/2024", domain.DocTypeInvoice, &docID)
	require.NoError(t, err)
	assert.False(t, dup)

	dup, err = svc.CheckDuplicate(context.Background(), userID, "#5/2024", domain.DocTypeInvoice, nil)
	require.NoError(t, err)
	assert.True(t, dup)

	finder.AssertExpectations(t)
}

func TestNumberingService_CheckDuplicate_EmptyInputs(t *testing.T) {
	svc, _, finder := newNumberingService(2024)
	userID := uuid.New()

	dup, err := svc.CheckDuplicate(context.Background(), userID, "  ", domain.DocTypeInvoice, nil)
	require.NoError(t, err)
	assert.False(t, dup)

	dup, err = svc.CheckDuplicate(context.Background(), userID, "#1/2024", "", nil)
	require.NoError(t, err)
	assert.False(t, dup)

	finder.AssertNotCalled(t, "FindDuplicates", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNumberingService_CheckDuplicate_ErrorFallsBackToFalse(t *testing.T) {
	svc, _, finder := newNumberingService(2024)
	userID := uuid.New()

	finder.On("FindDuplicates", mock.Anything, userID, uuid.Nil, domain.DocTypeInvoice, "#1/2024").
		Return(nil, errors.New("network down"))

	dup, err := svc.CheckDuplicate(context.Background(), userID, "#1/2024", domain.DocTypeInvoice, nil)
	require.NoError(t, err)
	assert.False(t, dup)
}

func TestNumberingService_CheckDuplicate_CanceledIsHardError(t *testing.T) {
	svc, _, finder := newNumberingService(2024)
	userID := uuid.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	finder.On("FindDuplicates", mock.Anything, userID, uuid.Nil, domain.DocTypeInvoice, "#1/2024").
		Return(nil, context.Canceled)

	_, err := svc.CheckDuplicate(ctx, userID, "#1/2024", domain.DocTypeInvoice, nil)
	assert.ErrorIs(t, err, domain.ErrLookupTimeout)
}

func TestNumberingService_ValidateAndSuggest(t *testing.T) {
	svc, _, _ := newNumberingService(2024)

	assert.True(t, svc.Validate("#2/2025").Valid)
	res := svc.Validate("#2/2026")
	assert.False(t, res.Valid)
	assert.Equal(t, "Year should be between 2020 and 2025", res.Error)

	assert.Equal(t, "#17/2024", svc.Suggest("INV 17"))
}
