package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"gstbill/internal/config"
	"gstbill/internal/docnumber"
	"gstbill/internal/domain"
	"gstbill/internal/port"
)

const defaultRecentLimit = 10

// NumberingService suggests, validates and checks document numbers for a user.
//
// Repository failures degrade to safe fallbacks so that numbering never blocks
// a save. Lookups that time out or are canceled are returned as
// domain.ErrLookupTimeout instead.
type NumberingService interface {
	NextNumber(ctx context.Context, userID uuid.UUID, docType domain.DocumentType) (string, error)
	RecentNumbers(ctx context.Context, userID uuid.UUID, docType domain.DocumentType, limit int) ([]string, error)
	CheckDuplicate(ctx context.Context, userID uuid.UUID, number string, docType domain.DocumentType, excludeID *uuid.UUID) (bool, error)
	Validate(number string) docnumber.Result
	Suggest(number string) string
}

type numberingService struct {
	docRepo port.DocumentRepository
	finder  port.DuplicateNumberFinder
	cfg     config.NumberingConfig
	now     func() time.Time
}

// NewNumberingService creates a NumberingService using the wall clock.
func NewNumberingService(
	docRepo port.DocumentRepository,
	finder port.DuplicateNumberFinder,
	cfg config.NumberingConfig,
) NumberingService {
	return NewNumberingServiceWithClock(docRepo, finder, cfg, time.Now)
}

// NewNumberingServiceWithClock creates a NumberingService with an injected clock.
func NewNumberingServiceWithClock(
	docRepo port.DocumentRepository,
	finder port.DuplicateNumberFinder,
	cfg config.NumberingConfig,
	now func() time.Time,
) NumberingService {
	if now == nil {
		now = time.Now
	}
	return &numberingService{
		docRepo: docRepo,
		finder:  finder,
		cfg:     cfg,
		now:     now,
	}
}

func (s *numberingService) NextNumber(ctx context.Context, userID uuid.UUID, docType domain.DocumentType) (string, error) {
	if userID == uuid.Nil {
		return "", domain.ErrUnauthenticated
	}
	year := s.now().Year()

	docs, err := s.listByType(ctx, userID, docType)
	if err != nil {
		if isLookupTimeout(err) {
			return "", lookupTimeout("NextNumber", err)
		}
		log.Printf("numberingService.NextNumber: user %s type %s: falling back to first number: %v", userID, docType, err)
		return docnumber.Format(1, year), nil
	}

	numbers := make([]string, 0, len(docs))
	for i := range docs {
		numbers = append(numbers, docs[i].Details.Number)
	}
	return docnumber.Next(numbers, year), nil
}

func (s *numberingService) RecentNumbers(ctx context.Context, userID uuid.UUID, docType domain.DocumentType, limit int) ([]string, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}
	if limit <= 0 {
		limit = s.cfg.RecentLimit
	}
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	docs, err := s.listByType(ctx, userID, docType)
	if err != nil {
		if isLookupTimeout(err) {
			return nil, lookupTimeout("RecentNumbers", err)
		}
		log.Printf("numberingService.RecentNumbers: user %s type %s: returning no suggestions: %v", userID, docType, err)
		return []string{}, nil
	}

	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	if len(docs) > limit {
		docs = docs[:limit]
	}
	numbers := make([]string, 0, len(docs))
	for i := range docs {
		numbers = append(numbers, docs[i].Details.Number)
	}
	return numbers, nil
}

func (s *numberingService) CheckDuplicate(ctx context.Context, userID uuid.UUID, number string,
	docType domain.DocumentType, excludeID *uuid.UUID) (bool, error) {
	if userID == uuid.Nil {
		return false, domain.ErrUnauthenticated
	}
	if strings.TrimSpace(number) == "" || docType == "" {
		return false, nil
	}
	exclude := uuid.Nil
	if excludeID != nil {
		exclude = *excludeID
	}

	ctx, cancel := s.lookupContext(ctx)
	defer cancel()

	matches, err := s.finder.FindDuplicates(ctx, userID, exclude, docType, number)
	if err != nil {
		if isLookupTimeout(err) {
			return false, lookupTimeout("CheckDuplicate", err)
		}
		log.Printf("numberingService.CheckDuplicate: user %s number %q: treating as unique: %v", userID, number, err)
		return false, nil
	}
	return len(matches) > 0, nil
}

func (s *numberingService) Validate(number string) docnumber.Result {
	return docnumber.Validate(number, s.now())
}

func (s *numberingService) Suggest(number string) string {
	return docnumber.Suggest(number, s.now().Year())
}

func (s *numberingService) listByType(ctx context.Context, userID uuid.UUID, docType domain.DocumentType) ([]domain.Document, error) {
	ctx, cancel := s.lookupContext(ctx)
	defer cancel()
	return s.docRepo.ListByType(ctx, userID, docType)
}

func (s *numberingService) lookupContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.LookupTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.cfg.LookupTimeout)
}

func isLookupTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}

func lookupTimeout(op string, err error) error {
	return fmt.Errorf("numberingService.%s: %w: %w", op, domain.ErrLookupTimeout, err)
}
