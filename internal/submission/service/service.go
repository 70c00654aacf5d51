package service

import (
	"context"
	"fmt"

	commoncrypto "github.com/AlibekovAA/interview-board/internal/common/crypto"
	commonerrors "github.com/AlibekovAA/interview-board/internal/common/errors"
	"github.com/AlibekovAA/interview-board/internal/common/logger"
	"github.com/AlibekovAA/interview-board/internal/common/validation"
	"github.com/AlibekovAA/interview-board/internal/observability/metrics"
	"github.com/AlibekovAA/interview-board/internal/submission/domain"
	"github.com/AlibekovAA/interview-board/internal/submission/repository"
)

// CreateInput only checks presence: no trimming, no length caps and no
// checks on individual questions.
type CreateInput struct {
	Name      string   `validate:"required"`
	Country   string   `validate:"required"`
	Company   string   `validate:"required"`
	Questions []string `validate:"required,min=1"`
}

type Service struct {
	repo        repository.Repository
	idGenerator commoncrypto.IDGenerator
	log         *logger.Logger
}

func NewService(repo repository.Repository, idGenerator commoncrypto.IDGenerator, log *logger.Logger) *Service {
	return &Service{
		repo:        repo,
		idGenerator: idGenerator,
		log:         log,
	}
}

// Create stores one submission authored by userID. An empty userID means the
// request had no session; nothing is stored in that case whatever the input.
func (s *Service) Create(ctx context.Context, userID string, input CreateInput) (domain.Submission, error) {
	if userID == "" {
		metrics.SubmissionsUnauthorized.Inc()
		return domain.Submission{}, commonerrors.ErrUnauthorized
	}

	if err := validation.Struct(input); err != nil {
		metrics.SubmissionValidationFailures.Inc()
		s.log.WithFields(ctx, logger.Fields{
			"user_id": userID,
			"fields":  validation.FailedFields(err),
			"action":  "submission_validation_failed",
		}).Debug("submission rejected: missing required fields")
		return domain.Submission{}, ErrMissingRequiredFields
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		return domain.Submission{}, commonerrors.ErrInternalError.WithCause(fmt.Errorf("generate submission id: %w", err))
	}

	created, err := s.repo.Insert(ctx, domain.Submission{
		ID:        id,
		Name:      input.Name,
		Country:   input.Country,
		Company:   input.Company,
		Questions: input.Questions,
		UserID:    userID,
	})
	if err != nil {
		return domain.Submission{}, commonerrors.ErrInternalError.WithCause(err)
	}

	metrics.SubmissionsCreated.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id":       userID,
		"submission_id": created.ID,
		"action":        "submission_created",
	}).Info("submission created")

	return created, nil
}

// List returns one page of submissions, newest first. Pages taken at
// different times may overlap or skip entries if writes happen in between.
func (s *Service) List(ctx context.Context, query domain.PageQuery) (domain.Page, error) {
	submissions, err := s.repo.FindPage(ctx, query.Skip(), query.Limit)
	if err != nil {
		return domain.Page{}, commonerrors.ErrInternalError.WithCause(err)
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return domain.Page{}, commonerrors.ErrInternalError.WithCause(err)
	}

	metrics.SubmissionPagesServed.Inc()
	metrics.SubmissionPageSize.Observe(float64(len(submissions)))

	return domain.Page{
		Submissions: submissions,
		Pagination: domain.Pagination{
			Total:   total,
			Pages:   domain.PageCount(total, query.Limit),
			Current: query.Page,
		},
	}, nil
}
