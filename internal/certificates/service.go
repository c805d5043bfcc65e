package certificates

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"certificate-hub/certificate-hub-backend/internal/assets"
	"certificate-hub/certificate-hub-backend/pkg/pdf"
	"certificate-hub/certificate-hub-backend/pkg/storage"
)

const contentTypePDF = "application/pdf"

type Service interface {
	Issue(ctx context.Context, req IssueRequest) (*IssueResult, error)
	Get(ctx context.Context, id string) (*CertificateInfo, error)
	List(ctx context.Context) ([]Record, error)
}

type service struct {
	repo      Repository
	store     storage.ObjectStore
	renderer  pdf.Renderer
	logger    *zap.Logger
	debugPath string
	now       func() time.Time
	listLimit int32
}

// ServiceOption configures optional service behavior.
type ServiceOption func(*service)

// WithDebugPath makes the service keep a local copy of every rendered
// PDF under dir. Intended for offline development only.
func WithDebugPath(dir string) ServiceOption {
	return func(s *service) {
		s.debugPath = dir
	}
}

// WithClock overrides the time source used for the issue date.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *service) {
		s.now = now
	}
}

func NewService(repo Repository, store storage.ObjectStore, renderer pdf.Renderer, logger *zap.Logger, opts ...ServiceOption) Service {
	s := &service{
		repo:      repo,
		store:     store,
		renderer:  renderer,
		logger:    logger,
		now:       time.Now,
		listLimit: 100,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue runs the full issuance pipeline: record the recipient on first
// issuance, render the certificate for the request data, convert it to
// PDF and upload it. Every failure aborts the whole request; there is
// no retry or rollback. Re-issuing with the same id keeps the original
// record and overwrites the PDF object.
func (s *service) Issue(ctx context.Context, req IssueRequest) (*IssueResult, error) {
	rec, err := s.repo.Get(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: looking up recipient: %v", ErrDependencyUnavailable, err)
	}
	if rec == nil {
		inserted, err := s.repo.Insert(ctx, &Record{ID: req.ID, Name: req.Name, Grade: req.Grade})
		if err != nil {
			return nil, fmt.Errorf("%w: recording recipient: %v", ErrDependencyUnavailable, err)
		}
		if !inserted {
			// Lost the write race; the winner's record stands.
			s.logger.Debug("recipient recorded concurrently", zap.String("id", req.ID))
		}
	}

	// The certificate is always rendered from the request data, even
	// when a previously stored record carries a different name or
	// grade.
	html, err := renderHTML(RenderContext{
		ID:    req.ID,
		Name:  req.Name,
		Grade: req.Grade,
		Date:  formatIssueDate(s.now()),
		Medal: assets.MedalDataURI(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailure, err)
	}

	doc, err := s.renderer.Render(ctx, html)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailure, err)
	}

	key := req.ID + ".pdf"
	if s.debugPath != "" {
		if err := os.WriteFile(filepath.Join(s.debugPath, key), doc, 0o644); err != nil {
			s.logger.Warn("writing debug copy", zap.String("key", key), zap.Error(err))
		}
	}

	if err := s.store.Put(ctx, key, doc, contentTypePDF); err != nil {
		return nil, fmt.Errorf("%w: uploading certificate: %v", ErrDependencyUnavailable, err)
	}

	s.logger.Info("certificate issued",
		zap.String("id", req.ID),
		zap.String("key", key),
		zap.Int("pdf_bytes", len(doc)),
	)
	return &IssueResult{Key: key, URL: s.store.PublicURL(key)}, nil
}

func (s *service) Get(ctx context.Context, id string) (*CertificateInfo, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: looking up recipient: %v", ErrDependencyUnavailable, err)
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return &CertificateInfo{
		Record: *rec,
		PDFURL: s.store.PublicURL(rec.ID + ".pdf"),
	}, nil
}

func (s *service) List(ctx context.Context) ([]Record, error) {
	recs, err := s.repo.List(ctx, s.listLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: listing recipients: %v", ErrDependencyUnavailable, err)
	}
	return recs, nil
}
