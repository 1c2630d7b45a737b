package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/plza-save-editor/internal/domain"
	"github.com/bnema/plza-save-editor/internal/ports"
	"github.com/bnema/plza-save-editor/internal/workerpool"
	"go.uber.org/zap"
)

// Service runs edit sessions: upload and parse, modify, download.
type Service struct {
	codec     ports.Codec
	sessions  ports.SessionStore
	offloader ports.Offloader
	catalog   ports.Catalog
	logger    *zap.Logger
}

func NewService(codec ports.Codec, sessions ports.SessionStore, offloader ports.Offloader, catalog ports.Catalog, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		codec:     codec,
		sessions:  sessions,
		offloader: offloader,
		catalog:   catalog,
		logger:    logger,
	}
}

// Parse decodes blob, opens a session for it and returns its summary.
func (s *Service) Parse(ctx context.Context, blob []byte) (ParseResult, error) {
	container, summary, err := s.decodeAndProject(ctx, blob)
	if err != nil {
		return ParseResult{}, err
	}

	ref, err := s.sessions.Put(ctx, container)
	if err != nil {
		return ParseResult{}, fmt.Errorf("store session: %w", err)
	}

	s.logger.Info("save parsed",
		zap.String("ref", ref.String()),
		zap.Int("blocks", container.Len()),
		zap.Int("bytes", len(blob)),
	)

	return ParseResult{Ref: ref, Summary: summary}, nil
}

// Inspect decodes and projects blob without opening a session.
func (s *Service) Inspect(ctx context.Context, blob []byte) (domain.SaveSummary, error) {
	_, summary, err := s.decodeAndProject(ctx, blob)
	return summary, err
}

// Modify applies cmd.Changes to the session's container and stores the
// result. Concurrent modifications of one session are last writer wins.
func (s *Service) Modify(ctx context.Context, cmd ModifyCommand) (ModifyResult, error) {
	container, err := s.sessions.Get(ctx, cmd.Ref)
	if err != nil {
		return ModifyResult{}, fmt.Errorf("get session: %w", err)
	}

	updated, err := ApplyChanges(container, cmd.Changes, s.catalog)
	if err != nil {
		return ModifyResult{}, fmt.Errorf("apply changes: %w", err)
	}

	if err := s.sessions.Replace(ctx, cmd.Ref, updated); err != nil {
		return ModifyResult{}, fmt.Errorf("replace session: %w", err)
	}

	s.logger.Info("save modified",
		zap.String("ref", cmd.Ref.String()),
		zap.Int("profile_keys", len(cmd.Changes.Profile)),
		zap.Int("inventory_keys", len(cmd.Changes.Inventory)),
	)

	return ModifyResult{DownloadRef: cmd.Ref}, nil
}

// Download encodes the session's current container.
func (s *Service) Download(ctx context.Context, ref domain.SessionRef) ([]byte, error) {
	container, err := s.sessions.Get(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	blob, err := s.encode(ctx, container)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("save encoded", zap.String("ref", ref.String()), zap.Int("bytes", len(blob)))
	return blob, nil
}

// Apply runs decode, modify and encode on blob in one call without a session.
func (s *Service) Apply(ctx context.Context, cmd ApplyCommand) ([]byte, error) {
	container, err := s.decode(ctx, cmd.Blob)
	if err != nil {
		return nil, err
	}

	updated, err := ApplyChanges(container, cmd.Changes, s.catalog)
	if err != nil {
		return nil, fmt.Errorf("apply changes: %w", err)
	}

	return s.encode(ctx, updated)
}

func (s *Service) decodeAndProject(ctx context.Context, blob []byte) (*domain.Container, domain.SaveSummary, error) {
	container, err := s.decode(ctx, blob)
	if err != nil {
		return nil, domain.SaveSummary{}, err
	}

	summary, err := Project(container, s.catalog)
	if err != nil {
		return nil, domain.SaveSummary{}, fmt.Errorf("project save: %w", err)
	}

	return container, summary, nil
}

func (s *Service) decode(ctx context.Context, blob []byte) (*domain.Container, error) {
	container, err := workerpool.Run(ctx, s.offloader, func() (*domain.Container, error) {
		return s.codec.Decode(blob)
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidContainer) {
			s.logger.Debug("rejected upload", zap.Int("bytes", len(blob)), zap.Error(err))
		}
		return nil, fmt.Errorf("decode save: %w", err)
	}

	return container, nil
}

func (s *Service) encode(ctx context.Context, container *domain.Container) ([]byte, error) {
	blob, err := workerpool.Run(ctx, s.offloader, func() ([]byte, error) {
		return s.codec.Encode(container)
	})
	if err != nil {
		return nil, fmt.Errorf("encode save: %w", err)
	}

	return blob, nil
}
