// Package backup writes a JSON snapshot of every todo to object storage.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"todos/config"
	"todos/infras/otel"
	"todos/infras/s3"
	"todos/internal/domains/todo/model"
	"todos/internal/domains/todo/model/dto"
	"todos/internal/domains/todo/repository"
	"todos/shared/constant"
	gDto "todos/shared/dto"
	"todos/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	fileTimeFormat = "20060102-150405"
	otelScopeName  = "backup"
)

type Backup struct {
	repo    repository.Todo
	storage s3.S3
	cfg     *config.Config
	otel    otel.Otel
}

// ErrVolatileStore is returned when the configured driver keeps todos in
// process memory, where a separate backup process would only see an empty store.
var ErrVolatileStore = errors.New("backup requires a persistent database driver")

func New(repo repository.Todo, storage s3.S3, cfg *config.Config, otel otel.Otel) (*Backup, error) {
	switch cfg.DB.Driver {
	case constant.Empty, config.DriverMemory:
		return nil, fmt.Errorf("%w, got %q", ErrVolatileStore, cfg.DB.Driver)
	}

	return &Backup{
		repo:    repo,
		storage: storage,
		cfg:     cfg,
		otel:    otel,
	}, nil
}

// FileName returns the object name used for a snapshot taken now.
func FileName() string {
	return fmt.Sprintf("todos-%s-%s.json", timezone.Now().Format(fileTimeFormat), uuid.NewString())
}

// Run uploads the snapshot and returns its object key.
func (b *Backup) Run(ctx context.Context) (key string, err error) {
	ctx, scope := b.otel.NewScope(ctx, otelScopeName, otelScopeName+".Run")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	todos, err := b.repo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldID, SortDir: gDto.SortDirAsc}, gDto.FilterGroup{})
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to list todos: %w", err)
	}

	payload, err := json.Marshal(dto.FromModels(todos))
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	key, err = b.storage.UploadFileBytes(ctx, b.cfg.External.S3.BucketName, b.cfg.External.S3.BackupDirectory,
		FileName(), constant.ContentTypeJSON, payload)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to upload snapshot: %w", err)
	}

	log.Info().Str("key", key).Int("count", len(todos)).Msg("Todo snapshot uploaded")

	return key, nil
}
