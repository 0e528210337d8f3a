package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/templui/goalflow/internal/kanban"
	"github.com/templui/goalflow/internal/model"
	"github.com/templui/goalflow/internal/storage"
	"github.com/templui/goalflow/internal/validation"
)

var ErrStorageDisabled = errors.New("archive storage is not configured")

type ExportService struct {
	goals   *GoalService
	storage storage.Storage
}

// NewExportService builds the export service; store may be nil when
// archiving is disabled.
func NewExportService(goals *GoalService, store storage.Storage) *ExportService {
	return &ExportService{goals: goals, storage: store}
}

// Week returns one week of goals grouped by column.
func (s *ExportService) Week(ctx context.Context, userID, weekKey string) (*model.WeekExport, error) {
	weekKey = strings.TrimSpace(weekKey)
	if err := validation.ValidateWeekKey(weekKey); err != nil {
		return nil, invalid(err.Error())
	}

	goals, err := s.goals.Goals(ctx, userID, weekKey)
	if err != nil {
		return nil, err
	}

	export := &model.WeekExport{
		WeekKey:    weekKey,
		ExportedAt: s.goals.now(),
	}
	for _, status := range model.GoalStatuses {
		column := kanban.Partition(goals, status)
		if column == nil {
			column = []model.Goal{}
		}
		export.Columns = append(export.Columns, model.ExportColumn{
			Status: status,
			Label:  status.Label(),
			Goals:  column,
		})
	}
	return export, nil
}

// Archive uploads the week export and returns a temporary download URL.
func (s *ExportService) Archive(ctx context.Context, userID, weekKey string) (string, error) {
	if s.storage == nil {
		return "", ErrStorageDisabled
	}

	export, err := s.Week(ctx, userID, weekKey)
	if err != nil {
		return "", err
	}

	body, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode export: %w", err)
	}

	key := ArchiveKey(userID, export.WeekKey, export.ExportedAt)
	err = s.storage.Save(ctx, key, "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	url, err := s.storage.PresignedURL(ctx, key)
	if err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			slog.Warn("failed to remove unreachable archive", "error", delErr, "key", key)
		}
		return "", err
	}

	slog.Info("week archived", "user_id", userID, "week_key", export.WeekKey, "key", key)
	return url, nil
}

func ArchiveKey(userID, weekKey string, at time.Time) string {
	return fmt.Sprintf("exports/%s/%s-%s.json", userID, weekKey, at.UTC().Format("20060102T150405Z"))
}
