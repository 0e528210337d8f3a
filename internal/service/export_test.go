package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/templui/goalflow/internal/model"
)

type memoryStorage struct {
	objects    map[string][]byte
	presignErr error
}

func (m *memoryStorage) Save(ctx context.Context, key, contentType string, body io.Reader) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return err
	}
	m.objects[key] = buf.Bytes()
	return nil
}

func (m *memoryStorage) Delete(ctx context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

func (m *memoryStorage) PresignedURL(ctx context.Context, key string) (string, error) {
	if m.presignErr != nil {
		return "", m.presignErr
	}
	return "https://storage.example.com/" + key + "?sig=abc", nil
}

func TestExportWeek(t *testing.T) {
	goals, conn := newTestGoalService(t)
	createUser(t, conn, "u1")
	ctx := context.Background()
	mustCreate(t, goals, "u1", "Plan")

	export, err := NewExportService(goals, nil).Week(ctx, "u1", testWeek)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(export.Columns) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(export.Columns))
	}
	if export.Columns[1].Label != "In Progress" || len(export.Columns[1].Goals) != 0 {
		t.Fatalf("unexpected in-progress column %+v", export.Columns[1])
	}
	if len(export.Columns[0].Goals) != 1 {
		t.Fatalf("expected one todo goal, got %d", len(export.Columns[0].Goals))
	}

	if _, err := NewExportService(goals, nil).Week(ctx, "u1", "week 35"); !IsValidation(err) {
		t.Fatalf("expected validation error for bad week key, got %v", err)
	}
}

func TestArchiveWeek(t *testing.T) {
	goals, conn := newTestGoalService(t)
	createUser(t, conn, "u1")
	ctx := context.Background()
	mustCreate(t, goals, "u1", "Plan")

	if _, err := NewExportService(goals, nil).Archive(ctx, "u1", testWeek); !errors.Is(err, ErrStorageDisabled) {
		t.Fatalf("expected ErrStorageDisabled, got %v", err)
	}

	store := &memoryStorage{objects: map[string][]byte{}}
	url, err := NewExportService(goals, store).Archive(ctx, "u1", testWeek)
	if err != nil {
		t.Fatalf("archive: %v", err)
	}

	key := ArchiveKey("u1", testWeek, testNow)
	if !strings.Contains(url, key) {
		t.Fatalf("expected url for %s, got %s", key, url)
	}
	var stored model.WeekExport
	if err := json.Unmarshal(store.objects[key], &stored); err != nil {
		t.Fatalf("decode archive: %v", err)
	}
	if stored.WeekKey != testWeek || len(stored.Columns[0].Goals) != 1 {
		t.Fatalf("unexpected archive %+v", stored)
	}
}

func TestArchiveRemovesObjectWhenPresignFails(t *testing.T) {
	goals, conn := newTestGoalService(t)
	createUser(t, conn, "u1")
	mustCreate(t, goals, "u1", "Plan")

	presignErr := errors.New("presign unavailable")
	store := &memoryStorage{objects: map[string][]byte{}, presignErr: presignErr}
	_, err := NewExportService(goals, store).Archive(context.Background(), "u1", testWeek)
	if !errors.Is(err, presignErr) {
		t.Fatalf("expected presign error, got %v", err)
	}
	if len(store.objects) != 0 {
		t.Fatalf("expected uploaded archive to be removed, have %d objects", len(store.objects))
	}
}
