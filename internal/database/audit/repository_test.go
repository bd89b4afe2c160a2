package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/openshelf/locallibrary/internal/entities"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.AuditEvent{})
	require.NoError(t, err)

	return db
}

func TestRepository_LogEvent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	event := &entities.AuditEvent{
		Action:     entities.AuditActionCreated,
		EntityType: "book",
		EntityID:   1,
		EntityName: "The Name of the Wind",
		RequestID:  "req-1",
	}

	err := repo.LogEvent(context.Background(), event)
	require.NoError(t, err)
	assert.NotZero(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero())
}

func TestRepository_GetRecent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	now := time.Now()
	for i := 0; i < 15; i++ {
		event := &entities.AuditEvent{
			Action:     entities.AuditActionCreated,
			EntityType: "author",
			EntityID:   uint(i + 1),
			EntityName: "Author",
			CreatedAt:  now.Add(time.Duration(-i) * time.Hour),
		}
		require.NoError(t, repo.LogEvent(ctx, event))
	}

	t.Run("limits the result", func(t *testing.T) {
		events, err := repo.GetRecent(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, events, 10)
	})

	t.Run("orders by created_at desc", func(t *testing.T) {
		events, err := repo.GetRecent(ctx, 10)
		require.NoError(t, err)
		for i := 1; i < len(events); i++ {
			assert.True(t, events[i-1].CreatedAt.After(events[i].CreatedAt) || events[i-1].CreatedAt.Equal(events[i].CreatedAt))
		}
		assert.Equal(t, uint(1), events[0].EntityID)
	})

	t.Run("non-positive limit falls back to default", func(t *testing.T) {
		events, err := repo.GetRecent(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, events, 10)
	})
}

func TestRepository_DeleteOldEvents(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	now := time.Now()

	oldEvent := &entities.AuditEvent{
		Action:     entities.AuditActionDeleted,
		EntityType: "genre",
		EntityID:   1,
		EntityName: "French Poetry",
		CreatedAt:  now.Add(-48 * time.Hour),
	}
	newEvent := &entities.AuditEvent{
		Action:     entities.AuditActionUpdated,
		EntityType: "book",
		EntityID:   2,
		EntityName: "Apes and Angels",
		CreatedAt:  now.Add(-1 * time.Hour),
	}

	require.NoError(t, repo.LogEvent(ctx, oldEvent))
	require.NoError(t, repo.LogEvent(ctx, newEvent))

	deleted, err := repo.DeleteOldEvents(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	events, err := repo.GetRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Apes and Angels", events[0].EntityName)
}
