package bulk

import (
	"context"
	"sync"
	"testing"

	"github.com/MosinFAM/cms-moderation/internal/models"
	"github.com/MosinFAM/cms-moderation/internal/storage"

	"github.com/stretchr/testify/assert"
)

var (
	admin  = &models.Actor{ID: "u1", Email: "admin@example.com", Role: models.RoleAdmin}
	editor = &models.Actor{ID: "u2", Email: "editor@example.com", Role: models.RoleEditor}
)

func TestApply_EmptyIDs(t *testing.T) {
	// Mock без ожиданий: пустой батч не должен трогать хранилище
	mockStorage := new(storage.MockStorage)
	dispatcher := NewDispatcher(mockStorage)

	result, err := dispatcher.Apply(context.Background(), admin, models.ActionDelete, models.ContentTypeBlog, nil)

	assert.NoError(t, err)
	assert.Empty(t, result.SucceededIDs)
	assert.Empty(t, result.FailedIDs)
	mockStorage.AssertExpectations(t)
}

func TestApply_EditorForbidden(t *testing.T) {
	mockStorage := new(storage.MockStorage)
	dispatcher := NewDispatcher(mockStorage)

	// Роль editor всегда получает Forbidden независимо от содержимого ids
	result, err := dispatcher.Apply(context.Background(), editor, models.ActionDelete, models.ContentTypeBlog, []string{"id1", "id2"})

	assert.ErrorIs(t, err, models.ErrForbidden)
	assert.Nil(t, result)
	mockStorage.AssertExpectations(t)
}

func TestApply_UnsupportedAction(t *testing.T) {
	mockStorage := new(storage.MockStorage)
	dispatcher := NewDispatcher(mockStorage)

	// publish не смаплен на deal-модели — отказ до обращения к хранилищу
	result, err := dispatcher.Apply(context.Background(), admin, models.ActionPublish, models.ContentTypeModel, []string{"m1"})

	assert.ErrorIs(t, err, models.ErrUnsupportedAction)
	assert.Nil(t, result)

	// и feature не смаплен на блог
	result, err = dispatcher.Apply(context.Background(), admin, models.ActionFeature, models.ContentTypeBlog, []string{"b1"})

	assert.ErrorIs(t, err, models.ErrUnsupportedAction)
	assert.Nil(t, result)
	mockStorage.AssertExpectations(t)
}

func TestApply_UnknownType(t *testing.T) {
	dispatcher := NewDispatcher(storage.NewMemoryStorage())

	result, err := dispatcher.Apply(context.Background(), admin, models.ActionDelete, "page", []string{"id1"})

	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Nil(t, result)
}

func TestApply_DeleteMixedBatch(t *testing.T) {
	store := storage.NewMemoryStorage()
	dispatcher := NewDispatcher(store)

	item := store.AddItem(models.ContentItem{Type: models.ContentTypeBlog, Published: true})

	// id2 не существует: best-effort, батч не прерывается
	result, err := dispatcher.Apply(context.Background(), admin, models.ActionDelete, models.ContentTypeBlog,
		[]string{item.ID, "missing-id"})

	assert.NoError(t, err)
	assert.Equal(t, []string{item.ID}, result.SucceededIDs)
	// Отсутствующий элемент — именованный исход, не жёсткая ошибка
	assert.Len(t, result.FailedIDs, 1)
	assert.Equal(t, "missing-id", result.FailedIDs[0].ID)
	assert.Equal(t, "already deleted", result.FailedIDs[0].Reason)

	_, err = store.GetItemByID(models.ContentTypeBlog, item.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestApply_PublishMixedBatch(t *testing.T) {
	store := storage.NewMemoryStorage()
	dispatcher := NewDispatcher(store)

	item := store.AddItem(models.ContentItem{Type: models.ContentTypeBlog})

	result, err := dispatcher.Apply(context.Background(), admin, models.ActionPublish, models.ContentTypeBlog,
		[]string{item.ID, "missing-id"})

	assert.NoError(t, err)
	assert.Equal(t, []string{item.ID}, result.SucceededIDs)
	// Отсутствующий элемент для publish — именованный отказ, не исключение
	assert.Len(t, result.FailedIDs, 1)
	assert.Equal(t, "missing-id", result.FailedIDs[0].ID)
	assert.Equal(t, "item not found", result.FailedIDs[0].Reason)

	fetched, err := store.GetItemByID(models.ContentTypeBlog, item.ID)
	assert.NoError(t, err)
	assert.True(t, fetched.Published)
}

func TestApply_AlreadyInTargetState(t *testing.T) {
	store := storage.NewMemoryStorage()
	dispatcher := NewDispatcher(store)

	item := store.AddItem(models.ContentItem{Type: models.ContentTypeModel, Featured: true})

	// Повтор того же батча безопасен: уже зафичеренный элемент — успех
	result, err := dispatcher.Apply(context.Background(), admin, models.ActionFeature, models.ContentTypeModel,
		[]string{item.ID})

	assert.NoError(t, err)
	assert.Equal(t, []string{item.ID}, result.SucceededIDs)
	assert.Empty(t, result.FailedIDs)
}

func TestApply_ArchiveAndUnfeature(t *testing.T) {
	store := storage.NewMemoryStorage()
	dispatcher := NewDispatcher(store)

	post := store.AddItem(models.ContentItem{Type: models.ContentTypeBlog, Published: true})
	model := store.AddItem(models.ContentItem{Type: models.ContentTypeModel, Featured: true})

	result, err := dispatcher.Apply(context.Background(), admin, models.ActionArchive, models.ContentTypeBlog, []string{post.ID})
	assert.NoError(t, err)
	assert.Equal(t, []string{post.ID}, result.SucceededIDs)

	result, err = dispatcher.Apply(context.Background(), admin, models.ActionUnfeature, models.ContentTypeModel, []string{model.ID})
	assert.NoError(t, err)
	assert.Equal(t, []string{model.ID}, result.SucceededIDs)

	fetchedPost, err := store.GetItemByID(models.ContentTypeBlog, post.ID)
	assert.NoError(t, err)
	assert.False(t, fetchedPost.Published)

	fetchedModel, err := store.GetItemByID(models.ContentTypeModel, model.ID)
	assert.NoError(t, err)
	assert.False(t, fetchedModel.Featured)
}

func TestApply_DuplicateIDs(t *testing.T) {
	store := storage.NewMemoryStorage()
	dispatcher := NewDispatcher(store)

	item := store.AddItem(models.ContentItem{Type: models.ContentTypeBlog})

	result, err := dispatcher.Apply(context.Background(), admin, models.ActionPublish, models.ContentTypeBlog,
		[]string{item.ID, item.ID, item.ID})

	// Дубликаты схлопнуты до одного исхода
	assert.NoError(t, err)
	assert.Equal(t, []string{item.ID}, result.SucceededIDs)
}

func TestApply_ConcurrentFeature(t *testing.T) {
	store := storage.NewMemoryStorage()
	dispatcher := NewDispatcher(store)

	item := store.AddItem(models.ContentItem{Type: models.ContentTypeModel})

	// Два админа жмут feature одновременно: оба вызова успешны
	var wg sync.WaitGroup
	results := make([]*models.BulkResult, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := dispatcher.Apply(context.Background(), admin, models.ActionFeature, models.ContentTypeModel,
				[]string{item.ID})
			assert.NoError(t, err)
			results[i] = result
		}(i)
	}
	wg.Wait()

	assert.Equal(t, []string{item.ID}, results[0].SucceededIDs)
	assert.Equal(t, []string{item.ID}, results[1].SucceededIDs)

	fetched, err := store.GetItemByID(models.ContentTypeModel, item.ID)
	assert.NoError(t, err)
	assert.True(t, fetched.Featured)
}

func TestApply_CancelledContext(t *testing.T) {
	store := storage.NewMemoryStorage()
	dispatcher := NewDispatcher(store)

	item := store.AddItem(models.ContentItem{Type: models.ContentTypeBlog})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := dispatcher.Apply(ctx, admin, models.ActionPublish, models.ContentTypeBlog, []string{item.ID})

	// Отменённый запрос не ошибка батча: оставшиеся элементы помечены как failed
	assert.NoError(t, err)
	assert.Empty(t, result.SucceededIDs)
	assert.Len(t, result.FailedIDs, 1)
	assert.Equal(t, "request cancelled", result.FailedIDs[0].Reason)
}

func TestApply_LargeBatch(t *testing.T) {
	store := storage.NewMemoryStorage()
	dispatcher := NewDispatcher(store)

	var ids []string
	for i := 0; i < 50; i++ {
		item := store.AddItem(models.ContentItem{Type: models.ContentTypeBlog})
		ids = append(ids, item.ID)
	}

	// Батч шире окна конкурентности обрабатывается целиком
	result, err := dispatcher.Apply(context.Background(), admin, models.ActionPublish, models.ContentTypeBlog, ids)

	assert.NoError(t, err)
	assert.ElementsMatch(t, ids, result.SucceededIDs)
	assert.Empty(t, result.FailedIDs)
}
