package bulk

import (
	"context"
	"sync"

	"github.com/MosinFAM/cms-moderation/internal/models"
	"github.com/MosinFAM/cms-moderation/internal/permissions"
	"github.com/MosinFAM/cms-moderation/internal/storage"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// Сколько мутаций одного батча выполняется одновременно
const defaultConcurrency = 8

// mutation - конкретное действие хранилища, в которое отображается
// пара (тип контента, действие)
type mutation struct {
	remove bool   // удаление вместо смены флага
	field  string // lifecycle-флаг
	value  bool   // целевое состояние флага
}

// Таблица допустимых действий по типам контента. Несмапленная пара
// отклоняется как UnsupportedAction до обращения к хранилищу.
var actionTable = map[models.ContentType]map[models.BulkAction]mutation{
	models.ContentTypeBlog: {
		models.ActionDelete:  {remove: true},
		models.ActionPublish: {field: "published", value: true},
		models.ActionArchive: {field: "published", value: false},
	},
	models.ContentTypeModel: {
		models.ActionDelete:    {remove: true},
		models.ActionFeature:   {field: "featured", value: true},
		models.ActionUnfeature: {field: "featured", value: false},
	},
}

// outcome - исход одного элемента батча
type outcome struct {
	id     string
	ok     bool
	reason string
}

// Dispatcher применяет одно действие к набору элементов контента.
// Семантика best-effort: элементы обрабатываются независимо, отказ одного
// не прерывает остальные, отката нет.
type Dispatcher struct {
	Storage     storage.Storage
	Concurrency int
}

// NewDispatcher создаёт диспетчер массовых действий
func NewDispatcher(s storage.Storage) *Dispatcher {
	return &Dispatcher{Storage: s, Concurrency: defaultConcurrency}
}

// Apply применяет действие к каждому ID и возвращает единый BulkResult
// после разрешения всего батча. Авторизация выполняется один раз на батч.
// Пустой список ID - успешный no-op без обращения к хранилищу.
func (d *Dispatcher) Apply(ctx context.Context, actor *models.Actor, action models.BulkAction,
	itemType models.ContentType, ids []string) (*models.BulkResult, error) {

	if !itemType.Valid() {
		return nil, errors.Wrapf(models.ErrValidation, "unknown content type %q", itemType)
	}

	mut, ok := actionTable[itemType][action]
	if !ok {
		return nil, errors.Wrapf(models.ErrUnsupportedAction, "%s on %s", action, itemType)
	}

	if !permissions.CanBulkAct(actor, action, itemType) {
		return nil, errors.Wrapf(models.ErrForbidden, "bulk %s requires admin role", action)
	}

	result := &models.BulkResult{
		SucceededIDs: []string{},
		FailedIDs:    []models.BulkFailure{},
	}
	if len(ids) == 0 {
		return result, nil
	}

	// Дубликаты схлопываются, чтобы исход каждого ID был однозначным
	ids = lo.Uniq(ids)

	logrus.Infof("Applying bulk %s to %d %s items", action, len(ids), itemType)

	// Мутации независимы и выполняются конкурентно с ограниченной шириной;
	// исходы пишутся каждый в свой слот
	outcomes := make([]outcome, len(ids))
	semaphore := make(chan struct{}, d.Concurrency)
	var wg sync.WaitGroup

	for i, id := range ids {
		semaphore <- struct{}{}
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			defer func() { <-semaphore }()
			outcomes[i] = d.applyOne(ctx, itemType, id, mut)
		}(i, id)
	}
	wg.Wait()

	for _, out := range outcomes {
		if out.ok {
			result.SucceededIDs = append(result.SucceededIDs, out.id)
		} else {
			result.FailedIDs = append(result.FailedIDs, models.BulkFailure{ID: out.id, Reason: out.reason})
		}
	}

	logrus.Infof("Bulk %s finished: %d succeeded, %d failed",
		action, len(result.SucceededIDs), len(result.FailedIDs))
	return result, nil
}

// applyOne применяет мутацию к одному элементу. Элемент, уже находящийся
// в целевом состоянии, считается успехом: повторный батч безопасен.
func (d *Dispatcher) applyOne(ctx context.Context, itemType models.ContentType, id string, mut mutation) outcome {
	// Уже применённые мутации при отмене запроса не откатываются,
	// оставшиеся помечаются как неуспешные
	if err := ctx.Err(); err != nil {
		return outcome{id: id, reason: "request cancelled"}
	}

	if mut.remove {
		err := d.Storage.DeleteItem(itemType, id)
		if errors.Is(err, models.ErrNotFound) {
			// Удалён другим админом между выбором и отправкой: именованный
			// исход, не жёсткая ошибка — остальной батч продолжается
			return outcome{id: id, reason: "already deleted"}
		}
		if err != nil {
			logrus.Errorf("Bulk delete of %s/%s failed: %v", itemType, id, err)
			return outcome{id: id, reason: err.Error()}
		}
		return outcome{id: id, ok: true}
	}

	item, err := d.Storage.GetItemByID(itemType, id)
	if errors.Is(err, models.ErrNotFound) {
		return outcome{id: id, reason: "item not found"}
	}
	if err != nil {
		logrus.Errorf("Bulk lookup of %s/%s failed: %v", itemType, id, err)
		return outcome{id: id, reason: err.Error()}
	}

	current := item.Published
	if mut.field == "featured" {
		current = item.Featured
	}
	if current == mut.value {
		return outcome{id: id, ok: true, reason: "already in target state"}
	}

	if err := d.Storage.UpdateItemField(itemType, id, mut.field, mut.value); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return outcome{id: id, reason: "item not found"}
		}
		logrus.Errorf("Bulk update of %s/%s failed: %v", itemType, id, err)
		return outcome{id: id, reason: err.Error()}
	}
	return outcome{id: id, ok: true}
}
