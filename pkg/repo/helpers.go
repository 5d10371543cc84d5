package repo

import (
	"reflect"

	"github.com/jonboulle/clockwork"
)

// SanitizeRowsForInsert возвращает объект с полями для добавления сущности
func SanitizeRowsForInsert(entity interface{}, clock clockwork.Clock) (int64, map[string]interface{}) {
	opts := []SanitizeRowsOption{
		WithDefaultTimestamps("created_at", "updated_at"),
	}

	return SanitizeRows(entity, clock, opts...)
}

// SanitizeRowsForUpdate возвращает объект с полями для обновления сущности
func SanitizeRowsForUpdate(entity interface{}, clock clockwork.Clock) (int64, map[string]interface{}) {
	opts := []SanitizeRowsOption{
		WithSkippingFields("created_at"),
		WithDefaultTimestamps("updated_at"),
	}

	return SanitizeRows(entity, clock, opts...)
}

type SanitizeRowsOption func(*sanitizeRowsHandler)

// SanitizeRows возвращает PK и объект с полями сущности для записи
func SanitizeRows(entity interface{}, clock clockwork.Clock, opts ...SanitizeRowsOption) (int64, map[string]interface{}) {
	handler := &sanitizeRowsHandler{}
	for _, opt := range opts {
		opt(handler)
	}

	var primary int64
	rows := map[string]interface{}{}
	collectRows(reflect.ValueOf(entity), handler, rows, &primary)

	for _, tsField := range handler.DefaultTimestamps {
		if _, ok := rows[tsField]; ok {
			rows[tsField] = clock.Now()
		}
	}

	return primary, rows
}

func collectRows(vEntity reflect.Value, handler *sanitizeRowsHandler, rows map[string]interface{}, primary *int64) {
	for i := 0; i < vEntity.NumField(); i++ {
		typeField := vEntity.Type().Field(i)
		tag := typeField.Tag

		// встроенные структуры раскрываются в их собственные колонки
		if typeField.Anonymous && typeField.Type.Kind() == reflect.Struct {
			collectRows(vEntity.Field(i), handler, rows, primary)
			continue
		}

		dbFieldName := tag.Get("db")
		if dbFieldName == "" {
			continue
		}

		if pkTag := tag.Get("primary"); pkTag != "" {
			*primary = vEntity.Field(i).Int()
			// если поле помечено как НЕ автоинкрементное, оставляем его в списке
			if nsTag := tag.Get("not_serial"); nsTag == "" {
				continue
			}
		}

		if _, ok := handler.SkippingFields[dbFieldName]; !ok {
			rows[dbFieldName] = vEntity.Field(i).Interface()
		}
	}
}

// WithSkippingFields пропустить поля
func WithSkippingFields(fields ...string) SanitizeRowsOption {
	return func(handler *sanitizeRowsHandler) {
		mapped := make(map[string]bool, len(fields))
		for _, val := range fields {
			mapped[val] = false
		}

		handler.SetSkippingFields(mapped)
	}
}

// WithDefaultTimestamps проставить выбранные timestamps по часам репозитория
func WithDefaultTimestamps(fields ...string) SanitizeRowsOption {
	return func(handler *sanitizeRowsHandler) {
		handler.SetDefaultTimestamps(fields)
	}
}

type sanitizeRowsHandler struct {
	SkippingFields    map[string]bool
	DefaultTimestamps []string
}

func (h *sanitizeRowsHandler) SetSkippingFields(val map[string]bool) {
	h.SkippingFields = val
}

func (h *sanitizeRowsHandler) SetDefaultTimestamps(fields []string) {
	h.DefaultTimestamps = fields
}
