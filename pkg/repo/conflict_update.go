package repo

import (
	"reflect"
	"time"

	"github.com/doug-martin/goqu/v9"
)

// BuildConflictUpdate возвращает conflict_target и поля для обновления в случае конфликта
func BuildConflictUpdate(entity any, now time.Time) (string, map[string]any) {
	updateFields := make(map[string]any)
	var pKey string
	var conflictTarget string

	collectConflictFields(reflect.ValueOf(entity), now, updateFields, &pKey, &conflictTarget)

	if conflictTarget == "" {
		conflictTarget = pKey
	}

	return conflictTarget, updateFields
}

func collectConflictFields(vEntity reflect.Value, now time.Time, updateFields map[string]any, pKey, conflictTarget *string) {
	for i := 0; i < vEntity.NumField(); i++ {
		typeField := vEntity.Type().Field(i)
		tag := typeField.Tag

		if typeField.Anonymous && typeField.Type.Kind() == reflect.Struct {
			collectConflictFields(vEntity.Field(i), now, updateFields, pKey, conflictTarget)
			continue
		}

		dbFieldName := tag.Get("db")
		if dbFieldName == "" {
			continue
		}

		// пропускаем PK
		if pkTag := tag.Get("primary"); pkTag != "" {
			*pKey = dbFieldName
			continue
		}

		// пропускаем колонку, отмеченную как conflict_target
		if ctTag := tag.Get("conflict_target"); ctTag != "" {
			*conflictTarget = dbFieldName
			continue
		}

		// created_at при конфликте не трогаем
		if dbFieldName == "created_at" {
			continue
		}

		if dbFieldName == "updated_at" {
			updateFields[dbFieldName] = now
			continue
		}

		updateFields[dbFieldName] = goqu.C(dbFieldName).Table("excluded")
	}
}
