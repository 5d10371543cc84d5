package repo

import (
	"github.com/google/uuid"

	"github.com/EveryHotel/flag-tools/pkg/collection"
	"github.com/EveryHotel/flag-tools/pkg/flags"
	"github.com/EveryHotel/flag-tools/pkg/types"
)

// SubjectFlags запись флагов субъекта, subject_id уникален в таблице
type SubjectFlags struct {
	ID        int64      `db:"id" primary:"1"`
	SubjectID uuid.UUID  `db:"subject_id" conflict_target:"1"`
	Flags     flags.Flag `db:"flags"`
	types.Timestampable
}

// CollectBySubject раскладывает записи по идентификатору субъекта
func CollectBySubject(list []SubjectFlags) collection.Collection[SubjectFlags, string] {
	return collection.Collect(list, func(e SubjectFlags) string {
		return e.SubjectID.String()
	})
}
