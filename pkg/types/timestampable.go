package types

import "time"

// Timestampable поля времени создания и изменения записи
type Timestampable struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Touch обновляет время изменения, время создания заполняется один раз
func (t *Timestampable) Touch(now time.Time) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}

	t.UpdatedAt = now
}
