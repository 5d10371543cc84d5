package database

import (
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/EveryHotel/flag-tools/pkg/flags"
)

// GetTableName формирует имя таблицы как goqu IdentifierExpression
func GetTableName(name string) exp.IdentifierExpression {
	parts := strings.Split(name, ".")
	if len(parts) == 2 {
		return goqu.T(parts[1]).Schema(parts[0])
	}

	return goqu.T(name)
}

// bitsOf упаковывает флаг в значение BIGINT колонки
func bitsOf(f flags.Flag) int64 {
	return int64(uint64(f))
}

// FlagsContain условие вхождения всех битов шаблона в колонку
func FlagsContain(column string, pattern flags.Flag) exp.Expression {
	return goqu.L("(? & ?) = ?", goqu.I(column), bitsOf(pattern), bitsOf(pattern))
}

// FlagsContainAny условие вхождения хотя бы одного шаблона целиком
func FlagsContainAny(column string, patterns ...flags.Flag) exp.Expression {
	if len(patterns) == 0 {
		return goqu.L("FALSE")
	}

	conditions := make([]exp.Expression, 0, len(patterns))
	for _, pattern := range patterns {
		conditions = append(conditions, FlagsContain(column, pattern))
	}

	return goqu.Or(conditions...)
}

// FlagsEqual условие точного совпадения всех битов колонки с шаблоном
func FlagsEqual(column string, pattern flags.Flag) exp.Expression {
	return goqu.I(column).Eq(bitsOf(pattern))
}

// FlagsOverlap условие пересечения колонки с шаблоном хотя бы по одному биту
func FlagsOverlap(column string, pattern flags.Flag) exp.Expression {
	return goqu.L("(? & ?) <> 0", goqu.I(column), bitsOf(pattern))
}

// SetFlagsExpr выражение полной замены битов колонки шаблоном
func SetFlagsExpr(pattern flags.Flag) exp.LiteralExpression {
	return goqu.L("?", bitsOf(pattern))
}

// MergeFlagsExpr выражение колонки с добавленными битами шаблона
func MergeFlagsExpr(column string, pattern flags.Flag) exp.LiteralExpression {
	return goqu.L("? | ?", goqu.I(column), bitsOf(pattern))
}

// RemoveFlagsExpr выражение колонки со снятыми битами шаблона
func RemoveFlagsExpr(column string, pattern flags.Flag) exp.LiteralExpression {
	return goqu.L("? & ~?", goqu.I(column), bitsOf(pattern))
}
