package validation

import (
	"errors"
	"sort"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrorMap раскладывает ошибку валидатора по полям и возвращает результат в виде мапа
func ErrorMap(err error) interface{} {
	if err == nil {
		return nil
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		return err.Error()
	}

	res := make(map[string]interface{}, len(errs))
	for field, fieldErr := range errs {
		res[field] = ErrorMap(fieldErr)
	}

	return sliceFromIndexes(res)
}

// sliceFromIndexes превращает мап с числовыми ключами в массив, чтобы точно показать
// в каком элементе оказалась ошибка, пропущенные элементы, где все хорошо, помечаются nil
func sliceFromIndexes(res map[string]interface{}) interface{} {
	byIndex := make(map[int]interface{}, len(res))
	for key, val := range res {
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 {
			return res
		}

		byIndex[i] = val
	}

	if len(byIndex) == 0 {
		return res
	}

	indexes := make([]int, 0, len(byIndex))
	for i := range byIndex {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)

	arrayRes := make([]interface{}, indexes[len(indexes)-1]+1)
	for _, i := range indexes {
		arrayRes[i] = byIndex[i]
	}

	return arrayRes
}
