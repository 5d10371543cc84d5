package collection

type Collection[T any, I int64 | string] map[I]T
type keyGetter[T any, I int64 | string] func(T) I

func Collect[T any, I int64 | string](list []T, getter keyGetter[T, I]) Collection[T, I] {
	res := make(Collection[T, I], len(list))
	for _, item := range list {
		res[getter(item)] = item
	}

	return res
}

// Keys возвращает список ключей
func (l Collection[T, I]) Keys() []I {
	var keys []I
	for key := range l {
		keys = append(keys, key)
	}

	return keys
}

// Values возвращает список значений
func (l Collection[T, I]) Values() []T {
	var values []T
	for _, val := range l {
		values = append(values, val)
	}

	return values
}

// Has проверяет наличие ключа
func (l Collection[T, I]) Has(key I) bool {
	_, ok := l[key]
	return ok
}

// Filter возвращает новую коллекцию из элементов, прошедших проверку
func (l Collection[T, I]) Filter(fn func(item T) bool) Collection[T, I] {
	res := make(Collection[T, I])
	for key, val := range l {
		if fn(val) {
			res[key] = val
		}
	}

	return res
}
