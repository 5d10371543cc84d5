package flags

// Flag битовая маска из 64 флагов поверх одного uint64.
//
// Позиции битов сами по себе не несут смысла: значение им задают именованные
// константы вызывающей стороны (обычно степени двойки, но тип это не требует:
// допустимы многобитовые и нулевые шаблоны). Flag является значением: копируется
// при присваивании, изменение одной копии не затрагивает другие. Общий *Flag,
// мутируемый из нескольких горутин, требует внешней синхронизации.
//
// Сравнение через == означает точное равенство битов (как MatchExact) и
// согласовано с использованием Flag как ключа map. Отношение Match проверяет
// вхождение шаблона, оно несимметрично и с == не совпадает.
type Flag uint64

// Set заменяет текущее значение OR-комбинацией переданных. Без аргументов
// обнуляет значение.
func (f *Flag) Set(values ...Flag) {
	*f = Combine(values...)
}

// Merge добавляет биты переданных значений, не трогая уже установленные.
func (f *Flag) Merge(values ...Flag) {
	*f |= Combine(values...)
}

// Remove сбрасывает биты OR-комбинации переданных значений.
func (f *Flag) Remove(values ...Flag) {
	*f &^= Combine(values...)
}

// Invert инвертирует все 64 бита.
func (f *Flag) Invert() {
	*f = ^*f
}

// With возвращает новое значение с добавленными битами, не меняя исходное.
func (f Flag) With(values ...Flag) Flag {
	return f | Combine(values...)
}

// Without возвращает новое значение без битов переданных шаблонов.
func (f Flag) Without(values ...Flag) Flag {
	return f &^ Combine(values...)
}

// Inverted возвращает новое значение с инвертированными битами.
func (f Flag) Inverted() Flag {
	return ^f
}

// Match проверяет, что все биты OR-комбинации переданных значений установлены
// в f: (f & p) == p. Это вхождение шаблона, а не равенство, отношение
// несимметрично: Flag(0b110).Match(0b100) истинно, Flag(0b100).Match(0b110)
// ложно. Пустой шаблон входит в любое значение, поэтому Match() и Match(0)
// всегда истинны. Для точного равенства используйте MatchExact или ==.
func (f Flag) Match(values ...Flag) bool {
	p := Combine(values...)
	return f&p == p
}

// MatchExact проверяет точное равенство значения OR-комбинации переданных:
// f == p. Из MatchExact следует Match, обратное неверно.
func (f Flag) MatchExact(values ...Flag) bool {
	return f == Combine(values...)
}

// MatchAny проверяет вхождение хотя бы одного из переданных шаблонов.
// Каждый аргумент проверяется отдельно, без объединения. Без аргументов
// возвращает false.
func (f Flag) MatchAny(values ...Flag) bool {
	for _, v := range values {
		if f.Match(v) {
			return true
		}
	}

	return false
}

// FirstMatch возвращает первый по порядку аргументов шаблон, входящий в f.
// Второй результат false, когда ни один шаблон не входит; возвращается только
// первое совпадение, даже если входят несколько.
func (f Flag) FirstMatch(values ...Flag) (Flag, bool) {
	for _, v := range values {
		if f.Match(v) {
			return v, true
		}
	}

	return 0, false
}

// MatchValue проверяет вхождение битов произвольного значения, приводимого к
// 64-битному шаблону (Flag, именованная константа, целое). Возвращает ошибку
// ErrNotConvertible для неприводимых значений. Как и Match, отношение
// несимметрично и не эквивалентно ==.
func (f Flag) MatchValue(v any) (bool, error) {
	p, err := AsFlag(v)
	if err != nil {
		return false, err
	}

	return f.Match(p), nil
}

// Bit возвращает 1, если бит в позиции i установлен, иначе 0.
// Для i вне диапазона 0..63 возвращает 0.
func (f Flag) Bit(i int) uint {
	if i < 0 || i >= 64 {
		return 0
	}

	return uint(f>>uint(i)) & 1
}
