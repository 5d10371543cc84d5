package flags

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/EveryHotel/flag-tools/pkg/collection"
)

// Constant именованная константа: символьное имя и её битовое значение.
type Constant[T Bits] struct {
	Name  string
	Value T
}

// Enum набор именованных констант одного типа. После создания неизменяем,
// безопасен для конкурентного чтения.
type Enum[T Bits] struct {
	constants []Constant[T]
	byName    collection.Collection[Constant[T], string]
	byValue   map[uint64]string
}

// NewEnum создает набор констант. Возвращает ErrInvalidEnum для пустого
// набора, пустого имени, повторяющихся имен или значений.
func NewEnum[T Bits](constants ...Constant[T]) (*Enum[T], error) {
	if len(constants) == 0 {
		return nil, fmt.Errorf("enum has no constants: %w", ErrInvalidEnum)
	}

	byName := make(collection.Collection[Constant[T], string], len(constants))
	byValue := make(map[uint64]string, len(constants))
	for _, c := range constants {
		if c.Name == "" {
			return nil, fmt.Errorf("constant name cannot be empty: %w", ErrInvalidEnum)
		}
		if byName.Has(c.Name) {
			return nil, fmt.Errorf("duplicate constant name %q: %w", c.Name, ErrInvalidEnum)
		}
		if name, ok := byValue[uint64(c.Value)]; ok {
			return nil, fmt.Errorf("constants %q and %q share one value: %w", name, c.Name, ErrInvalidEnum)
		}

		byName[c.Name] = c
		byValue[uint64(c.Value)] = c.Name
	}

	ordered := make([]Constant[T], len(constants))
	copy(ordered, constants)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Value != ordered[j].Value {
			return uint64(ordered[i].Value) < uint64(ordered[j].Value)
		}
		return ordered[i].Name < ordered[j].Name
	})

	return &Enum[T]{
		constants: ordered,
		byName:    byName,
		byValue:   byValue,
	}, nil
}

// MustEnum как NewEnum, но паникует при ошибке. Для пакетных таблиц констант.
func MustEnum[T Bits](constants ...Constant[T]) *Enum[T] {
	e, err := NewEnum(constants...)
	if err != nil {
		panic(err)
	}

	return e
}

// ValueOf возвращает значение константы по имени.
func (e *Enum[T]) ValueOf(name string) (T, bool) {
	c, ok := e.byName[name]
	return c.Value, ok
}

// NameOf возвращает имя константы по значению.
func (e *Enum[T]) NameOf(v T) (string, bool) {
	name, ok := e.byValue[uint64(v)]
	return name, ok
}

// Names возвращает имена констант в порядке возрастания значений.
func (e *Enum[T]) Names() []string {
	names := make([]string, len(e.constants))
	for i, c := range e.constants {
		names[i] = c.Name
	}

	return names
}

// Constants возвращает копию констант в порядке возрастания значений.
func (e *Enum[T]) Constants() []Constant[T] {
	out := make([]Constant[T], len(e.constants))
	copy(out, e.constants)
	return out
}

// Mask возвращает OR-комбинацию значений всех констант набора.
func (e *Enum[T]) Mask() Flag {
	var m Flag
	for _, c := range e.constants {
		m |= Flag(uint64(c.Value))
	}

	return m
}

// Parse разбирает символьное имя константы или её целое значение в
// десятичной записи. Число без соответствующей константы дает ErrUnknownValue,
// прочие строки дают ErrUnknownName.
func (e *Enum[T]) Parse(s string) (T, error) {
	var zero T

	if c, ok := e.byName[s]; ok {
		return c.Value, nil
	}

	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		i, ierr := strconv.ParseInt(s, 10, 64)
		if ierr != nil {
			return zero, fmt.Errorf("parse constant %q: %w", s, ErrUnknownName)
		}
		u = uint64(i)
	}

	name, ok := e.byValue[u]
	if !ok {
		return zero, fmt.Errorf("parse constant %q: %w", s, ErrUnknownValue)
	}

	return e.byName[name].Value, nil
}

// Decode восстанавливает именованную константу из значения Flag через
// текстовый разбор его целого представления. Значению должна соответствовать
// ровно одна константа, иначе ErrUnknownValue.
func (e *Enum[T]) Decode(f Flag) (T, error) {
	return e.Parse(strconv.FormatUint(uint64(f), 10))
}

// Format возвращает имена входящих в значение констант через "|".
// Биты без констант дописываются двоичной записью остатка.
func (e *Enum[T]) Format(f Flag) string {
	if f == 0 {
		if name, ok := e.byValue[0]; ok {
			return name
		}
		return f.String()
	}

	var parts []string
	var covered Flag
	for _, c := range e.constants {
		p := Flag(uint64(c.Value))
		if p == 0 {
			continue
		}
		if f.Match(p) {
			parts = append(parts, c.Name)
			covered |= p
		}
	}

	if rest := f.Without(covered); rest != 0 {
		parts = append(parts, rest.String())
	}

	return strings.Join(parts, "|")
}

// ToEnum приводит значение Flag к именованной константе набора e.
func ToEnum[T Bits](f Flag, e *Enum[T]) (T, error) {
	var zero T
	if e == nil {
		return zero, fmt.Errorf("nil enum: %w", ErrInvalidEnum)
	}

	return e.Decode(f)
}
