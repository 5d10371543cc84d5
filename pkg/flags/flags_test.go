package flags_test

import (
	"errors"

	"github.com/brianvoe/gofakeit/v6"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/EveryHotel/flag-tools/pkg/flags"
)

type permission uint8

const (
	permRead permission = 1 << iota
	permWrite
	permDelete
)

var _ = Describe("Flag", func() {
	Describe("constructors", func() {
		It("when no arguments", func() {
			// пустой список аргументов дает нулевое значение, а не ошибку
			Expect(flags.New[int]()).Should(Equal(flags.Flag(0)))
			Expect(flags.Combine[uint64]()).Should(Equal(flags.Flag(0)))
		})

		It("when several arguments", func() {
			Expect(flags.New(0b0001, 0b0100)).Should(Equal(flags.Flag(0b0101)))
			Expect(flags.New(0b0001, 0b0001)).Should(Equal(flags.Flag(0b0001)))
		})

		It("when arguments are named constants", func() {
			f := flags.New(permRead, permDelete)

			Expect(f).Should(Equal(flags.Flag(0b101)))
		})

		It("when argument is negative", func() {
			f := flags.New(int64(-1))

			Expect(f).Should(Equal(flags.Flag(^uint64(0))))
		})
	})

	Describe("Set", func() {
		It("should replace value completely", func() {
			f := flags.Flag(0b1111)
			f.Set(0b0010)

			Expect(f).Should(Equal(flags.Flag(0b0010)))
		})

		It("when no arguments", func() {
			f := flags.Flag(gofakeit.Uint64())
			f.Set()

			Expect(f).Should(Equal(flags.Flag(0)))
		})
	})

	Describe("Merge", func() {
		It("should add bits and stay idempotent", func() {
			f := flags.Flag(0b0001)
			f.Merge(0b0100)
			f.Merge(0b0100)

			Expect(f).Should(Equal(flags.Flag(0b0101)))
		})
	})

	Describe("Remove", func() {
		It("should clear only given bits", func() {
			f := flags.Flag(0b0111)
			f.Remove(0b0010, 0b1000)

			Expect(f).Should(Equal(flags.Flag(0b0101)))
		})

		It("should undo Merge for non-overlapping bits", func() {
			for i := 0; i < 100; i++ {
				a := flags.Flag(gofakeit.Uint64())
				b := flags.Flag(gofakeit.Uint64())

				got := a
				got.Merge(b)
				got.Remove(b)

				want := a
				want.Remove(b)

				Expect(got).Should(Equal(want))
			}
		})
	})

	Describe("Invert", func() {
		It("should restore value after double invert", func() {
			f := flags.Flag(gofakeit.Uint64())

			inv := f
			inv.Invert()
			Expect(inv).Should(Equal(flags.Flag(^uint64(f))))

			inv.Invert()
			Expect(inv).Should(Equal(f))
		})
	})

	Describe("pure forms", func() {
		It("should not touch receiver", func() {
			f := flags.Flag(0b0101)

			Expect(f.With(0b0010)).Should(Equal(flags.Flag(0b0111)))
			Expect(f.Without(0b0001)).Should(Equal(flags.Flag(0b0100)))
			Expect(f.Inverted()).Should(Equal(flags.Flag(^uint64(0b0101))))
			Expect(f).Should(Equal(flags.Flag(0b0101)))
		})
	})

	Describe("Match", func() {
		It("should check containment of all pattern bits", func() {
			f := flags.Flag(0b0110)

			Expect(f.Match(0b0100)).Should(Equal(true))
			Expect(f.Match(0b0010, 0b0100)).Should(Equal(true))
			Expect(f.Match(0b0001)).Should(Equal(false))
			Expect(f.Match(0b0111)).Should(Equal(false))
		})

		It("should stay asymmetric", func() {
			wide := flags.Flag(0b0110)
			narrow := flags.Flag(0b0100)

			Expect(wide.Match(narrow)).Should(Equal(true))
			Expect(narrow.Match(wide)).Should(Equal(false))
		})

		It("when pattern is empty", func() {
			f := flags.Flag(gofakeit.Uint64())

			Expect(f.Match()).Should(Equal(true))
			Expect(f.Match(0)).Should(Equal(true))
		})
	})

	Describe("MatchExact", func() {
		It("should require equality of all bits", func() {
			f := flags.Flag(0b0101)

			Expect(f.MatchExact(0b0001, 0b0100)).Should(Equal(true))
			Expect(f.MatchExact(0b0001)).Should(Equal(false))
		})

		It("when pattern is contained but not equal", func() {
			f := flags.Flag(0b0110)

			Expect(f.Match(0b0010)).Should(Equal(true))
			Expect(f.MatchExact(0b0010)).Should(Equal(false))
		})

		It("should agree with == operator", func() {
			for i := 0; i < 100; i++ {
				a := flags.Flag(gofakeit.Uint64())
				b := flags.Flag(gofakeit.Uint64())

				Expect(a.MatchExact(b)).Should(Equal(a == b))
			}
		})
	})

	Describe("MatchAny", func() {
		It("should find at least one contained pattern", func() {
			f := flags.Flag(0b0101)

			Expect(f.MatchAny(0b0001, 0b1000)).Should(Equal(true))
			Expect(f.MatchAny(0b0010, 0b1000)).Should(Equal(false))
		})

		It("should check every pattern as a whole", func() {
			f := flags.Flag(0b0101)

			// 0b0011 не входит целиком, хотя общий бит есть
			Expect(f.MatchAny(0b0011)).Should(Equal(false))
			Expect(f.Match(0b0011)).Should(Equal(false))
		})

		It("when no arguments", func() {
			f := flags.Flag(gofakeit.Uint64())

			Expect(f.MatchAny()).Should(Equal(false))
		})
	})

	Describe("FirstMatch", func() {
		It("should return first contained pattern", func() {
			f := flags.Flag(0b0101)

			got, ok := f.FirstMatch(0b0010, 0b0100, 0b0001)
			Expect(ok).Should(Equal(true))
			Expect(got).Should(Equal(flags.Flag(0b0100)))
		})

		It("when several patterns match", func() {
			f := flags.Flag(0b1001)

			got, ok := f.FirstMatch(0b0001, 0b1000)
			Expect(ok).Should(Equal(true))
			Expect(got).Should(Equal(flags.Flag(0b0001)))
		})

		It("when nothing matches", func() {
			f := flags.Flag(0b0101)

			got, ok := f.FirstMatch(0b0010, 0b1000)
			Expect(ok).Should(Equal(false))
			Expect(got).Should(Equal(flags.Flag(0)))
		})
	})

	Describe("MatchValue", func() {
		It("when value is a builtin integer", func() {
			f := flags.Flag(0b0101)

			ok, err := f.MatchValue(int32(0b0101))
			Expect(err).Should(Succeed())
			Expect(ok).Should(Equal(true))

			ok, err = f.MatchValue(uint8(0b0100))
			Expect(err).Should(Succeed())
			Expect(ok).Should(Equal(false))
		})

		It("when value is a named constant type", func() {
			f := flags.New(permRead, permWrite)

			ok, err := f.MatchValue(permRead | permWrite)
			Expect(err).Should(Succeed())
			Expect(ok).Should(Equal(true))
		})

		It("when value is a Flag pointer", func() {
			f := flags.Flag(0b0101)
			pattern := flags.Flag(0b0001)

			ok, err := f.MatchValue(&pattern)
			Expect(err).Should(Succeed())
			Expect(ok).Should(Equal(true))
		})

		It("when value is not an integer", func() {
			f := flags.Flag(0b0101)

			_, err := f.MatchValue("0b0101")
			Expect(errors.Is(err, flags.ErrNotConvertible)).Should(Equal(true))

			_, err = f.MatchValue(nil)
			Expect(errors.Is(err, flags.ErrNotConvertible)).Should(Equal(true))
		})
	})

	Describe("Bit", func() {
		It("should return bit by index", func() {
			// установленный и сброшенный биты дают разные результаты: 1 и 0
			f := flags.Flag(0b0101)

			Expect(f.Bit(0)).Should(Equal(uint(1)))
			Expect(f.Bit(1)).Should(Equal(uint(0)))
			Expect(f.Bit(2)).Should(Equal(uint(1)))
			Expect(f.Bit(3)).Should(Equal(uint(0)))
		})

		It("when index is the highest bit", func() {
			f := flags.Flag(1) << 63

			Expect(f.Bit(63)).Should(Equal(uint(1)))
			Expect(f.Bit(62)).Should(Equal(uint(0)))
		})

		It("when index is out of range", func() {
			f := flags.Flag(^uint64(0))

			Expect(f.Bit(-1)).Should(Equal(uint(0)))
			Expect(f.Bit(64)).Should(Equal(uint(0)))
		})
	})

	Describe("map key", func() {
		It("should collapse exactly equal values only", func() {
			seen := map[flags.Flag]int{}

			seen[flags.New(0b0001, 0b0100)]++
			seen[flags.Flag(0b0101)]++
			seen[flags.Flag(0b0001)]++

			Expect(seen[flags.Flag(0b0101)]).Should(Equal(2))
			Expect(seen[flags.Flag(0b0001)]).Should(Equal(1))
		})
	})
})

var _ = Describe("AsFlag", func() {
	It("when value is already a Flag", func() {
		f, err := flags.AsFlag(flags.Flag(0b0101))

		Expect(err).Should(Succeed())
		Expect(f).Should(Equal(flags.Flag(0b0101)))
	})

	It("when value is a Flag pointer", func() {
		src := flags.Flag(0b0101)

		f, err := flags.AsFlag(&src)

		Expect(err).Should(Succeed())
		Expect(f).Should(Equal(flags.Flag(0b0101)))
	})

	It("when value is a nil Flag pointer", func() {
		var src *flags.Flag

		_, err := flags.AsFlag(src)

		Expect(errors.Is(err, flags.ErrNotConvertible)).Should(Equal(true))
	})

	It("when value is any builtin integer", func() {
		for _, v := range []any{
			int(5), int8(5), int16(5), int32(5), int64(5),
			uint(5), uint8(5), uint16(5), uint32(5), uint64(5),
		} {
			f, err := flags.AsFlag(v)

			Expect(err).Should(Succeed())
			Expect(f).Should(Equal(flags.Flag(5)))
		}
	})

	It("when value is negative", func() {
		// знаковые значения расширяются до 64-битного дополнительного кода
		f, err := flags.AsFlag(int8(-1))

		Expect(err).Should(Succeed())
		Expect(f).Should(Equal(flags.Flag(^uint64(0))))

		f, err = flags.AsFlag(int64(-1))

		Expect(err).Should(Succeed())
		Expect(f).Should(Equal(flags.Flag(^uint64(0))))
	})

	It("when value is unsupported", func() {
		for _, v := range []any{"101", 1.5, true, []int{1}, nil} {
			_, err := flags.AsFlag(v)

			Expect(errors.Is(err, flags.ErrNotConvertible)).Should(Equal(true))
		}
	})
})
