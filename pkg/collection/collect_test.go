package collection_test

import (
	"github.com/brianvoe/gofakeit/v6"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/EveryHotel/flag-tools/pkg/collection"
)

type record struct {
	ID   int64
	Name string
}

var _ = Describe("Collect", func() {
	It("should map list items by key", func() {
		list := []record{
			{ID: 1, Name: gofakeit.Name()},
			{ID: 2, Name: gofakeit.Name()},
			{ID: 3, Name: gofakeit.Name()},
		}

		got := collection.Collect(list, func(r record) int64 { return r.ID })

		Expect(got).Should(HaveLen(3))
		Expect(got[2]).Should(Equal(list[1]))
	})

	It("when keys repeat", func() {
		list := []record{
			{ID: 1, Name: "first"},
			{ID: 1, Name: "second"},
		}

		got := collection.Collect(list, func(r record) int64 { return r.ID })

		Expect(got).Should(HaveLen(1))
		Expect(got[1].Name).Should(Equal("second"))
	})

	It("when key is a string", func() {
		list := []record{
			{ID: 7, Name: "seven"},
		}

		got := collection.Collect(list, func(r record) string { return r.Name })

		Expect(got["seven"].ID).Should(Equal(int64(7)))
	})
})

var _ = Describe("Collection", func() {
	var coll collection.Collection[record, int64]

	BeforeEach(func() {
		coll = collection.Collect([]record{
			{ID: 10, Name: "a"},
			{ID: 20, Name: "b"},
		}, func(r record) int64 { return r.ID })
	})

	It("should list keys and values", func() {
		Expect(coll.Keys()).Should(ConsistOf(int64(10), int64(20)))
		Expect(coll.Values()).Should(ConsistOf(
			record{ID: 10, Name: "a"},
			record{ID: 20, Name: "b"},
		))
	})

	Describe("Has", func() {
		It("when key exists", func() {
			Expect(coll.Has(10)).Should(Equal(true))
		})

		It("when key is missing", func() {
			Expect(coll.Has(30)).Should(Equal(false))
		})
	})

	Describe("Filter", func() {
		It("should keep matching items with their keys", func() {
			got := coll.Filter(func(r record) bool { return r.Name == "b" })

			Expect(got).Should(HaveLen(1))
			Expect(got[20].Name).Should(Equal("b"))
		})

		It("when nothing matches", func() {
			got := coll.Filter(func(r record) bool { return false })

			Expect(got).Should(BeEmpty())
			Expect(coll).Should(HaveLen(2))
		})
	})
})
