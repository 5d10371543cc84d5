package validation_test

import (
	"errors"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/EveryHotel/flag-tools/pkg/flags"
	"github.com/EveryHotel/flag-tools/pkg/validation"
)

var _ = Describe("ErrorMap", func() {
	It("when error is nil", func() {
		Expect(validation.ErrorMap(nil)).Should(BeNil())
	})

	It("when error is plain", func() {
		Expect(validation.ErrorMap(errors.New("boom"))).Should(Equal("boom"))
	})

	It("should map errors by field name", func() {
		type permissionRequest struct {
			Roles flags.Flag
			Extra flags.Flag
		}

		req := permissionRequest{Roles: flags.Flag(0), Extra: flags.Flag(0b1000)}

		err := ozzo.ValidateStruct(&req,
			ozzo.Field(&req.Roles, ozzo.By(validation.NonZeroFlag(""))),
			ozzo.Field(&req.Extra, ozzo.By(validation.KnownFlags(roleEnum()))),
		)
		Expect(err).ShouldNot(Succeed())

		res := validation.ErrorMap(err)

		Expect(res).Should(HaveKeyWithValue("Roles", "flag must not be zero"))
		Expect(res).Should(HaveKey("Extra"))
	})

	It("should keep nesting for inner structs", func() {
		type grant struct {
			Roles flags.Flag
		}

		type request struct {
			Grant grant
		}

		req := request{Grant: grant{Roles: flags.Flag(0b1000)}}

		err := ozzo.ValidateStruct(&req,
			validation.Nested(&req.Grant,
				ozzo.Field(&req.Grant.Roles, ozzo.By(validation.KnownFlags(roleEnum()))),
			),
		)
		Expect(err).ShouldNot(Succeed())

		res := validation.ErrorMap(err)

		Expect(res).Should(HaveKey("Grant"))
		inner := res.(map[string]interface{})["Grant"]
		Expect(inner).Should(HaveKey("Roles"))
	})

	It("should turn indexed errors into an array", func() {
		values := []flags.Flag{0b001, 0b10000}

		err := ozzo.Validate(values, ozzo.Each(ozzo.By(validation.KnownFlags(roleEnum()))))
		Expect(err).ShouldNot(Succeed())

		res := validation.ErrorMap(err)

		arr, ok := res.([]interface{})
		Expect(ok).Should(Equal(true))
		Expect(arr).Should(HaveLen(2))
		Expect(arr[0]).Should(BeNil())
		Expect(arr[1]).Should(Equal("unknown flag bits: 10000"))
	})

	It("when a numeric key is negative", func() {
		// отрицательный ключ не превращает мап в массив
		levels := map[string]string{"-1": ""}

		err := ozzo.Validate(levels, ozzo.Map(ozzo.Key("-1", ozzo.Required)))
		Expect(err).ShouldNot(Succeed())

		res := validation.ErrorMap(err)

		Expect(res).Should(HaveKeyWithValue("-1", "cannot be blank"))
	})
})
