package auth

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Secret", func() {
	When("the configured token has surrounding whitespace", func() {
		It("trims it before comparing", func() {
			s, err := NewSecret("  sk-shared \n")
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Validate("sk-shared")).To(Succeed())
		})
	})

	When("the token does not match", func() {
		It("returns ErrInvalidToken", func() {
			s, err := NewSecret("sk-shared")
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Validate("sk-other")).To(MatchError(ErrInvalidToken))
		})
	})
})
