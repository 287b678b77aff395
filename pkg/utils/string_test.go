package utils

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Truncate", func() {
	It("returns the string unchanged when within the limit", func() {
		Expect(Truncate("short", 10)).To(Equal("short"))
	})

	It("returns the string unchanged when exactly at the limit", func() {
		Expect(Truncate("12345", 5)).To(Equal("12345"))
	})

	It("truncates with ellipsis when over the limit", func() {
		Expect(Truncate("this is a long string", 10)).To(Equal("this is a ..."))
	})

	It("never splits a multi-byte rune", func() {
		// "é" is two bytes; a cut at byte 2 lands inside it.
		Expect(Truncate("aé-rest", 2)).To(Equal("a..."))
	})
})

var _ = Describe("UserAgent", func() {
	It("carries the build version", func() {
		Expect(UserAgent()).To(Equal("vidgen/" + Version))
	})
})
