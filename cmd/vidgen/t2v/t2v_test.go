package t2vcmder_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	t2vcmder "github.com/papercomputeco/vidgen/cmd/vidgen/t2v"
)

var _ = Describe("NewT2VCmd", func() {
	It("registers generation flags", func() {
		cmd := t2vcmder.NewT2VCmd()
		Expect(cmd.Use).To(Equal("t2v"))
		for _, name := range []string{"prompt", "model", "orientation", "endpoint", "token", "timeout", "output", "catalog"} {
			Expect(cmd.Flags().Lookup(name)).NotTo(BeNil(), name)
		}
		Expect(cmd.Flags().Lookup("image")).To(BeNil())
	})

	It("defaults to landscape", func() {
		cmd := t2vcmder.NewT2VCmd()
		Expect(cmd.Flags().Lookup("orientation").DefValue).To(Equal("landscape"))
	})

	It("rejects positional arguments", func() {
		cmd := t2vcmder.NewT2VCmd()
		cmd.SetArgs([]string{"-p", "x", "stray"})
		cmd.SilenceErrors = true
		cmd.SilenceUsage = true
		Expect(cmd.Execute()).To(MatchError(ContainSubstring("unknown command")))
	})
})
