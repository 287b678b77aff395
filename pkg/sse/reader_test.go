package sse

import (
	"bytes"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LineSplitter", func() {
	var (
		lines    []string
		splitter *LineSplitter
	)

	collect := func(line []byte) error {
		lines = append(lines, string(line))
		return nil
	}

	BeforeEach(func() {
		lines = nil
	})

	Context("with non-blank acceptance", func() {
		BeforeEach(func() {
			splitter = NewLineSplitter(AcceptNonBlank, collect)
		})

		It("emits complete lines in order", func() {
			_, err := splitter.Write([]byte("first\nsecond\n"))
			Expect(err).NotTo(HaveOccurred())
			Expect(lines).To(Equal([]string{"first", "second"}))
			Expect(splitter.Pending()).To(Equal(0))
		})

		It("carries a fragment across chunk boundaries", func() {
			_, err := splitter.Write([]byte(`{"da`))
			Expect(err).NotTo(HaveOccurred())
			Expect(lines).To(BeEmpty())
			Expect(splitter.Pending()).To(Equal(4))

			_, err = splitter.Write([]byte("ta\":1}\n{\"next\""))
			Expect(err).NotTo(HaveOccurred())
			Expect(lines).To(Equal([]string{`{"data":1}`}))

			_, err = splitter.Write([]byte(":2}\n"))
			Expect(err).NotTo(HaveOccurred())
			Expect(lines).To(Equal([]string{`{"data":1}`, `{"next":2}`}))
		})

		It("trims whitespace and carriage returns", func() {
			_, err := splitter.Write([]byte("  padded \r\n"))
			Expect(err).NotTo(HaveOccurred())
			Expect(lines).To(Equal([]string{"padded"}))
		})

		It("skips blank lines", func() {
			_, err := splitter.Write([]byte("\n\n   \none\n\n"))
			Expect(err).NotTo(HaveOccurred())
			Expect(lines).To(Equal([]string{"one"}))
		})

		It("handles the retained fragment on Flush", func() {
			_, err := splitter.Write([]byte("done\nunterminated"))
			Expect(err).NotTo(HaveOccurred())
			Expect(lines).To(Equal([]string{"done"}))

			Expect(splitter.Flush()).To(Succeed())
			Expect(lines).To(Equal([]string{"done", "unterminated"}))
			Expect(splitter.Pending()).To(Equal(0))
		})

		It("does nothing on Flush with an empty buffer", func() {
			Expect(splitter.Flush()).To(Succeed())
			Expect(lines).To(BeEmpty())
		})

		It("reports the full chunk length as written", func() {
			n, err := splitter.Write([]byte("abc\nde"))
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(6))
		})
	})

	Context("with one long line spread over many chunks", func() {
		BeforeEach(func() {
			splitter = NewLineSplitter(AcceptNonBlank, collect)
		})

		It("resumes the newline search after the retained fragment", func() {
			_, err := splitter.Write([]byte("abc"))
			Expect(err).NotTo(HaveOccurred())
			Expect(splitter.scanned).To(Equal(3))

			_, err = splitter.Write([]byte("de"))
			Expect(err).NotTo(HaveOccurred())
			Expect(splitter.scanned).To(Equal(5))

			_, err = splitter.Write([]byte("f\nxy"))
			Expect(err).NotTo(HaveOccurred())
			Expect(lines).To(Equal([]string{"abcdef"}))
			Expect(splitter.Pending()).To(Equal(2))
			Expect(splitter.scanned).To(Equal(2))
		})

		It("splits a 16 MiB line fed in 1 KiB chunks in linear time", func() {
			const size = 16 << 20
			chunk := bytes.Repeat([]byte("A"), 1<<10)

			start := time.Now()
			for written := 0; written < size; written += len(chunk) {
				_, err := splitter.Write(chunk)
				Expect(err).NotTo(HaveOccurred())
			}
			_, err := splitter.Write([]byte("\n"))
			Expect(err).NotTo(HaveOccurred())

			Expect(time.Since(start)).To(BeNumerically("<", 3*time.Second))
			Expect(lines).To(HaveLen(1))
			Expect(lines[0]).To(HaveLen(size))
			Expect(splitter.Pending()).To(Equal(0))
		})
	})

	Context("with data-line acceptance", func() {
		BeforeEach(func() {
			splitter = NewLineSplitter(AcceptData, collect)
		})

		It("ignores comments, event lines and keep-alives", func() {
			input := ": keep-alive\nevent: progress\ndata: {\"a\":1}\n\nid: 7\ndata:[DONE]\n"
			_, err := splitter.Write([]byte(input))
			Expect(err).NotTo(HaveOccurred())
			Expect(lines).To(Equal([]string{`data: {"a":1}`, "data:[DONE]"}))
		})
	})

	Context("when the handler fails", func() {
		It("stops and keeps the unprocessed remainder", func() {
			boom := errors.New("boom")
			splitter = NewLineSplitter(AcceptNonBlank, func(line []byte) error {
				lines = append(lines, string(line))
				if string(line) == "bad" {
					return boom
				}
				return nil
			})

			_, err := splitter.Write([]byte("ok\nbad\nlater\n"))
			Expect(err).To(MatchError(boom))
			Expect(lines).To(Equal([]string{"ok", "bad"}))
			Expect(splitter.Pending()).To(Equal(len("later\n")))
		})
	})
})

var _ = Describe("ParseLine", func() {
	It("returns the trimmed data remainder", func() {
		ev, ok := ParseLine([]byte(`data:   {"x":1}  `))
		Expect(ok).To(BeTrue())
		Expect(ev.Data).To(Equal(`{"x":1}`))
		Expect(ev.Done).To(BeFalse())
	})

	It("handles data with no space after the colon", func() {
		ev, ok := ParseLine([]byte("data:no-space"))
		Expect(ok).To(BeTrue())
		Expect(ev.Data).To(Equal("no-space"))
	})

	It("recognizes the done sentinel", func() {
		ev, ok := ParseLine([]byte("data: [DONE]"))
		Expect(ok).To(BeTrue())
		Expect(ev.Done).To(BeTrue())
	})

	It("rejects non-data lines", func() {
		_, ok := ParseLine([]byte("event: message"))
		Expect(ok).To(BeFalse())

		_, ok = ParseLine([]byte(": comment"))
		Expect(ok).To(BeFalse())
	})
})
