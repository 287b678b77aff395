package stream_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/vidgen/pkg/stream"
)

var _ = Describe("AutoParser", func() {
	var (
		ctx    context.Context
		parser *stream.AutoParser
	)

	BeforeEach(func() {
		ctx = context.Background()
		parser = stream.NewAutoParser(options())
	})

	It("treats an MP4 signature as binary even when later chunks look like JSON", func() {
		head := []byte("\x00\x00\x00\x18ftypmp42\x00\x00\x00\x00")
		later := []byte(`{"video":"` + b64("decoy") + `"}` + "\n")
		sse := []byte(`data: {"video":"` + b64("decoy") + `"}` + "\n")

		out, err := parser.Parse(ctx, rawChunks(head, later, sse))
		Expect(err).NotTo(HaveOccurred())

		want := append(append(append([]byte{}, head...), later...), sse...)
		Expect(out).To(Equal(want))
	})

	DescribeTable("recognizes container signatures",
		func(head []byte) {
			tail := []byte("rest of the file")
			out, err := parser.Parse(ctx, rawChunks(head, tail))
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal(append(append([]byte{}, head...), tail...)))
		},
		Entry("mp4 isom brand", []byte("\x00\x00\x00\x1cftypisom")),
		Entry("mp4 other box size", []byte("\x00\x00\x00\x20ftypmp41")),
		Entry("riff", []byte("RIFF\x24\x00\x00\x00AVI ")),
		Entry("matroska", []byte{0x1a, 0x45, 0xdf, 0xa3, 0x9f, 0x42, 0x86}),
	)

	It("detects SSE from the first chunk and keeps that chunk", func() {
		src := chunks(
			`data: {"video":"`+b64("first")+`"}`+"\n"+`data: {"vid`,
			`eo":"`+b64("-second")+`"}`+"\n",
		)

		out, err := parser.Parse(ctx, src)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal([]byte("first-second")))
	})

	It("detects NDJSON from the first chunk", func() {
		src := chunks(`{"data":"`+b64("nd")+`"}`+"\n", `{"data":"`+b64("json")+`"}`)

		out, err := parser.Parse(ctx, src)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal([]byte("ndjson")))
	})

	It("falls back to the raw bytes when a text strategy finds nothing", func() {
		src := chunks(`{"status":"queued"}`+"\n", `{"status":"done"}`+"\n")

		out, err := parser.Parse(ctx, src)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal([]byte(`{"status":"queued"}` + "\n" + `{"status":"done"}` + "\n")))
	})

	It("treats undecodable bytes as binary", func() {
		head := []byte{0xff, 0xfe, 0x00, 0x7b}
		out, err := parser.Parse(ctx, rawChunks(head, []byte("more")))
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal([]byte("\xff\xfe\x00\x7bmore")))
	})

	It("does not mistake a rune cut at the chunk boundary for binary", func() {
		// "é" is 0xc3 0xa9; the first chunk ends between the two bytes.
		src := rawChunks(
			[]byte(`{"note":"caf`+"\xc3"),
			[]byte("\xa9"+`","video":"`+b64("ok")+`"}`+"\n"),
		)

		out, err := parser.Parse(ctx, src)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal([]byte("ok")))
	})

	It("treats unrecognized text as binary", func() {
		out, err := parser.Parse(ctx, chunks("plain ", "text"))
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal([]byte("plain text")))
	})

	It("fails on an empty body", func() {
		_, err := parser.Parse(ctx, chunks())

		var fe *stream.FormatError
		Expect(errors.As(err, &fe)).To(BeTrue())
		Expect(fe.Format).To(Equal(stream.Unknown))
		Expect(err).To(MatchError(stream.ErrEmptyResponse))
	})

	It("skips empty leading chunks", func() {
		out, err := parser.Parse(ctx, chunks("", "RIFFdata"))
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal([]byte("RIFFdata")))
	})

	It("surfaces read errors from a text strategy", func() {
		src := chunks(`{"video":"` + b64("x") + `"}` + "\n")
		src.err = errors.New("connection reset")

		_, err := parser.Parse(ctx, src)
		Expect(err).To(MatchError("connection reset"))
	})
})
