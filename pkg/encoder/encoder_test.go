package encoder_test

import (
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/vidgen/pkg/encoder"
	"github.com/papercomputeco/vidgen/pkg/extract"
)

var _ = Describe("Encoder", func() {
	var (
		dir string
		enc *encoder.Encoder
	)

	write := func(name string, b []byte) string {
		p := filepath.Join(dir, name)
		Expect(os.WriteFile(p, b, 0o600)).To(Succeed())
		return p
	}

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		enc = encoder.New(encoder.Options{})
	})

	It("encodes a valid image as standard base64", func() {
		p := write("frame.png", []byte("\x89PNG\r\n\x1a\n"))

		s, err := enc.EncodeFile(p)
		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(Equal("iVBORw0KGgo="))
	})

	It("accepts upper case extensions", func() {
		p := write("FRAME.JPG", []byte("jpeg"))
		_, err := enc.EncodeFile(p)
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects a missing file", func() {
		_, err := enc.EncodeFile(filepath.Join(dir, "nope.png"))

		var ie encoder.InvalidImageError
		Expect(errors.As(err, &ie)).To(BeTrue())
		Expect(ie.Reason).To(Equal("file not found"))
	})

	It("rejects a directory", func() {
		Expect(os.Mkdir(filepath.Join(dir, "frames.png"), 0o755)).To(Succeed())
		_, err := enc.EncodeFile(filepath.Join(dir, "frames.png"))
		Expect(err).To(MatchError(ContainSubstring("is a directory")))
	})

	It("rejects unsupported formats", func() {
		p := write("clip.gif", []byte("GIF89a"))
		_, err := enc.EncodeFile(p)
		Expect(err).To(MatchError(ContainSubstring(`unsupported format ".gif", supported: .jpg, .jpeg, .png, .webp`)))
	})

	It("rejects oversized files with human readable sizes", func() {
		small := encoder.New(encoder.Options{MaxSize: 1024})
		p := write("big.png", make([]byte, 2048))

		_, err := small.EncodeFile(p)
		Expect(err).To(MatchError(ContainSubstring("file too large: 2.0 KiB, maximum 1.0 KiB")))
	})

	It("normalizes configured formats", func() {
		formats := []string{"GIF", " .Bmp"}
		custom := encoder.New(encoder.Options{Formats: formats})
		Expect(formats).To(Equal([]string{"GIF", " .Bmp"}))

		_, err := custom.EncodeFile(write("a.gif", []byte("g")))
		Expect(err).NotTo(HaveOccurred())
		_, err = custom.EncodeFile(write("b.bmp", []byte("b")))
		Expect(err).NotTo(HaveOccurred())
		_, err = custom.EncodeFile(write("c.png", []byte("p")))
		Expect(err).To(HaveOccurred())
	})

	It("encodes several files in order and stops at the first failure", func() {
		a := write("a.png", []byte("first"))
		b := write("b.png", []byte("second"))

		out, err := enc.EncodeFiles([]string{a, b})
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal([]string{encoder.Encode([]byte("first")), encoder.Encode([]byte("second"))}))

		_, err = enc.EncodeFiles([]string{a, filepath.Join(dir, "missing.png")})
		Expect(err).To(HaveOccurred())
	})

	It("round-trips through the inline decoder", func() {
		image := make([]byte, 3000)
		for i := range image {
			image[i] = byte(i % 251)
		}
		s, err := enc.EncodeFile(write("noise.webp", image))
		Expect(err).NotTo(HaveOccurred())

		decoded, ok := extract.DecodeInline(s)
		Expect(ok).To(BeTrue())
		Expect(decoded).To(Equal(image))
	})
})
