package vidgencmder_test

import (
	"bytes"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	vidgencmder "github.com/papercomputeco/vidgen/cmd/vidgen"
	"github.com/papercomputeco/vidgen/pkg/catalog"
	"github.com/papercomputeco/vidgen/pkg/credentials"
	"github.com/papercomputeco/vidgen/pkg/encoder"
	testutils "github.com/papercomputeco/vidgen/pkg/utils/test"
)

var _ = Describe("NewVidgenCmd", func() {
	It("has the generation, catalog and housekeeping subcommands", func() {
		cmd := vidgencmder.NewVidgenCmd()
		names := make([]string, 0, len(cmd.Commands()))
		for _, sub := range cmd.Commands() {
			names = append(names, sub.Name())
		}
		Expect(names).To(ContainElements("t2v", "i2v", "models", "config", "auth", "version"))
	})

	It("registers the global flags", func() {
		cmd := vidgencmder.NewVidgenCmd()
		Expect(cmd.PersistentFlags().Lookup("debug").Shorthand).To(Equal("d"))
		Expect(cmd.PersistentFlags().Lookup("json-logs")).NotTo(BeNil())
		Expect(cmd.PersistentFlags().Lookup("config-dir")).NotTo(BeNil())
		Expect(cmd.PersistentFlags().Lookup("log-file")).NotTo(BeNil())
	})
})

var _ = Describe("Generation commands", func() {
	var (
		tmpDir    string
		outDir    string
		stdout    bytes.Buffer
		stderr    bytes.Buffer
		server    *testutils.VideoServer
		videoFile = func() []byte {
			entries, err := os.ReadDir(outDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(1))
			b, err := os.ReadFile(filepath.Join(outDir, entries[0].Name()))
			Expect(err).NotTo(HaveOccurred())
			return b
		}
	)

	run := func(args ...string) error {
		stdout.Reset()
		stderr.Reset()

		cmd := vidgencmder.NewVidgenCmd()
		cmd.SetOut(&stdout)
		cmd.SetErr(&stderr)
		cmd.SetArgs(append(args, "--config-dir", filepath.Join(tmpDir, "cfg")))
		return cmd.Execute()
	}

	image := func(name string) string {
		p := filepath.Join(tmpDir, name)
		Expect(os.WriteFile(p, []byte("img:"+name), 0o600)).To(Succeed())
		return p
	}

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		outDir = filepath.Join(tmpDir, "out")
	})

	Describe("t2v", func() {
		It("saves a binary stream", func() {
			server = testutils.NewVideoServer("video/mp4", "MP4-", "DATA")
			DeferCleanup(server.Close)

			Expect(run("t2v", "-p", "sunset over the bay", "--endpoint", server.URL, "-o", outDir)).To(Succeed())

			Expect(videoFile()).To(Equal([]byte("MP4-DATA")))
			Expect(stdout.String()).To(ContainSubstring("Saved"))

			req := server.Requests()[0]
			Expect(req["model"]).To(Equal("veo_3_1_t2v_fast_landscape"))
			Expect(req["stream"]).To(BeTrue())
		})

		It("recovers a payload from server-sent events", func() {
			video := base64.StdEncoding.EncodeToString([]byte("SSE-VIDEO"))
			server = testutils.NewVideoServer("text/event-stream",
				`data: {"choices":[{"delta":{"video":"`+video+`"}}]}`+"\n\n",
				"data: [DONE]\n\n",
			)
			DeferCleanup(server.Close)

			Expect(run("t2v", "-p", "x", "--orientation", "portrait", "--endpoint", server.URL, "-o", outDir)).To(Succeed())

			Expect(videoFile()).To(Equal([]byte("SSE-VIDEO")))
			Expect(server.Requests()[0]["model"]).To(Equal("veo_3_1_t2v_fast_portrait"))
		})

		It("reads the prompt from a .txt file", func() {
			server = testutils.NewVideoServer("video/mp4", "V")
			DeferCleanup(server.Close)

			prompt := filepath.Join(tmpDir, "prompt.txt")
			Expect(os.WriteFile(prompt, []byte("  tide pools at dawn\n"), 0o600)).To(Succeed())

			Expect(run("t2v", "-p", prompt, "--endpoint", server.URL, "-o", outDir)).To(Succeed())

			Expect(server.Requests()[0]).To(HaveKeyWithValue("messages", ContainElement(
				HaveKeyWithValue("content", ContainElement(HaveKeyWithValue("text", "tide pools at dawn"))),
			)))
		})

		It("sends the token from the environment", func() {
			GinkgoT().Setenv("VIDGEN_API_TOKEN", "sk-env")
			server = testutils.NewVideoServer("video/mp4", "V")
			DeferCleanup(server.Close)

			Expect(run("t2v", "-p", "x", "--endpoint", server.URL, "-o", outDir)).To(Succeed())
			Expect(server.Headers()[0].Get("Authorization")).To(Equal("Bearer sk-env"))
		})

		It("sends a token stored for the endpoint host", func() {
			GinkgoT().Setenv("VIDGEN_API_TOKEN", "")
			server = testutils.NewVideoServer("video/mp4", "V")
			DeferCleanup(server.Close)

			mgr, err := credentials.NewManager(filepath.Join(tmpDir, "cfg"))
			Expect(err).NotTo(HaveOccurred())
			host, err := credentials.HostOf(server.URL)
			Expect(err).NotTo(HaveOccurred())
			Expect(mgr.SetToken(host, "sk-stored")).To(Succeed())

			Expect(run("t2v", "-p", "x", "--endpoint", server.URL, "-o", outDir)).To(Succeed())
			Expect(server.Headers()[0].Get("Authorization")).To(Equal("Bearer sk-stored"))

			Expect(run("t2v", "-p", "x", "--endpoint", server.URL, "--token", "sk-flag", "-o", outDir)).To(Succeed())
			Expect(server.Headers()[1].Get("Authorization")).To(Equal("Bearer sk-flag"))
		})

		It("appends JSON logs to --log-file", func() {
			server = testutils.NewVideoServer("video/mp4", "V")
			DeferCleanup(server.Close)

			logPath := filepath.Join(tmpDir, "vidgen.log")
			Expect(run("t2v", "-p", "x", "--endpoint", server.URL, "-o", outDir, "--log-file", logPath)).To(Succeed())

			b, err := os.ReadFile(logPath)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(b)).To(ContainSubstring(`"msg":"generating video"`))
			Expect(stderr.String()).To(ContainSubstring("generating video"))
		})

		It("exits 2 on an API status error", func() {
			server = testutils.NewVideoServer("application/json", `{"error":"quota"}`)
			server.SetStatus(http.StatusTooManyRequests)
			DeferCleanup(server.Close)

			err := run("t2v", "-p", "x", "--endpoint", server.URL, "-o", outDir)
			Expect(err).To(MatchError(ContainSubstring("status 429")))
			Expect(vidgencmder.ExitCode(err)).To(Equal(2))
		})

		It("exits 3 when the server is unreachable", func() {
			dead := httptest.NewServer(http.NotFoundHandler())
			url := dead.URL
			dead.Close()

			err := run("t2v", "-p", "x", "--endpoint", url, "-o", outDir)
			Expect(vidgencmder.ExitCode(err)).To(Equal(3))
		})

		It("exits 4 when the video cannot be saved", func() {
			server = testutils.NewVideoServer("video/mp4", "V")
			DeferCleanup(server.Close)

			blocker := filepath.Join(tmpDir, "blocker")
			Expect(os.WriteFile(blocker, nil, 0o600)).To(Succeed())

			err := run("t2v", "-p", "x", "--endpoint", server.URL, "-o", filepath.Join(blocker, "out"))
			Expect(vidgencmder.ExitCode(err)).To(Equal(4))
		})

		It("rejects unknown models before calling the API", func() {
			server = testutils.NewVideoServer("video/mp4", "V")
			DeferCleanup(server.Close)

			err := run("t2v", "-p", "x", "-m", "sora_9000", "--endpoint", server.URL, "-o", outDir)
			var nf catalog.ModelNotFoundError
			Expect(errors.As(err, &nf)).To(BeTrue())
			Expect(server.Requests()).To(BeEmpty())
		})

		It("requires a prompt", func() {
			Expect(run("t2v")).To(MatchError(ContainSubstring(`"prompt"`)))
		})
	})

	Describe("i2v", func() {
		It("sends first and last frame in order", func() {
			server = testutils.NewVideoServer("video/mp4", "V")
			DeferCleanup(server.Close)

			first, last := image("first.png"), image("last.webp")
			Expect(run("i2v", "-i", first, "-i", last, "-p", "morph", "--endpoint", server.URL, "-o", outDir)).To(Succeed())

			req := server.Requests()[0]
			Expect(req["model"]).To(Equal("veo_3_1_i2v_s_fast_fl"))
			dataURL := func(s string) string {
				return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte(s))
			}
			content := req["messages"].([]any)[0].(map[string]any)["content"].([]any)
			Expect(content).To(HaveLen(3))
			Expect(content[0]).To(HaveKeyWithValue("image_url", HaveKeyWithValue("url", dataURL("img:first.png"))))
			Expect(content[1]).To(HaveKeyWithValue("image_url", HaveKeyWithValue("url", dataURL("img:last.webp"))))
			Expect(content[2]).To(HaveKeyWithValue("text", "morph"))
		})

		It("rejects a missing image with exit code 1", func() {
			server = testutils.NewVideoServer("video/mp4", "V")
			DeferCleanup(server.Close)

			err := run("i2v", "-i", filepath.Join(tmpDir, "missing.png"), "-p", "x", "--endpoint", server.URL, "-o", outDir)
			var ie encoder.InvalidImageError
			Expect(errors.As(err, &ie)).To(BeTrue())
			Expect(vidgencmder.ExitCode(err)).To(Equal(1))
			Expect(server.Requests()).To(BeEmpty())
		})

		It("honours a configured image size limit", func() {
			server = testutils.NewVideoServer("video/mp4", "V")
			DeferCleanup(server.Close)

			err := run("i2v", "-i", image("big.png"), "-p", "x", "--max-image-size", "4B", "--endpoint", server.URL, "-o", outDir)
			Expect(err).To(MatchError(ContainSubstring("file too large")))
		})

		It("requires an image", func() {
			Expect(run("i2v", "-p", "x")).To(MatchError(ContainSubstring(`"image"`)))
		})
	})
})
