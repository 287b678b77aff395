package configcmder_test

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/charmbracelet/x/ansi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	configcmder "github.com/papercomputeco/vidgen/cmd/vidgen/config"
)

var _ = Describe("NewConfigCmd", func() {
	It("creates a command with the correct use string", func() {
		cmd := configcmder.NewConfigCmd()
		Expect(cmd.Use).To(Equal("config"))
	})

	It("has set, get, and list subcommands", func() {
		cmd := configcmder.NewConfigCmd()
		cmds := cmd.Commands()
		subcommands := make([]string, 0, len(cmds))
		for _, sub := range cmds {
			subcommands = append(subcommands, sub.Name())
		}
		Expect(subcommands).To(ContainElements("set", "get", "list"))
	})
})

var _ = Describe("Config command execution", func() {
	var (
		tmpDir  string
		origDir string
		out     bytes.Buffer
	)

	run := func(args ...string) error {
		out.Reset()
		cmd := configcmder.NewConfigCmd()
		cmd.SetOut(&out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(args)
		return cmd.Execute()
	}

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "vidgen-config-test-*")
		Expect(err).NotTo(HaveOccurred())

		origDir, err = os.Getwd()
		Expect(err).NotTo(HaveOccurred())

		// Create a local .vidgen dir so the manager picks it up
		err = os.MkdirAll(filepath.Join(tmpDir, ".vidgen"), 0o755)
		Expect(err).NotTo(HaveOccurred())

		err = os.Chdir(tmpDir)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		err := os.Chdir(origDir)
		Expect(err).NotTo(HaveOccurred())
		os.RemoveAll(tmpDir)
	})

	Describe("set subcommand", func() {
		It("sets a config value successfully", func() {
			Expect(run("set", "api.endpoint", "http://localhost:9000/v1")).To(Succeed())

			_, err := os.Stat(filepath.Join(tmpDir, ".vidgen", "config.toml"))
			Expect(err).NotTo(HaveOccurred())
			Expect(ansi.Strip(out.String())).To(ContainSubstring("Set api.endpoint = http://localhost:9000/v1"))
		})

		It("masks the token in its output", func() {
			Expect(run("set", "api.token", "sk-verysecret")).To(Succeed())
			Expect(out.String()).NotTo(ContainSubstring("verysecret"))
		})

		It("rejects unknown keys", func() {
			Expect(run("set", "invalid_key", "value")).To(MatchError(ContainSubstring("Valid keys")))
		})

		It("requires exactly two arguments", func() {
			Expect(run("set", "api.endpoint")).To(HaveOccurred())
			Expect(run("set")).To(HaveOccurred())
		})

		It("rejects invalid values", func() {
			Expect(run("set", "api.timeout", "whenever")).To(HaveOccurred())
			Expect(run("set", "images.max_size", "big")).To(HaveOccurred())
		})
	})

	Describe("get subcommand", func() {
		It("gets a previously set value", func() {
			Expect(run("set", "output.dir", "/videos")).To(Succeed())

			Expect(run("get", "output.dir")).To(Succeed())
			Expect(ansi.Strip(out.String())).To(ContainSubstring("output.dir  /videos"))
		})

		It("shows unset keys", func() {
			Expect(run("get", "api.token")).To(Succeed())
			Expect(out.String()).To(ContainSubstring("<not set>"))
		})

		It("rejects unknown keys", func() {
			Expect(run("get", "invalid_key")).To(HaveOccurred())
		})

		It("requires exactly one argument", func() {
			Expect(run("get")).To(HaveOccurred())
		})
	})

	Describe("list subcommand", func() {
		It("lists defaults when no config exists", func() {
			Expect(run("list")).To(Succeed())

			text := ansi.Strip(out.String())
			Expect(text).To(ContainSubstring(`extract.container_fields = "delta,message"`))
			Expect(text).To(MatchRegexp(`api\.token\s+= <not set>`))
		})

		It("lists set values", func() {
			Expect(run("set", "extract.data_fields", "clip,blob")).To(Succeed())

			Expect(run("list")).To(Succeed())
			Expect(out.String()).To(ContainSubstring(`"clip,blob"`))
		})

		It("rejects arguments", func() {
			Expect(run("list", "extra")).To(HaveOccurred())
		})
	})
})
