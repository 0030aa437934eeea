package config

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Defaults", func() {
	It("listens on port 5000 on every interface", func() {
		cfg := Defaults()
		Expect(cfg.Server.Port).To(Equal(5000))
		Expect(cfg.Server.Addr()).To(Equal(":5000"))
	})

	It("guards writes with x-auth-token", func() {
		cfg := Defaults()
		Expect(cfg.Auth.Header).To(Equal("x-auth-token"))
		Expect(cfg.Auth.Token).To(Equal("12345"))
	})
})

var _ = Describe("Load", func() {
	When("loading from a valid file", func() {
		It("overrides defaults with file values", func() {
			content := `
server:
  port: 9090
  read_timeout: 10s
auth:
  token: "sk-file"
store:
  id_strategy: "sequence"
log:
  level: "debug"
  format: "text"
`
			path := filepath.Join(GinkgoT().TempDir(), "config.yaml")
			Expect(os.WriteFile(path, []byte(content), 0644)).NotTo(HaveOccurred())

			cfg, err := Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Server.Port).To(Equal(9090))
			Expect(cfg.Server.ReadTimeout).To(Equal(10 * time.Second))
			Expect(cfg.Auth.Token).To(Equal("sk-file"))
			Expect(cfg.Auth.Header).To(Equal("x-auth-token"))
			Expect(cfg.Store.IDStrategy).To(Equal("sequence"))
			Expect(cfg.Log.Format).To(Equal("text"))
		})
	})

	When("the file is invalid", func() {
		It("reports every problem at once", func() {
			content := `
server:
  port: 0
log:
  level: "loud"
`
			path := filepath.Join(GinkgoT().TempDir(), "config.yaml")
			Expect(os.WriteFile(path, []byte(content), 0644)).NotTo(HaveOccurred())

			_, err := Load(path)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("server.port"))
			Expect(err.Error()).To(ContainSubstring("log.level"))
		})
	})

	When("PORT is set", func() {
		It("uses it as the listen port", func() {
			os.Setenv("PORT", "7000")
			defer os.Unsetenv("PORT")

			cfg, err := Load("")
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Server.Port).To(Equal(7000))
		})

		It("ignores a value that is not a number", func() {
			os.Setenv("PORT", "http")
			defer os.Unsetenv("PORT")

			cfg, err := Load("")
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Server.Port).To(Equal(5000))
		})
	})
})

var _ = Describe("Validation", func() {
	When("config is valid", func() {
		It("returns no error", func() {
			Expect(validate(Defaults())).NotTo(HaveOccurred())
		})
	})

	When("the id strategy is unknown", func() {
		It("returns an error", func() {
			cfg := Defaults()
			cfg.Store.IDStrategy = "random"
			Expect(validate(cfg)).To(HaveOccurred())
		})
	})

	When("the token is blank", func() {
		It("returns an error", func() {
			cfg := Defaults()
			cfg.Auth.Token = ""
			Expect(validate(cfg)).To(HaveOccurred())
		})
	})

	When("OTel is enabled but endpoint is empty", func() {
		It("returns an error", func() {
			cfg := Defaults()
			cfg.Observability.OTelEnabled = true
			cfg.Observability.OTelEndpoint = ""
			Expect(validate(cfg)).To(HaveOccurred())
		})
	})
})
