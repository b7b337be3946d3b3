// Package config loads the YAML configuration surface for the CLI/API/MCP
// entry points: the LLM gateway endpoint, the authoritative-source
// catalogue path, collaborator data directories, and the environment
// flags from spec.md §6.2, read once at pipeline construction.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"briefweaver/internal/models"
)

// Config is the root configuration document, adapted from the teacher's
// config.Config shape but scoped to the trust/curation pipeline's own
// dependencies rather than a Neo4j-backed API server.
type Config struct {
	Server struct {
		Address string `yaml:"address"`
	} `yaml:"server"`

	LLM struct {
		URL     string        `yaml:"url"`
		Model   string        `yaml:"model"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"llm"`

	Fetch struct {
		UserAgent string        `yaml:"user_agent"`
		Timeout   time.Duration `yaml:"timeout"`
	} `yaml:"fetch"`

	SourcesPath string `yaml:"sources_path"`
	DataDir     string `yaml:"data_dir"`
	ReportsDir  string `yaml:"reports_dir"`

	// Articles selects the ArticleSource collaborator backend. "filemem"
	// (default) reads the JSON testdata tree at DataDir; "neo4j" connects
	// to the graph described by Neo4j below (spec.md §6.1).
	Articles struct {
		Backend string `yaml:"backend"`
	} `yaml:"articles"`

	Neo4j struct {
		URI      string `yaml:"uri"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"neo4j"`

	Flags models.PipelineFlags `yaml:"flags"`
}

// Default returns a Config with sensible values for the CLI's
// zero-dependency (filemem-backed) mode, used when no config file is
// supplied.
func Default() *Config {
	cfg := &Config{
		SourcesPath: "config/sources.yaml",
		DataDir:     "internal/collab/filemem/testdata",
		ReportsDir:  "reports",
	}
	cfg.Server.Address = ":8080"
	cfg.LLM.URL = "http://localhost:11434"
	cfg.LLM.Model = "llama3.1"
	cfg.LLM.Timeout = 10 * time.Minute
	cfg.Fetch.UserAgent = "briefweaver/1.0 (+trust-verification)"
	cfg.Fetch.Timeout = 30 * time.Second
	cfg.Flags = models.PipelineFlags{
		EnableReflection:        true,
		EnableTrustVerification: true,
	}
	cfg.Articles.Backend = "filemem"
	return cfg
}

// Load reads a YAML document at path, applying it over Default() so any
// field the document omits keeps its default value.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
