package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"commitlens/internal/apperr"
)

const (
	defaultGitHubAPIURL = "https://api.github.com"
	defaultOpenAIAPIURL = "https://api.openai.com/v1/chat/completions"
	defaultModelEngine  = "gpt-4o-mini"
)

// Config holds the application configuration. It is built once at startup
// and read-only afterwards.
type Config struct {
	Server      ServerConfig
	Log         LogConfig
	GitHub      GitHubConfig
	Model       ModelConfig
	Transcripts TranscriptConfig

	// Repositories is the catalog loaded from the YAML file.
	Repositories []Repository

	// Warnings collects per-entry catalog problems that were skipped
	// rather than treated as fatal. The caller decides how to report them.
	Warnings []string
}

// ServerConfig holds HTTP facade settings
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "console"
}

// GitHubConfig holds the GitHub API credential and endpoint
type GitHubConfig struct {
	Token  string
	APIURL string
}

// ModelConfig holds the model-provider credential and endpoint
type ModelConfig struct {
	APIKey string
	APIURL string
	Engine string
}

// TranscriptConfig holds transcript persistence settings
type TranscriptConfig struct {
	Dir string
}

// Repository is one entry of the repository catalog
type Repository struct {
	Name   string `yaml:"name"`
	Owner  string `yaml:"owner"`
	Repo   string `yaml:"repo"`
	Branch string `yaml:"branch"`
}

// FullName returns the owner/repo form used in GitHub API paths
func (r Repository) FullName() string {
	return r.Owner + "/" + r.Repo
}

// catalogFile is the on-disk shape of the repository catalog
type catalogFile struct {
	ModelEngine  string       `yaml:"model_engine"`
	Repositories []Repository `yaml:"repositories"`
}

// Load builds the configuration from environment variables and the catalog
// file at catalogPath. Missing credentials are fatal; a malformed catalog
// entry is skipped and recorded in Warnings.
func Load(catalogPath string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load(".env")

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", ""),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
		GitHub: GitHubConfig{
			Token:  os.Getenv("GITHUB_TOKEN"),
			APIURL: getEnv("GITHUB_API_URL", defaultGitHubAPIURL),
		},
		Model: ModelConfig{
			APIKey: os.Getenv("OPENAI_API_KEY"),
			APIURL: getEnv("OPENAI_API_URL", defaultOpenAIAPIURL),
			Engine: getEnv("MODEL_ENGINE", ""),
		},
		Transcripts: TranscriptConfig{
			Dir: getEnv("TRANSCRIPT_DIR", "transcripts"),
		},
	}

	if err := cfg.loadCatalog(catalogPath); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadCatalog reads the repository catalog. Entries missing a name, owner or
// repo are skipped with a warning; branch defaults to "main".
func (c *Config) loadCatalog(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return apperr.Wrap(err, apperr.KindConfiguration,
			fmt.Sprintf("cannot read repository catalog %q", path))
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return apperr.Wrap(err, apperr.KindConfiguration,
			fmt.Sprintf("cannot parse repository catalog %q", path))
	}

	if c.Model.Engine == "" {
		c.Model.Engine = file.ModelEngine
	}
	if c.Model.Engine == "" {
		c.Model.Engine = defaultModelEngine
	}

	seen := make(map[string]bool)
	for i, repo := range file.Repositories {
		switch {
		case repo.Name == "":
			c.Warnings = append(c.Warnings, fmt.Sprintf("catalog entry %d has no name, skipped", i+1))
			continue
		case repo.Owner == "" || repo.Repo == "":
			c.Warnings = append(c.Warnings, fmt.Sprintf("repository %q is missing owner or repo, skipped", repo.Name))
			continue
		case seen[repo.Name]:
			c.Warnings = append(c.Warnings, fmt.Sprintf("repository %q is defined twice, later entry skipped", repo.Name))
			continue
		}
		if repo.Branch == "" {
			repo.Branch = "main"
		}
		seen[repo.Name] = true
		c.Repositories = append(c.Repositories, repo)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.GitHub.Token == "" {
		return apperr.Configuration("GITHUB_TOKEN environment variable is not set")
	}
	if c.Model.APIKey == "" {
		return apperr.Configuration("OPENAI_API_KEY environment variable is not set")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return apperr.Newf(apperr.KindConfiguration, "invalid server port: %d", c.Server.Port)
	}
	if len(c.Repositories) == 0 {
		return apperr.Configuration("repository catalog has no usable entries")
	}
	return nil
}

// FindRepository resolves a catalog entry by name
func (c *Config) FindRepository(name string) (Repository, bool) {
	for _, repo := range c.Repositories {
		if repo.Name == name {
			return repo, true
		}
	}
	return Repository{}, false
}

// RepositoryNames returns the catalog names in catalog order
func (c *Config) RepositoryNames() []string {
	names := make([]string, len(c.Repositories))
	for i, repo := range c.Repositories {
		names[i] = repo.Name
	}
	return names
}

// Address returns the server address in the format host:port
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Helper functions to get environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
