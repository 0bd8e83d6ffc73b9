package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/core/domain"
)

// Defaults applied wherever the config file is silent. The embedding
// and judge defaults match the local Ollama model names the project is
// documented against.
const (
	DefaultBaseURL        = "http://localhost:11434"
	DefaultEmbeddingModel = "nomic-embed-text"
	DefaultJudgeModel     = "llama3"
	DefaultVisionModel    = "llava"

	DefaultDimensions  = 768
	DefaultChunkSize   = 500
	DefaultOverlap     = 50
	DefaultTopK        = 3
	DefaultConcurrency = 4

	DefaultEmbedTimeoutSecs = 30
	DefaultJudgeTimeoutSecs = 120

	configFileName = "config.toml"
	indexFileName  = "policy_index.db"
)

// Config is the full on-disk configuration.
type Config struct {
	Embedding EmbeddingConfig `toml:"embedding"`
	Judge     ModelConfig     `toml:"judge"`
	Vision    ModelConfig     `toml:"vision"`
	Index     IndexConfig     `toml:"index"`
	Chunking  ChunkingConfig  `toml:"chunking"`
	Retrieval RetrievalConfig `toml:"retrieval"`
	Audit     AuditConfig     `toml:"audit"`
}

// EmbeddingConfig configures the embedding service.
type EmbeddingConfig struct {
	Model       string `toml:"model"`
	BaseURL     string `toml:"base_url"`
	Dimensions  int    `toml:"dimensions"`
	TimeoutSecs int    `toml:"timeout_secs"`
}

// ModelConfig configures a chat-style model service (judge or vision).
type ModelConfig struct {
	Model       string `toml:"model"`
	BaseURL     string `toml:"base_url"`
	TimeoutSecs int    `toml:"timeout_secs"`
}

// IndexConfig configures the persisted vector index location.
type IndexConfig struct {
	Path string `toml:"path"`
}

// ChunkingConfig configures policy text splitting.
type ChunkingConfig struct {
	ChunkSize int `toml:"chunk_size"`
	Overlap   int `toml:"overlap"`
}

// RetrievalConfig configures similarity retrieval.
type RetrievalConfig struct {
	TopK int `toml:"top_k"`
}

// AuditConfig configures audit execution.
type AuditConfig struct {
	Concurrency int `toml:"concurrency"`
}

// ConfigStore loads and saves the TOML configuration file.
type ConfigStore struct {
	configDir string
	filePath  string
}

// NewConfigStore creates a config store rooted at configDir.
// If configDir is empty, defaults to ~/.policyaudit.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".policyaudit")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	return &ConfigStore{
		configDir: configDir,
		filePath:  filepath.Join(configDir, configFileName),
	}, nil
}

// Load reads the configuration file and fills in defaults for any
// field the file leaves unset. A missing file yields the full default
// configuration.
func (s *ConfigStore) Load() (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(s.filePath)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", s.filePath, err)
		}
	}

	s.applyDefaults(cfg)

	// Defaults only stand in for unset fields; values the file sets
	// explicitly must be usable.
	if err := cfg.ChunkingSettings().Validate(); err != nil {
		return nil, fmt.Errorf("%s: chunk_size=%d overlap=%d: %w",
			s.filePath, cfg.Chunking.ChunkSize, cfg.Chunking.Overlap, err)
	}

	return cfg, nil
}

// Save persists the configuration to disk with restricted permissions.
func (s *ConfigStore) Save(cfg *Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0600)
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

func (s *ConfigStore) applyDefaults(cfg *Config) {
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = DefaultEmbeddingModel
	}
	if cfg.Embedding.BaseURL == "" {
		cfg.Embedding.BaseURL = DefaultBaseURL
	}
	if cfg.Embedding.Dimensions <= 0 {
		cfg.Embedding.Dimensions = DefaultDimensions
	}
	if cfg.Embedding.TimeoutSecs <= 0 {
		cfg.Embedding.TimeoutSecs = DefaultEmbedTimeoutSecs
	}

	if cfg.Judge.Model == "" {
		cfg.Judge.Model = DefaultJudgeModel
	}
	if cfg.Judge.BaseURL == "" {
		cfg.Judge.BaseURL = DefaultBaseURL
	}
	if cfg.Judge.TimeoutSecs <= 0 {
		cfg.Judge.TimeoutSecs = DefaultJudgeTimeoutSecs
	}

	if cfg.Vision.Model == "" {
		cfg.Vision.Model = DefaultVisionModel
	}
	if cfg.Vision.BaseURL == "" {
		cfg.Vision.BaseURL = DefaultBaseURL
	}
	if cfg.Vision.TimeoutSecs <= 0 {
		cfg.Vision.TimeoutSecs = DefaultJudgeTimeoutSecs
	}

	if cfg.Index.Path == "" {
		cfg.Index.Path = filepath.Join(s.configDir, indexFileName)
	}

	// Zero means unset for the chunking pair; negative values were set
	// deliberately and are left for validation to reject.
	if cfg.Chunking.ChunkSize == 0 {
		cfg.Chunking.ChunkSize = DefaultChunkSize
	}
	if cfg.Chunking.Overlap == 0 {
		cfg.Chunking.Overlap = DefaultOverlap
	}

	if cfg.Retrieval.TopK <= 0 {
		cfg.Retrieval.TopK = DefaultTopK
	}
	if cfg.Audit.Concurrency <= 0 {
		cfg.Audit.Concurrency = DefaultConcurrency
	}
}

// EmbeddingSettings converts the file config to domain settings.
func (c *Config) EmbeddingSettings() domain.EmbeddingSettings {
	return domain.EmbeddingSettings{
		Model:       c.Embedding.Model,
		BaseURL:     c.Embedding.BaseURL,
		Dimensions:  c.Embedding.Dimensions,
		TimeoutSecs: c.Embedding.TimeoutSecs,
	}
}

// JudgeSettings converts the file config to domain settings.
func (c *Config) JudgeSettings() domain.JudgeSettings {
	return domain.JudgeSettings{
		Model:       c.Judge.Model,
		BaseURL:     c.Judge.BaseURL,
		TimeoutSecs: c.Judge.TimeoutSecs,
	}
}

// VisionSettings converts the file config to domain settings.
func (c *Config) VisionSettings() domain.VisionSettings {
	return domain.VisionSettings{
		Model:       c.Vision.Model,
		BaseURL:     c.Vision.BaseURL,
		TimeoutSecs: c.Vision.TimeoutSecs,
	}
}

// ChunkingSettings converts the file config to domain settings.
func (c *Config) ChunkingSettings() domain.ChunkingSettings {
	return domain.ChunkingSettings{
		ChunkSize: c.Chunking.ChunkSize,
		Overlap:   c.Chunking.Overlap,
	}
}

// RetrievalSettings converts the file config to domain settings.
func (c *Config) RetrievalSettings() domain.RetrievalSettings {
	return domain.RetrievalSettings{TopK: c.Retrieval.TopK}
}

// AuditSettings converts the file config to domain settings.
func (c *Config) AuditSettings() domain.AuditSettings {
	return domain.AuditSettings{Concurrency: c.Audit.Concurrency}
}
