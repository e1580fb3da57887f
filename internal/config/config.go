package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
)

// Asset source kinds.
const (
	SourceNDJSON   = "ndjson"
	SourceMemgraph = "memgraph"
)

type ServerConfig struct {
	Port string `toml:"port"`
	Mode string `toml:"mode"`
}

type SourceConfig struct {
	Kind       string `toml:"kind"`
	AssetsPath string `toml:"assets_path"`
	Limit      int    `toml:"limit"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type SemanticConfig struct {
	VectorsPath string `toml:"vectors_path"`
	MaxVectors  int    `toml:"max_vectors"`
}

type LLMConfig struct {
	Provider       string `toml:"provider"`
	EmbeddingModel string `toml:"embedding_model"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
}

type LogConfig struct {
	Level string `toml:"level"`
	JSON  bool   `toml:"json"`
}

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Source   SourceConfig   `toml:"source"`
	Memgraph MemgraphConfig `toml:"memgraph"`
	Semantic SemanticConfig `toml:"semantic"`
	LLM      LLMConfig      `toml:"llm"`
	Log      LogConfig      `toml:"log"`

	// Collections maps a grouping key (token contract) to a display label.
	Collections map[string]string `toml:"collections"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8080",
			Mode: "release",
		},
		Source: SourceConfig{
			Kind:       SourceNDJSON,
			AssetsPath: "assets.ndjson",
			Limit:      35000,
		},
		Memgraph: MemgraphConfig{
			URI: "bolt://localhost:7687",
		},
		Semantic: SemanticConfig{
			VectorsPath: "vectors.ndjson",
			MaxVectors:  5000,
		},
		Log: LogConfig{
			Level: "info",
			JSON:  true,
		},
	}
}

// Load reads a TOML file over the defaults. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file '%s'", path)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse TOML in '%s'", path)
	}

	return cfg, nil
}

// ApplyEnv overrides fields from environment variables, looked up with
// getenv. Unset or empty variables leave the field unchanged.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}

	str("PORT", &c.Server.Port)
	str("GIN_MODE", &c.Server.Mode)
	str("ASSET_SOURCE", &c.Source.Kind)
	str("ASSETS_PATH", &c.Source.AssetsPath)
	str("VECTORS_PATH", &c.Semantic.VectorsPath)
	str("MEMGRAPH_URI", &c.Memgraph.URI)
	str("MEMGRAPH_USER", &c.Memgraph.User)
	str("MEMGRAPH_PASSWORD", &c.Memgraph.Password)
	str("LLM_PROVIDER", &c.LLM.Provider)
	str("LLM_EMBEDDING_MODEL", &c.LLM.EmbeddingModel)
	str("LLM_API_KEY", &c.LLM.APIKey)
	str("LLM_BASE_URL", &c.LLM.BaseURL)
	str("LOG_LEVEL", &c.Log.Level)

	if v := strings.TrimSpace(getenv("ASSET_LIMIT")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "invalid ASSET_LIMIT %q", v)
		}
		c.Source.Limit = n
	}
	if v := strings.TrimSpace(getenv("LOG_JSON")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrapf(err, "invalid LOG_JSON %q", v)
		}
		c.Log.JSON = b
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Source.Kind {
	case SourceNDJSON:
		if c.Source.AssetsPath == "" {
			return errors.New("source.assets_path is required for the ndjson source")
		}
	case SourceMemgraph:
		if c.Memgraph.URI == "" {
			return errors.New("memgraph.uri is required for the memgraph source")
		}
	default:
		return errors.Newf("unknown source kind %q", c.Source.Kind)
	}
	if c.Source.Limit <= 0 {
		return errors.Newf("source.limit must be positive, got %d", c.Source.Limit)
	}
	return nil
}

// FromEnvironment loads CONFIG_PATH when set, then applies environment
// overrides and validates the result.
func FromEnvironment(getenv func(string) string) (*Config, error) {
	cfg := Default()
	if path := getenv("CONFIG_PATH"); path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}
