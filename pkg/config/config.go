package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	OpenAI struct {
		APIKey     string `yaml:"api_key"`
		BaseURL    string `yaml:"base_url"`
		Model      string `yaml:"model"`
		EmbedModel string `yaml:"embed_model"`
	} `yaml:"openai"`

	PubMed struct {
		Email  string `yaml:"email"`
		APIKey string `yaml:"api_key"`
	} `yaml:"pubmed"`

	Database struct {
		URL       string `yaml:"url"`
		TableName string `yaml:"table_name"`
		VectorDim int    `yaml:"vector_dim"`
		BatchSize int    `yaml:"batch_size"`
	} `yaml:"database"`

	RAG struct {
		ChunkSize    int `yaml:"chunk_size"`
		ChunkOverlap int `yaml:"chunk_overlap"`
		TopK         int `yaml:"top_k"`
	} `yaml:"rag"`

	Paths struct {
		DataDir        string `yaml:"data_dir"`
		PubMedJSONL    string `yaml:"pubmed_jsonl"`
		GuidelineJSONL string `yaml:"guidelines_jsonl"`
		DatasetJSONL   string `yaml:"dataset_jsonl"`
		PDFDir         string `yaml:"pdf_dir"`
		GuidelineDir   string `yaml:"guideline_dir"`
	} `yaml:"paths"`

	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
}

func LoadConfig(path string) (*Config, error) {
	// If no path provided, try default locations
	if path == "" {
		locations := []string{
			"config.yaml",
			"config.yml",
			filepath.Join(os.Getenv("HOME"), ".config/gliorag/config.yaml"),
			"/etc/gliorag/config.yaml",
		}

		for _, loc := range locations {
			if _, err := os.Stat(loc); err == nil {
				path = loc
				break
			}
		}
	}

	if path == "" {
		return getDefaultConfig()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %v", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %v", err)
	}

	mergeWithEnv(&config)
	applyDefaults(&config)

	return &config, nil
}

func getDefaultConfig() (*Config, error) {
	config := &Config{}
	mergeWithEnv(config)
	applyDefaults(config)
	return config, nil
}

func applyDefaults(config *Config) {
	if config.OpenAI.Model == "" {
		config.OpenAI.Model = "gpt-4o"
	}
	if config.OpenAI.EmbedModel == "" {
		config.OpenAI.EmbedModel = "text-embedding-3-large"
	}

	if config.Database.TableName == "" {
		config.Database.TableName = "gbm_rag"
	}
	if config.Database.VectorDim == 0 {
		config.Database.VectorDim = 3072
	}
	if config.Database.BatchSize == 0 {
		config.Database.BatchSize = 128
	}

	if config.RAG.ChunkSize == 0 {
		config.RAG.ChunkSize = 1200
	}
	if config.RAG.ChunkOverlap == 0 {
		config.RAG.ChunkOverlap = 200
	}
	if config.RAG.TopK == 0 {
		config.RAG.TopK = 8
	}

	if config.Paths.DataDir == "" {
		config.Paths.DataDir = "data"
	}
	if config.Paths.PubMedJSONL == "" {
		config.Paths.PubMedJSONL = filepath.Join(config.Paths.DataDir, "raw", "pubmed_gbm.jsonl")
	}
	if config.Paths.GuidelineJSONL == "" {
		config.Paths.GuidelineJSONL = filepath.Join(config.Paths.DataDir, "raw", "guidelines_text.jsonl")
	}
	if config.Paths.DatasetJSONL == "" {
		config.Paths.DatasetJSONL = filepath.Join(config.Paths.DataDir, "open_guidelines.jsonl")
	}
	if config.Paths.PDFDir == "" {
		config.Paths.PDFDir = filepath.Join(config.Paths.DataDir, "raw", "article_pdfs")
	}
	if config.Paths.GuidelineDir == "" {
		config.Paths.GuidelineDir = filepath.Join(config.Paths.DataDir, "raw", "guidelines")
	}

	if config.Server.Addr == "" {
		config.Server.Addr = ":8385"
	}
}

func mergeWithEnv(config *Config) {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		config.OpenAI.APIKey = key
	}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		config.OpenAI.BaseURL = baseURL
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		config.Database.URL = dbURL
	}
	if email := os.Getenv("PUBMED_EMAIL"); email != "" {
		config.PubMed.Email = email
	}
	if key := os.Getenv("PUBMED_API_KEY"); key != "" {
		config.PubMed.APIKey = key
	}
}
