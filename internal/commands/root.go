package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/oncorag/gliorag/pkg/config"
	"github.com/oncorag/gliorag/pkg/llm"
	"github.com/oncorag/gliorag/pkg/rag"
	"github.com/oncorag/gliorag/pkg/retriever"
	"github.com/oncorag/gliorag/pkg/store"
)

var (
	cfgFile       string
	currentConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "gliorag",
	Short: "gliorag — retrieval-augmented Q&A over GBM clinical guidelines",
	Long: `gliorag ingests glioblastoma guideline literature from PubMed, publisher
PDFs and a curated guideline dataset, indexes it in a pgvector store, and
answers questions grounded in the retrieved excerpts with [source_i]
citations.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A .env next to the binary is optional.
		_ = godotenv.Load()

		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			return err
		}

		if errs := cfg.Validate(); len(errs) > 0 {
			for _, e := range errs {
				fmt.Fprintf(os.Stderr, "config error: %s\n", e.Error())
			}
			return fmt.Errorf("invalid configuration (%d errors)", len(errs))
		}

		currentConfig = cfg
		return nil
	},
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to config file (default: config.yaml)")
}

func buildLLMClient(cfg *config.Config) (*llm.Client, error) {
	return llm.NewClient(llm.ClientConfig{
		APIKey:     cfg.OpenAI.APIKey,
		BaseURL:    cfg.OpenAI.BaseURL,
		Model:      cfg.OpenAI.Model,
		EmbedModel: cfg.OpenAI.EmbedModel,
	})
}

func buildStore(ctx context.Context, cfg *config.Config) (*store.VectorStore, error) {
	return store.NewWithConfig(ctx, store.VectorStoreConfig{
		ConnString: cfg.Database.URL,
		TableName:  cfg.Database.TableName,
		VectorDim:  cfg.Database.VectorDim,
	})
}

// buildEngine wires embedder, store, retriever and generator into one
// answer engine. The caller owns closing the returned store.
func buildEngine(ctx context.Context, cfg *config.Config) (*rag.Engine, *store.VectorStore, error) {
	client, err := buildLLMClient(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize LLM client: %w", err)
	}

	vs, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize vector store: %w", err)
	}

	engine := rag.NewEngine(retriever.New(client, vs), client, cfg.RAG.TopK)
	return engine, vs, nil
}
