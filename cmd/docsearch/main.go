package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"docsearch/internal/config"
	"docsearch/internal/embedding"
	"docsearch/internal/embedding/hashing"
	"docsearch/internal/embedding/openai"
	"docsearch/internal/llm"
	"docsearch/internal/loader"
	"docsearch/internal/service"
	"docsearch/internal/session"
	"docsearch/internal/splitter"
	"docsearch/internal/summarizer"
	"docsearch/internal/tui"
	"docsearch/internal/vectorstore"
	"docsearch/internal/vectorstore/disk"
	"docsearch/internal/vectorstore/qdrant"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/docsearch/config.yaml if not provided)")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Assemble components
	var emb embedding.Embedder
	switch cfg.Embedder.Type {
	case "openai", "":
		if cfg.Embedder.OpenAI == nil {
			log.Fatalf("openai embedder config missing")
		}
		client, err := openai.NewClient(openai.Config{
			BaseURL:   cfg.Embedder.OpenAI.BaseURL,
			APIKeyEnv: cfg.Embedder.OpenAI.APIKeyEnv,
			Model:     cfg.Embedder.OpenAI.Model,
			Timeout:   time.Duration(cfg.Embedder.OpenAI.TimeoutSecs) * time.Second,
		})
		if err != nil {
			log.Fatalf("openai embedder init failed: %v", err)
		}
		emb = client
	case "hashing":
		dim := 0
		if cfg.Embedder.Hashing != nil {
			dim = cfg.Embedder.Hashing.Dimension
		}
		emb = hashing.NewEmbedder(dim)
	default:
		log.Fatalf("unknown embedder: %s", cfg.Embedder.Type)
	}

	var st vectorstore.Storage
	switch cfg.VectorStore.Type {
	case "disk", "":
		if cfg.VectorStore.Disk == nil {
			log.Fatalf("disk store config missing")
		}
		st = disk.NewStore(cfg.VectorStore.Disk.Dir)
	case "qdrant":
		if cfg.VectorStore.Qdrant == nil {
			log.Fatalf("qdrant config missing")
		}
		st = qdrant.NewStorage(qdrant.Config{
			URL:        cfg.VectorStore.Qdrant.URL,
			APIKey:     cfg.VectorStore.Qdrant.APIKey,
			Collection: cfg.VectorStore.Qdrant.Collection,
			Timeout:    time.Duration(cfg.VectorStore.Qdrant.TimeoutSecs) * time.Second,
		})
	default:
		log.Fatalf("unknown vector store: %s", cfg.VectorStore.Type)
	}

	llmClient, err := llm.NewOpenAI(llm.OpenAIConfig{
		BaseURL:     cfg.LLM.BaseURL,
		APIKeyEnv:   cfg.LLM.APIKeyEnv,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     time.Duration(cfg.LLM.TimeoutSecs) * time.Second,
	})
	if err != nil {
		log.Fatalf("llm client init failed: %v", err)
	}

	sp := splitter.NewCharacterSplitter(cfg.Splitter.ChunkSize, cfg.Splitter.ChunkOverlap, cfg.Splitter.Separator)
	svc := service.New(loader.NewDirLoader(), sp, emb, st, llmClient,
		summarizer.NewFrequencySummarizer(), cfg.Loader.DataDir, cfg.Retriever.TopK, cfg.Summarizer.MaxSentences)

	summary, built, err := svc.OpenOrBuild()
	if err != nil {
		log.Fatalf("index startup failed: %v", err)
	}
	status := "Opened existing index. Type a question."
	if built {
		status = fmt.Sprintf("Indexed documents from %s.", cfg.Loader.DataDir)
		if summary != "" {
			status += " " + summary
		}
	}

	sess := session.New(svc, session.ModeDocumentSearch)
	m := tui.New(sess, status)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}
