package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"cert-study/internal/cache"
	"cert-study/internal/config"
	"cert-study/internal/database"
	"cert-study/internal/domain"
	"cert-study/internal/logger"
	"cert-study/internal/pipeline"
	"cert-study/internal/repository"
	"cert-study/internal/service"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	flags := pflag.NewFlagSet("ingest", pflag.ExitOnError)
	out := flags.StringP("out", "o", "", "JSON artifact path (default: <ingest.output_dir>/<pdf name>.json)")
	persist := flags.Bool("persist", false, "store the extracted questions in the database")
	flags.String("structurer", "", "structurer to use: regex or llm")
	flags.Int("chunk-size", 0, "maximum characters per chunk in llm mode")
	flags.String("lang", "", "OCR language, e.g. kor+eng")
	flags.Float64("dpi", 0, "rasterisation DPI for OCR")
	flags.String("ocr-engine", "", "OCR engine: tesseract, http or none")
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: ingest [flags] <file.pdf>")
		flags.PrintDefaults()
	}
	_ = flags.Parse(os.Args[1:])
	if flags.NArg() != 1 {
		flags.Usage()
		os.Exit(2)
	}
	pdfPath := flags.Arg(0)

	v := viper.New()
	_ = v.BindPFlag("ingest.structurer", flags.Lookup("structurer"))
	_ = v.BindPFlag("ingest.chunk_size", flags.Lookup("chunk-size"))
	_ = v.BindPFlag("ocr.language", flags.Lookup("lang"))
	_ = v.BindPFlag("ocr.dpi", flags.Lookup("dpi"))
	_ = v.BindPFlag("ocr.engine", flags.Lookup("ocr-engine"))

	cfg, err := config.LoadConfigWith(v)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	if _, err := os.Stat(pdfPath); err != nil {
		l.Fatal("PDF not found", zap.String("path", pdfPath), zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		l.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	resolver, err := pipeline.NewResolver(cfg, l)
	if err != nil {
		l.Fatal("Failed to create page resolver", zap.Error(err))
	}
	structurer, err := pipeline.NewStructurer(cfg, pipeline.NewCache(redisClient), l)
	if err != nil {
		l.Fatal("Failed to create structurer", zap.Error(err))
	}

	var (
		questions domain.QuestionRepository
		tm        domain.TransactionManager
	)
	if *persist {
		db, err := database.Open(cfg)
		if err != nil {
			l.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		if err := database.RunMigrations(db, cfg.DB.Driver); err != nil {
			l.Fatal("Failed to run migrations", zap.Error(err))
		}
		questions = repository.NewQuestionRepository(db)
		tm = repository.NewTransactionManagerAdapter(db)
	}

	artifact := *out
	if artifact == "" {
		artifact = service.ArtifactPathFor(cfg.Ingest.OutputDir, pdfPath)
	}

	ingest := service.NewIngestService(resolver, structurer, questions, tm, cfg, l)
	result, err := ingest.Ingest(ctx, pdfPath, "", service.IngestOptions{Persist: *persist, ArtifactPath: artifact})
	if err != nil {
		l.Fatal("Ingestion failed", zap.String("pdf", pdfPath), zap.Error(err))
	}

	fmt.Printf("%s: %d pages, %d items, %d inserted, %d chunks skipped\n",
		result.Source, result.Pages, len(result.Items), result.Inserted, result.SkippedChunks)
	if result.ArtifactPath != "" {
		fmt.Printf("Wrote %s\n", result.ArtifactPath)
	}
}
