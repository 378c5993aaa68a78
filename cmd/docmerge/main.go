package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"docmerge/internal/config"
	"docmerge/internal/journal"
	"docmerge/internal/pipeline"
	"docmerge/internal/request"
	"docmerge/internal/writer"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "docmerge",
		Short: "Formatting-preserving documentation reconciliation engine",
	}
	configPath string

	mergeFile    string
	mergeSection string
	mergeContent string
	contentFile  string

	historyLimit int

	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed)
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the config file")

	mergeCmd.Flags().StringVarP(&mergeFile, "file", "f", "", "Target document path")
	mergeCmd.Flags().StringVarP(&mergeSection, "section", "s", "", "Section name to merge into (empty replaces the whole file)")
	mergeCmd.Flags().StringVar(&mergeContent, "content", "", "Content to merge")
	mergeCmd.Flags().StringVar(&contentFile, "content-file", "", "Read content from a file instead of --content")
	mergeCmd.MarkFlagRequired("file")

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of journal entries to show")

	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(historyCmd)
}

// loadConfig falls back to defaults when no config file exists.
func loadConfig() *config.Config {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return config.Default()
	}
	return cfg
}

// initReconciler wires the writer and optional journal from config. The
// returned closer is a no-op when journaling is disabled.
func initReconciler(cfg *config.Config) (*pipeline.Reconciler, func()) {
	w := writer.New(writer.Options{
		Backup:   cfg.Merge.Backup,
		Validate: cfg.Merge.Validate,
	})

	if !cfg.Journal.Enabled {
		return pipeline.NewReconciler(w, nil), func() {}
	}
	j, err := journal.Open(cfg.Journal.Path)
	if err != nil {
		log.Printf("Warning: journal unavailable (%v), continuing without it", err)
		return pipeline.NewReconciler(w, nil), func() {}
	}
	return pipeline.NewReconciler(w, j), func() { j.Close() }
}

func printResult(res writer.WriteResult) {
	if res.Success {
		fmt.Printf("✅ %s (%d bytes)\n", res.FilePath, res.BytesWritten)
	} else {
		errColor.Printf("❌ %s\n", res.FilePath)
	}
	for _, w := range res.Warnings {
		warnColor.Printf("  ⚠️  %s\n", w)
	}
	for _, e := range res.Errors {
		errColor.Printf("  -> %s\n", e)
	}
}

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge content into one section of one document",
	Run: func(cmd *cobra.Command, args []string) {
		content := mergeContent
		if contentFile != "" {
			b, err := os.ReadFile(contentFile)
			if err != nil {
				log.Fatalf("Failed to read content file: %v", err)
			}
			content = string(b)
		}

		cfg := loadConfig()
		rec, closeJournal := initReconciler(cfg)
		defer closeJournal()

		res := rec.Apply(context.Background(), request.MergeRequest{
			TargetFile: mergeFile,
			Section:    mergeSection,
			Content:    content,
		})
		printResult(res)
		if !res.Success {
			os.Exit(1)
		}
	},
}

var applyCmd = &cobra.Command{
	Use:   "apply [batch-file]",
	Short: "Apply a YAML or JSON batch of merge requests",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		reqs, err := request.LoadBatch(args[0])
		if err != nil {
			log.Fatalf("Failed to load batch: %v", err)
		}
		if len(reqs) == 0 {
			fmt.Println("✅ Nothing to apply.")
			return
		}
		fmt.Printf("📝 Applying %d merge requests...\n", len(reqs))

		cfg := loadConfig()
		rec, closeJournal := initReconciler(cfg)
		defer closeJournal()

		failed := 0
		for _, res := range rec.ApplyAll(context.Background(), reqs) {
			printResult(res)
			if !res.Success {
				failed++
			}
		}
		if failed > 0 {
			log.Fatalf("%d of %d requests failed", failed, len(reqs))
		}
	},
}

var checkCmd = &cobra.Command{
	Use:   "check [document]",
	Short: "Run the advisory validator against a document",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		b, err := os.ReadFile(args[0])
		if err != nil {
			log.Fatalf("Failed to read document: %v", err)
		}
		fmt.Printf("📄 %s (%s)\n", args[0], writer.DetectProfile(string(b)).Describe())
		warnings := writer.CheckContent(string(b), filepath.Dir(args[0]))
		if len(warnings) == 0 {
			fmt.Println("✅ No findings.")
			return
		}
		for _, w := range warnings {
			warnColor.Printf("⚠️  %s\n", w)
		}
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent write journal entries",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		j, err := journal.Open(cfg.Journal.Path)
		if err != nil {
			log.Fatalf("Failed to open journal: %v", err)
		}
		defer j.Close()

		entries, err := j.Recent(context.Background(), historyLimit)
		if err != nil {
			log.Fatalf("Failed to read journal: %v", err)
		}
		if len(entries) == 0 {
			fmt.Println("No journal entries.")
			return
		}
		for _, e := range entries {
			status := "ok"
			if !e.Success {
				status = "failed"
			}
			fmt.Printf("%s  %-6s %s (%d bytes, %d warnings)\n",
				e.CreatedAt.Format("2006-01-02 15:04:05"), status, e.FilePath, e.BytesWritten, len(e.Warnings))
		}
	},
}
