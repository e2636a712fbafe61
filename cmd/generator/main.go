package main

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/akamensky/argparse"
	"github.com/cyclopcam/logs"
	"github.com/fogleman/gg"
	"github.com/google/uuid"

	"github.com/Brownie44l1/captcha-solver/internal/captcha"
)

const (
	outputDir   = "./captchas"
	sampleDir   = "./sample"
	csvFilePath = "./captchas.csv"
	fontDir     = "./fonts"
)

func main() {
	parser := argparse.NewParser("generator", "Generate labelled CAPTCHA images for training")
	generateCmd := parser.NewCommand("generate", "Generate captchas with a CSV answer file")
	generateCount := generateCmd.StringPositional(&argparse.Options{Help: "Number of captchas to generate"})
	sampleCmd := parser.NewCommand("sample", "Generate unlabelled sample captchas")
	sampleCount := sampleCmd.StringPositional(&argparse.Options{Help: "Number of samples to generate"})
	cleanCmd := parser.NewCommand("clean", "Delete all generated captchas")
	if err := parser.Parse(os.Args); err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(1)
	}

	logger, _ := logs.NewLog()

	switch {
	case cleanCmd.Happened():
		cleanDirectory(logger, outputDir)
	case generateCmd.Happened():
		n, err := strconv.Atoi(*generateCount)
		if err != nil || n < 1 {
			logger.Errorf("Invalid number of captchas: %s", *generateCount)
			os.Exit(1)
		}
		if err := generateCaptchas(logger, n, outputDir, csvFilePath); err != nil {
			logger.Errorf("Error: %v", err)
			os.Exit(1)
		}
	case sampleCmd.Happened():
		n, err := strconv.Atoi(*sampleCount)
		if err != nil || n < 1 {
			logger.Errorf("Invalid number of samples: %s", *sampleCount)
			os.Exit(1)
		}
		cleanDirectory(logger, sampleDir)
		if err := generateCaptchas(logger, n, sampleDir, ""); err != nil {
			logger.Errorf("Error: %v", err)
			os.Exit(1)
		}
	}
}

func cleanDirectory(logger logs.Log, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Infof("Directory does not exist: %s", dir)
		return
	}
	if len(entries) == 0 {
		logger.Infof("Directory is already clean: %s", dir)
		return
	}
	for _, entry := range entries {
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			logger.Errorf("Failed to delete: %s", entry.Name())
		}
	}
	logger.Infof("Cleaned directory: %s", dir)
}

// generateCaptchas renders n captchas into dir. If csvPath is non-empty,
// answers are recorded there as uniq_id,captcha_answer rows.
func generateCaptchas(logger logs.Log, n int, dir, csvPath string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	var writer *csv.Writer
	if csvPath != "" {
		f, err := os.Create(csvPath)
		if err != nil {
			return fmt.Errorf("failed to create CSV file %s: %w", csvPath, err)
		}
		defer f.Close()
		writer = csv.NewWriter(f)
		if err := writer.Write([]string{"uniq_id", "captcha_answer"}); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
	}

	fonts, err := captcha.LoadFonts(fontDir)
	if err != nil {
		return err
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	renderer := captcha.NewRenderer(fonts, rng)

	for i := 0; i < n; i++ {
		uniqID := uuid.NewString()
		fileName := filepath.Join(dir, uniqID+".png")
		answer := renderer.RandomText(captcha.DefaultTextLength)

		if err := gg.SavePNG(fileName, renderer.Render(answer)); err != nil {
			return fmt.Errorf("failed to save %s: %w", fileName, err)
		}
		if writer != nil {
			if err := writer.Write([]string{uniqID, answer}); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		logger.Infof("%d | Generated: %s | Answer: %s", i+1, fileName, answer)
	}

	if writer != nil {
		writer.Flush()
		if err := writer.Error(); err != nil {
			return fmt.Errorf("failed to flush CSV: %w", err)
		}
		logger.Infof("Captcha generation completed. CSV saved at: %s", csvPath)
	}
	return nil
}
