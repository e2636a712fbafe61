package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/akamensky/argparse"
	"github.com/cyclopcam/logs"

	"github.com/Brownie44l1/captcha-solver/internal/decode"
	"github.com/Brownie44l1/captcha-solver/internal/imageproc"
	"github.com/Brownie44l1/captcha-solver/internal/model"
)

func main() {
	os.Exit(run(os.Args))
}

// run returns the process exit code. Argument and image errors are
// reported before the model is touched.
func run(args []string) int {
	parser := argparse.NewParser("solver", "Predict CAPTCHA text from an image")
	verbose := parser.Flag("v", "verbose", &argparse.Options{Help: "Enable verbose output"})
	imagePath := parser.StringPositional(&argparse.Options{Help: "Path to the input CAPTCHA image"})
	if err := parser.Parse(args); err != nil {
		fmt.Print(parser.Usage(err))
		return 1
	}

	logger, _ := logs.NewLog()

	if *imagePath == "" {
		logger.Errorf("Usage: %s [--verbose] <image_path>", args[0])
		return 1
	}

	img, err := imageproc.LoadImage(*imagePath)
	if err != nil {
		logger.Errorf("Error: %v", err)
		return 1
	}

	// Get the project root directory
	execPath, err := os.Getwd()
	if err != nil {
		logger.Errorf("Failed to get working directory: %v", err)
		return 1
	}

	// If running from cmd/solver, go up two levels
	if filepath.Base(execPath) == "solver" {
		execPath = filepath.Join(execPath, "../..")
	}

	modelPath := filepath.Join(execPath, "models", "captcha_model.onnx")
	metadataPath := filepath.Join(execPath, "models", "captcha_metadata.json")

	if *verbose {
		logger.Infof("Loading model from: %s", modelPath)
	}

	session, err := model.NewSession(modelPath, metadataPath, *verbose)
	if err != nil {
		logger.Errorf("Failed to load model: %v", err)
		return 1
	}
	defer session.Close()

	if *verbose {
		logger.Infof("Model loaded: %d character slots, %d classes",
			session.Metadata.Slots(), session.Metadata.Classes())
	}

	slots, err := session.Predict(imageproc.Preprocess(img))
	if err != nil {
		logger.Errorf("Prediction failed: %v", err)
		return 1
	}

	fmt.Println(decode.Text(slots))
	return 0
}
