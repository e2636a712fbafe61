package model

import (
	"encoding/json"
	"fmt"
	"os"

	ort "github.com/yalue/onnxruntime_go"
)

// sessionLogSeverity maps the verbose flag to ONNX Runtime's log level.
// Errors-only matches the original TF_CPP_MIN_LOG_LEVEL=3 default.
func sessionLogSeverity(verbose bool) ort.LoggingLevel {
	if verbose {
		return ort.LoggingLevelVerbose
	}
	return ort.LoggingLevelError
}

// Session wraps a pre-trained captcha classifier. The input and output
// tensors are allocated once at load time and reused for every Predict,
// since the shapes are fixed by the metadata.
type Session struct {
	session      *ort.AdvancedSession
	Metadata     Metadata
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[float32]
}

// NewSession loads the model artifact and its metadata JSON. If verbose
// is false, ONNX Runtime is told to log errors only.
func NewSession(modelPath, metadataPath string, verbose bool) (*Session, error) {
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("failed to initialize ONNX environment: %w", err)
	}

	metaFile, err := os.ReadFile(metadataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	var metadata Metadata
	if err := json.Unmarshal(metaFile, &metadata); err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}
	if err := metadata.validate(); err != nil {
		return nil, fmt.Errorf("invalid model metadata: %w", err)
	}

	inputShape := ort.NewShape(metadata.InputShape...)
	outputShape := ort.NewShape(metadata.OutputShape...)

	inputTensor, err := ort.NewEmptyTensor[float32](inputShape)
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}

	outputTensor, err := ort.NewEmptyTensor[float32](outputShape)
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("failed to create session options: %w", err)
	}
	defer options.Destroy()

	if err := options.SetLogSeverityLevel(sessionLogSeverity(verbose)); err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("failed to set log severity: %w", err)
	}

	session, err := ort.NewAdvancedSession(modelPath,
		[]string{"input"}, []string{"output"},
		[]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor},
		options)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	return &Session{
		session:      session,
		Metadata:     metadata,
		inputTensor:  inputTensor,
		outputTensor: outputTensor,
	}, nil
}

// Predict runs one inference over a single-image batch and returns one
// probability vector per character slot.
func (s *Session) Predict(inputData []float32) ([][]float32, error) {
	if len(inputData) != s.Metadata.InputSize() {
		return nil, fmt.Errorf("expected %d input values, got %d", s.Metadata.InputSize(), len(inputData))
	}
	copy(s.inputTensor.GetData(), inputData)

	if err := s.session.Run(); err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}

	return splitSlots(s.outputTensor.GetData(), s.Metadata.Slots(), s.Metadata.Classes()), nil
}

// splitSlots carves the flat output tensor into per-slot probability
// vectors. The returned slices alias buf.
func splitSlots(buf []float32, slots, classes int) [][]float32 {
	out := make([][]float32, slots)
	for i := 0; i < slots; i++ {
		out[i] = buf[i*classes : (i+1)*classes]
	}
	return out
}

func (s *Session) Close() {
	if s.inputTensor != nil {
		s.inputTensor.Destroy()
	}
	if s.outputTensor != nil {
		s.outputTensor.Destroy()
	}
	if s.session != nil {
		s.session.Destroy()
	}
	ort.DestroyEnvironment()
}
