package model

import "fmt"

// AlphabetSize is the number of output classes per character slot:
// digits 0-9 followed by lowercase a-z.
const AlphabetSize = 36

// Metadata describes the model artifact. It is stored as a JSON file
// next to the .onnx file, written by the training pipeline.
type Metadata struct {
	InputShape  []int64 `json:"input_shape"`  // NHWC, e.g. [1, 50, 250, 3]
	OutputShape []int64 `json:"output_shape"` // [1, slots, classes]
}

// Slots returns the number of character positions the model predicts.
func (m *Metadata) Slots() int {
	return int(m.OutputShape[1])
}

// Classes returns the number of output classes per slot.
func (m *Metadata) Classes() int {
	return int(m.OutputShape[2])
}

// InputSize returns the flattened element count of one input batch.
func (m *Metadata) InputSize() int {
	size := 1
	for _, dim := range m.InputShape {
		size *= int(dim)
	}
	return size
}

func (m *Metadata) validate() error {
	if len(m.InputShape) != 4 {
		return fmt.Errorf("expected 4 input dimensions (NHWC), got %d", len(m.InputShape))
	}
	if m.InputShape[0] != 1 {
		return fmt.Errorf("expected batch size 1, got %d", m.InputShape[0])
	}
	if len(m.OutputShape) != 3 {
		return fmt.Errorf("expected 3 output dimensions [batch, slots, classes], got %d", len(m.OutputShape))
	}
	if m.OutputShape[1] < 1 {
		return fmt.Errorf("model predicts %d character slots", m.OutputShape[1])
	}
	if m.OutputShape[2] != AlphabetSize {
		return fmt.Errorf("expected %d classes per slot, got %d", AlphabetSize, m.OutputShape[2])
	}
	return nil
}
