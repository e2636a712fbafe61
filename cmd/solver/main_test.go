package main

import "testing"

// Both failure modes must exit 1 before the model directory is even
// resolved: run returns at the argument check or the image load, neither
// of which touches the ONNX runtime.

func TestRunNoImageArgument(t *testing.T) {
	if code := run([]string{"solver"}); code != 1 {
		t.Fatalf("expected exit code 1 without an image argument, got %d", code)
	}
}

func TestRunMissingImage(t *testing.T) {
	if code := run([]string{"solver", "/no/such/file.png"}); code != 1 {
		t.Fatalf("expected exit code 1 for a nonexistent image, got %d", code)
	}
}

func TestRunMissingImageVerbose(t *testing.T) {
	if code := run([]string{"solver", "--verbose", "/no/such/file.png"}); code != 1 {
		t.Fatalf("expected exit code 1 for a nonexistent image, got %d", code)
	}
}
