package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// TesseractRecognizer shells out to the tesseract CLI, feeding the page image on stdin.
type TesseractRecognizer struct {
	binary   string
	language string
	dpi      int
}

// NewTesseractRecognizer creates a recognizer for the given binary and language pack, e.g. "kor+eng".
// dpi is the resolution the page was rendered at; zero leaves it to tesseract.
func NewTesseractRecognizer(binary, language string, dpi float64) *TesseractRecognizer {
	if binary == "" {
		binary = "tesseract"
	}
	if language == "" {
		language = "kor+eng"
	}
	return &TesseractRecognizer{binary: binary, language: language, dpi: int(dpi + 0.5)}
}

func (t *TesseractRecognizer) args() []string {
	args := []string{"stdin", "stdout", "-l", t.language}
	if t.dpi > 0 {
		args = append(args, "--dpi", strconv.Itoa(t.dpi))
	}
	return args
}

// Recognize implements domain.Recognizer.
func (t *TesseractRecognizer) Recognize(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", fmt.Errorf("empty image")
	}

	cmd := exec.CommandContext(ctx, t.binary, t.args()...)
	cmd.Stdin = bytes.NewReader(image)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tesseract failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
