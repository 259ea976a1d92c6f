// SPDX-License-Identifier: EPL-2.0

package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeDir_WritesWavPerFile(t *testing.T) {
	t.Parallel()

	inDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "normalized")

	writeSineWav(t, filepath.Join(inDir, "a.wav"), testRate, testRate/4)
	writeSineWav(t, filepath.Join(inDir, "b.wav"), testRate, testRate/2)
	// Longer than the target duration, must be cropped, not skipped.
	writeSineWav(t, filepath.Join(inDir, "long.wav"), testRate, 3*testRate)
	// Silence has no level to normalize but still gets an output file.
	writeSilentWav(t, filepath.Join(inDir, "silent.wav"), testRate, testRate/4)
	// Not a registered extension, must be ignored silently.
	if err := os.WriteFile(filepath.Join(inDir, "readme.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	n := NewNormalizer(DefaultRegistry(), testRate, testRate)
	written, err := n.NormalizeDir(inDir, outDir)
	if err != nil {
		t.Fatalf("NormalizeDir() error = %v", err)
	}
	if written != 4 {
		t.Errorf("written = %d, want 4 (one output per input)", written)
	}

	for _, name := range []string{"a.wav", "b.wav", "long.wav", "silent.wav"} {
		out := filepath.Join(outDir, name)
		samples, err := n.Process(out)
		if err != nil {
			t.Errorf("output %s does not round-trip: %v", name, err)
			continue
		}
		if len(samples) != testRate {
			t.Errorf("output %s length = %d, want %d", name, len(samples), testRate)
		}
	}
}

func TestNormalizeDir_SkipsBrokenFiles(t *testing.T) {
	t.Parallel()

	inDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "normalized")

	writeSineWav(t, filepath.Join(inDir, "good.wav"), testRate, testRate/4)
	// Registered extension but invalid content. The scan must log, skip
	// and keep going.
	if err := os.WriteFile(filepath.Join(inDir, "broken.wav"), []byte("garbage"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	n := NewNormalizer(DefaultRegistry(), testRate, testRate)
	written, err := n.NormalizeDir(inDir, outDir)
	if err != nil {
		t.Fatalf("NormalizeDir() error = %v", err)
	}
	if written != 1 {
		t.Errorf("written = %d, want 1 (broken file skipped)", written)
	}
}

func TestNormalizeDir_EmptyDirectory(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(DefaultRegistry(), testRate, testRate)
	if _, err := n.NormalizeDir(t.TempDir(), t.TempDir()); !errors.Is(err, ErrNoFiles) {
		t.Errorf("NormalizeDir() error = %v, want ErrNoFiles", err)
	}
}
