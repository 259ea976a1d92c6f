// SPDX-License-Identifier: EPL-2.0

package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ik5/audseq/formats/wav"
	"github.com/ik5/audseq/internal/logging"
	"github.com/ik5/audseq/utils"
)

// listAudioFiles returns the decodable files directly under dir, sorted
// by name for stable processing order.
func (n *Normalizer) listAudioFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if _, ok := n.reg.Get(ext); ok {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFiles, dir)
	}
	return files, nil
}

// NormalizeDir normalizes every decodable file under inDir and writes
// the result to outDir as 16-bit PCM mono WAV under the same base name.
// Files that fail to decode or normalize are logged and skipped; the
// returned count is the number of files written.
func (n *Normalizer) NormalizeDir(inDir, outDir string) (int, error) {
	files, err := n.listAudioFiles(inDir)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return 0, fmt.Errorf("creating output directory: %w", err)
	}

	log := logging.Sugar()
	written := 0
	for _, path := range files {
		samples, err := n.Process(path)
		if err != nil {
			log.Warnw("skipping file", "path", path, "error", err)
			continue
		}

		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		outPath := filepath.Join(outDir, base+".wav")
		if err := n.writeWav(outPath, samples); err != nil {
			log.Warnw("skipping file", "path", path, "error", err)
			continue
		}

		written++
		log.Infow("normalized", "in", path, "out", outPath)
	}

	return written, nil
}

func (n *Normalizer) writeWav(path string, samples []float32) error {
	pcm := make([]int16, len(samples))
	for i, v := range samples {
		pcm[i] = utils.Float32ToInt16(v)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := wav.WriteWAV16(f, n.sampleRate, pcm); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
