// SPDX-License-Identifier: EPL-2.0

package corpus

import (
	"fmt"

	"github.com/ik5/audseq/internal/logging"
	"github.com/ik5/audseq/mfcc"
	"github.com/ik5/audseq/utils"
)

// Corpus holds the extracted feature sequences of a directory, one entry
// per successfully processed file, in name order.
type Corpus struct {
	Files    []string
	Features [][][]float64
}

// Len returns the number of feature sequences.
func (c *Corpus) Len() int { return len(c.Features) }

// Build normalizes and extracts MFCC features for every decodable file
// under dir. Per-file failures are logged and skipped; Build fails only
// when the directory is unreadable or nothing survives.
func (n *Normalizer) Build(dir string, ext *mfcc.Extractor) (*Corpus, error) {
	files, err := n.listAudioFiles(dir)
	if err != nil {
		return nil, err
	}

	log := logging.Sugar()
	c := &Corpus{}
	for _, path := range files {
		samples, err := n.Process(path)
		if err != nil {
			log.Warnw("skipping file", "path", path, "error", err)
			continue
		}

		feats, err := ext.Extract(utils.Float32sTo64(samples))
		if err != nil {
			log.Warnw("skipping file", "path", path, "error", err)
			continue
		}

		c.Files = append(c.Files, path)
		c.Features = append(c.Features, feats)
	}

	if c.Len() == 0 {
		return nil, fmt.Errorf("%w: no file under %s survived processing", ErrNoFiles, dir)
	}

	log.Infow("corpus built", "dir", dir, "files", c.Len())
	return c, nil
}
