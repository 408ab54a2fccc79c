// Package noiseprofile loads tagged WAV noise recordings from disk and
// adapts them into denoise.InputTrack sources for Engine.ProfileNoise.
package noiseprofile

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mjibson/go-dsp/wav"

	"github.com/silverglade-labs/stereodenoise/pkg/denoise"
)

// knownTags are the directory-name components recognized as tags while
// walking a reference library, matching the original application's
// reference recordings (rain/thunder/night ambience loops).
var knownTags = []string{"rain", "thunder", "night"}

// NoiseReference is one decoded WAV noise recording, interleaved across
// its channels, plus the tags derived from its path.
type NoiseReference struct {
	Path       string
	Tags       []string
	SampleRate int
	Channels   int
	// Interleaved holds Channels-interleaved float32 samples.
	Interleaved []float32
}

// HasTag reports whether r carries tag.
func (r *NoiseReference) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Channel adapts channel ch (0-based) of r into a denoise.InputTrack by
// de-interleaving it out of the stored samples.
func (r *NoiseReference) Channel(ch int) denoise.InputTrack {
	if r.Channels <= 1 {
		return denoise.NewSliceInputTrack(r.Interleaved)
	}
	samples := make([]float32, len(r.Interleaved)/r.Channels)
	for i := range samples {
		samples[i] = r.Interleaved[i*r.Channels+ch]
	}
	return denoise.NewSliceInputTrack(samples)
}

// Library is an in-memory index of NoiseReferences scanned from a
// directory tree.
type Library struct {
	references []*NoiseReference
}

// Load walks dir, decoding every *.wav file it finds and tagging each
// one with the knownTags components found along its path.
func Load(dir string) (*Library, error) {
	lib := &Library{}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("unable to walk %q: %w", path, err)
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".wav") {
			return nil
		}
		ref, err := loadReference(path, dir)
		if err != nil {
			return fmt.Errorf("unable to load noise reference %q: %w", path, err)
		}
		lib.references = append(lib.references, ref)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lib, nil
}

func loadReference(path, root string) (*NoiseReference, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open file: %w", err)
	}
	defer f.Close()

	decoded, err := wav.New(f)
	if err != nil {
		return nil, fmt.Errorf("unable to decode WAV: %w", err)
	}

	samples, err := decoded.ReadFloats(decoded.Samples)
	if err != nil {
		return nil, fmt.Errorf("unable to read WAV samples: %w", err)
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}

	return &NoiseReference{
		Path:        path,
		Tags:        tagsFromPath(rel),
		SampleRate:  int(decoded.SampleRate),
		Channels:    int(decoded.NumChannels),
		Interleaved: samples,
	}, nil
}

func tagsFromPath(rel string) []string {
	parts := strings.Split(filepath.ToSlash(filepath.Dir(rel)), "/")
	var tags []string
	for _, part := range parts {
		lower := strings.ToLower(part)
		for _, known := range knownTags {
			if lower == known {
				tags = append(tags, known)
			}
		}
	}
	return tags
}

// ByTag returns every reference tagged with tag, in load order.
func (l *Library) ByTag(tag string) []*NoiseReference {
	var out []*NoiseReference
	for _, ref := range l.references {
		if ref.HasTag(tag) {
			out = append(out, ref)
		}
	}
	return out
}

// All returns every reference in the library, in load order.
func (l *Library) All() []*NoiseReference {
	return l.references
}
