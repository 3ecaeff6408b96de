package worker

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/absa/internal/export"
	"github.com/ppiankov/absa/internal/model"
	"github.com/ppiankov/absa/internal/pipeline"
)

// ErrDuplicateExport is returned when two manifest jobs would write the
// same export file
var ErrDuplicateExport = errors.New("duplicate export file")

// Manifest lists the files of a batch run
type Manifest struct {
	Jobs []ManifestJob `yaml:"jobs"`

	dir string
}

// ManifestJob is one file to analyze. Dates are YYYY-MM-DD.
type ManifestJob struct {
	File       string   `yaml:"file"`
	Label      string   `yaml:"label"`
	Start      string   `yaml:"start"`
	End        string   `yaml:"end"`
	Aspects    []string `yaml:"aspects"`
	Sentiments []string `yaml:"sentiments"`
}

// LoadManifest reads a YAML manifest. Relative file paths resolve against
// the manifest's directory.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	m.dir = filepath.Dir(path)
	return m, nil
}

// ParseManifest decodes manifest YAML
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Requests converts the manifest into pipeline requests
func (m *Manifest) Requests() ([]pipeline.Request, error) {
	reqs := make([]pipeline.Request, 0, len(m.Jobs))
	exports := make(map[string]int, len(m.Jobs))

	for i, job := range m.Jobs {
		req, err := job.request(m.dir)
		if err != nil {
			return nil, fmt.Errorf("job %d: %w", i+1, err)
		}

		name := export.FileName(req.Label)
		if prev, dup := exports[name]; dup {
			return nil, fmt.Errorf("job %d: %w %s (also job %d)", i+1, ErrDuplicateExport, name, prev)
		}
		exports[name] = i + 1

		reqs = append(reqs, req)
	}

	return reqs, nil
}

func (j ManifestJob) request(dir string) (pipeline.Request, error) {
	if strings.TrimSpace(j.File) == "" {
		return pipeline.Request{}, errors.New("file is required")
	}

	path := j.File
	if path != "-" && !filepath.IsAbs(path) && dir != "" {
		path = filepath.Join(dir, path)
	}

	label := j.Label
	if label == "" {
		base := filepath.Base(j.File)
		label = strings.TrimSuffix(base, filepath.Ext(base))
	}

	req := pipeline.Request{Path: path, Label: label}

	var err error
	if req.Start, err = ParseDay(j.Start); err != nil {
		return req, fmt.Errorf("start: %w", err)
	}
	if req.End, err = ParseDay(j.End); err != nil {
		return req, fmt.Errorf("end: %w", err)
	}

	for _, s := range j.Aspects {
		a, err := model.ParseAspect(s)
		if err != nil {
			return req, err
		}
		req.Aspects = append(req.Aspects, a)
	}
	for _, s := range j.Sentiments {
		v, err := model.ParseSentiment(s)
		if err != nil {
			return req, err
		}
		req.Sentiments = append(req.Sentiments, v)
	}

	return req, nil
}

// ParseDay parses a YYYY-MM-DD date; empty input is the zero time
func ParseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}
