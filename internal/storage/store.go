package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/recart/internal/stats"
)

const (
	metadataFile = "metadata.json"
	statsFile    = "stats.csv"
	framesDir    = "frames"
	framePrefix  = "img"
	gifFile      = "anim.gif"
)

var ErrRunExists = errors.New("storage: run already exists")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Expressions are the printed channel trees of a run.
type Expressions struct {
	R string `json:"r"`
	G string `json:"g"`
	B string `json:"b"`
}

type RunMetadata struct {
	ID          string      `json:"id"`
	Timestamp   time.Time   `json:"timestamp"`
	Seed        int64       `json:"seed"`
	Width       int         `json:"width"`
	Height      int         `json:"height"`
	Frames      int         `json:"frames"`
	Depth       int         `json:"depth"`
	Workers     int         `json:"workers"`
	Expressions Expressions `json:"expressions"`
	GIF         bool        `json:"gif"`
	ElapsedMs   float64     `json:"elapsed_ms"`
}

// Create allocates a run directory and writes its initial metadata. ID and
// Timestamp are filled in when empty.
func (s *Store) Create(meta RunMetadata) (RunMetadata, error) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	if meta.ID == "" {
		meta.ID = fmt.Sprintf("art_%d", meta.Timestamp.UnixNano())
	}

	runDir := s.runDir(meta.ID)
	if err := os.Mkdir(runDir, 0755); err != nil {
		if os.IsExist(err) {
			return meta, fmt.Errorf("%w: %s", ErrRunExists, meta.ID)
		}
		return meta, err
	}
	if err := os.MkdirAll(filepath.Join(runDir, framesDir), 0755); err != nil {
		return meta, err
	}

	return meta, s.SaveMetadata(meta)
}

func (s *Store) SaveMetadata(meta RunMetadata) error {
	metaFile, err := os.Create(filepath.Join(s.runDir(meta.ID), metadataFile))
	if err != nil {
		return err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func (s *Store) runDir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

// FrameBase is the file name prefix frames of runID are written under; frame
// k lives at FrameBase + k + ".png".
func (s *Store) FrameBase(runID string) string {
	return filepath.Join(s.runDir(runID), framesDir, framePrefix)
}

func (s *Store) GIFPath(runID string) string {
	return filepath.Join(s.runDir(runID), gifFile)
}

// FramePaths lists the frame files of runID in frame order.
func (s *Store) FramePaths(runID string) ([]string, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	base := s.FrameBase(runID)
	paths := make([]string, 0, meta.Frames)
	for k := 0; k < meta.Frames; k++ {
		p := base + strconv.Itoa(k) + ".png"
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("frame %d of %s: %w", k, runID, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func (s *Store) SaveStats(runID string, frames []stats.Frame) error {
	csvFile, err := os.Create(filepath.Join(s.runDir(runID), statsFile))
	if err != nil {
		return err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)

	header := []string{"frame", "t", "mean_r", "mean_g", "mean_b", "luminance", "hue"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, f := range frames {
		row := []string{
			strconv.Itoa(f.Index),
			strconv.FormatFloat(f.T, 'f', 6, 64),
			strconv.FormatFloat(f.MeanR, 'f', 6, 64),
			strconv.FormatFloat(f.MeanG, 'f', 6, 64),
			strconv.FormatFloat(f.MeanB, 'f', 6, 64),
			strconv.FormatFloat(f.Luminance, 'f', 6, 64),
			strconv.FormatFloat(f.Hue, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.runDir(runID), metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadStats(runID string) ([]stats.Frame, error) {
	file, err := os.Open(filepath.Join(s.runDir(runID), statsFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []stats.Frame{}, nil
	}

	frames := make([]stats.Frame, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 7 {
			continue
		}

		idx, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}

		vals := make([]float64, 6)
		ok := true
		for j := range vals {
			v, err := strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}

		frames = append(frames, stats.Frame{
			Index:     idx,
			T:         vals[0],
			MeanR:     vals[1],
			MeanG:     vals[2],
			MeanB:     vals[3],
			Luminance: vals[4],
			Hue:       vals[5],
		})
	}

	return frames, nil
}
