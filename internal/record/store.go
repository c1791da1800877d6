// Package record persists telemetry runs to disk and plays them back.
//
// A run is a directory under the store root named <source>_<unixtime>,
// holding meta.json and snapshots.jsonl. Frames are appended as they
// arrive so a crash loses at most the unflushed tail; meta.json is
// written on [Writer.Close], and runs without it are treated as
// incomplete and skipped by [Store.List].
package record

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/glassbrain/internal/brain"
)

const (
	metaFile   = "meta.json"
	framesFile = "snapshots.jsonl"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMeta describes one recorded session.
type RunMeta struct {
	ID       string    `json:"id"`
	Source   string    `json:"source"`
	Started  time.Time `json:"started"`
	Seed     int64     `json:"seed"`
	Packets  int       `json:"packets"`
	Duration float64   `json:"duration"`
}

// Frame is one recorded packet with its offset from the run start.
type Frame struct {
	T    float64         `json:"t"`
	Snap *brain.Snapshot `json:"snap"`
}

// Writer appends frames to a run directory.
type Writer struct {
	store *Store
	meta  RunMeta
	file  *os.File
	buf   *bufio.Writer
	enc   *json.Encoder
	lastT float64
}

// Begin creates the run directory and opens the frame log.
func (s *Store) Begin(source string, seed int64) (*Writer, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	started := time.Now()
	runID := fmt.Sprintf("%s_%d", source, started.Unix())
	// Back-to-back runs in the same second must not share a directory.
	for n := 2; ; n++ {
		if _, err := os.Stat(filepath.Join(s.baseDir, runID)); os.IsNotExist(err) {
			break
		}
		runID = fmt.Sprintf("%s_%d_%d", source, started.Unix(), n)
	}
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return nil, err
	}

	file, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return nil, err
	}
	buf := bufio.NewWriter(file)
	return &Writer{
		store: s,
		meta: RunMeta{
			ID:      runID,
			Source:  source,
			Started: started,
			Seed:    seed,
		},
		file: file,
		buf:  buf,
		enc:  json.NewEncoder(buf),
	}, nil
}

func (w *Writer) ID() string { return w.meta.ID }

// Append records one frame at offset t seconds.
func (w *Writer) Append(t float64, snap *brain.Snapshot) error {
	if snap == nil {
		return nil
	}
	if err := w.enc.Encode(Frame{T: t, Snap: snap}); err != nil {
		return err
	}
	w.meta.Packets++
	w.lastT = t
	return nil
}

// Close flushes the frame log and writes meta.json, marking the run
// complete.
func (w *Writer) Close() error {
	if err := w.buf.Flush(); err != nil {
		w.file.Close()
		return err
	}
	if err := w.file.Close(); err != nil {
		return err
	}

	w.meta.Duration = w.lastT
	metaPath := filepath.Join(w.store.baseDir, w.meta.ID, metaFile)
	f, err := os.Create(metaPath)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(w.meta)
}

// List returns the completed runs, newest first.
func (s *Store) List() ([]RunMeta, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMeta{}, nil
		}
		return nil, err
	}

	runs := make([]RunMeta, 0)
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
		return runs[i].Started.After(runs[j].Started)
	})
	return runs, nil
}

// Load reads one run's metadata.
func (s *Store) Load(runID string) (*RunMeta, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metaFile))
	if err != nil {
		return nil, err
	}
	var meta RunMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// Latest returns the most recent completed run ID.
func (s *Store) Latest() (string, error) {
	runs, err := s.List()
	if err != nil {
		return "", err
	}
	if len(runs) == 0 {
		return "", fmt.Errorf("record: no runs in %s", s.baseDir)
	}
	return runs[0].ID, nil
}

// Reader streams frames back out of a run.
type Reader struct {
	file *os.File
	dec  *json.Decoder
}

// Open opens a run's frame log for replay.
func (s *Store) Open(runID string) (*Reader, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	return &Reader{file: file, dec: json.NewDecoder(bufio.NewReader(file))}, nil
}

// Next decodes the next frame; io.EOF ends the run.
func (r *Reader) Next() (Frame, error) {
	var f Frame
	err := r.dec.Decode(&f)
	return f, err
}

func (r *Reader) Close() error {
	return r.file.Close()
}
