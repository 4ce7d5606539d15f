package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Store persists sweep evaluations, one directory per run: a
// metadata.json describing the system and a results.csv holding the
// time grid plus one column per body.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string    `json:"id"`
	Quantity  string    `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
	Bodies    int       `json:"bodies"`
	Uniform   bool      `json:"uniform"`
	Start     float64   `json:"start"`
	Stop      float64   `json:"stop"`
	Samples   int       `json:"samples"`
}

// Save writes one evaluation run: values holds one row per body,
// aligned with times.
func (s *Store) Save(meta RunMetadata, times []float64, values [][]float64) (string, error) {
	if meta.ID == "" {
		meta.ID = fmt.Sprintf("%s_%d", meta.Quantity, time.Now().Unix())
	}
	meta.Timestamp = time.Now()
	meta.Samples = len(times)
	meta.Bodies = len(values)

	for i, row := range values {
		if len(row) != len(times) {
			return "", fmt.Errorf("storage: body %d has %d samples, time grid has %d", i, len(row), len(times))
		}
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "results.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"time"}
	for i := range values {
		header = append(header, fmt.Sprintf("body%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for j := range times {
		row := []string{strconv.FormatFloat(times[j], 'f', 8, 64)}
		for i := range values {
			row = append(row, strconv.FormatFloat(values[i][j], 'f', 8, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return meta.ID, nil
}

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

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadResults reads a run's time grid and per-body rows back.
func (s *Store) LoadResults(runID string) ([]float64, [][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "results.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []float64{}, [][]float64{}, nil
	}

	bodies := len(records[0]) - 1
	times := make([]float64, 0, len(records)-1)
	values := make([][]float64, bodies)
	for i := range values {
		values[i] = make([]float64, 0, len(records)-1)
	}

	for _, record := range records[1:] {
		if len(record) != bodies+1 {
			return nil, nil, fmt.Errorf("storage: ragged row in %s", runID)
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, nil, err
		}
		times = append(times, t)
		for i := 0; i < bodies; i++ {
			v, err := strconv.ParseFloat(record[i+1], 64)
			if err != nil {
				return nil, nil, err
			}
			values[i] = append(values[i], v)
		}
	}
	return times, values, nil
}
