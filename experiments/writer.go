package experiments

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Writer persists matchup records as CSV under a timestamped directory.
type Writer struct {
	baseDir string
}

// NewWriter creates the output directory under root and returns a Writer
// for it.
func NewWriter(root string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, timestamp)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Writer{baseDir: baseDir}, nil
}

// Dir returns the directory records are written to.
func (w *Writer) Dir() string { return w.baseDir }

// WriteGames writes one CSV row per game record to name.csv in the output
// directory.
func (w *Writer) WriteGames(name string, records []GameRecord) error {
	path := filepath.Join(w.baseDir, name+".csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create games file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"game", "agent1", "agent2", "winner", "plies", "duration_ms", "eval_calls", "cache_hits"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write games header: %w", err)
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Game),
			r.Agent1,
			r.Agent2,
			strconv.Itoa(r.Winner),
			strconv.Itoa(r.Plies),
			strconv.FormatFloat(float64(r.Duration.Microseconds())/1000, 'f', 3, 64),
			strconv.Itoa(r.EvalCalls),
			strconv.Itoa(r.CacheHits),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write game record %d: %w", r.Game, err)
		}
	}
	return writer.Error()
}

// Summary aggregates a matchup's records.
type Summary struct {
	Games        int
	Agent1Wins   int
	Agent2Wins   int
	Draws        int
	MeanPlies    float64
	StdDevPlies  float64
	MeanDuration time.Duration
}

// Summarize reduces records to counts and gonum summary statistics.
func Summarize(records []GameRecord) Summary {
	s := Summary{Games: len(records)}
	if len(records) == 0 {
		return s
	}

	plies := make([]float64, len(records))
	var total time.Duration
	for i, r := range records {
		switch r.Winner {
		case 1:
			s.Agent1Wins++
		case 2:
			s.Agent2Wins++
		default:
			s.Draws++
		}
		plies[i] = float64(r.Plies)
		total += r.Duration
	}
	s.MeanPlies = stat.Mean(plies, nil)
	s.StdDevPlies = stat.StdDev(plies, nil)
	s.MeanDuration = total / time.Duration(len(records))
	return s
}
