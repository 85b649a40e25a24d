package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type RunRecord struct {
	ID     string // Unique across experiments
	Config int    // RunConfig.ID
	Seed   uint64 // Seed the run's grid was built with
	RunMetric
}

type GenerationRecord struct {
	Run string // RunRecord.ID
	GenerationMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates a fresh output directory under root/name.
func NewWriter(root, name string) (*Writer, error) {
	baseDir := filepath.Join(root, name, uuid.NewString())
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteRunConfigs(configs []RunConfig) error {
	header := []string{"id", "rows", "cols", "rounds", "noise", "mutation_rate", "seed", "generations"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			strconv.Itoa(config.Rows),
			strconv.Itoa(config.Cols),
			strconv.Itoa(config.Rounds),
			strconv.FormatFloat(config.Noise, 'g', -1, 64),
			strconv.FormatFloat(config.MutationRate, 'g', -1, 64),
			strconv.FormatUint(config.Seed, 10),
			strconv.Itoa(config.Generations),
		})
	}
	return w.write("run_configs.csv", header, rows)
}

func (w *Writer) WriteRunRecords(records []RunRecord) error {
	header := []string{"id", "config", "seed", "generations", "stable", "start_time", "end_time", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.ID,
			strconv.Itoa(record.Config),
			strconv.FormatUint(record.Seed, 10),
			strconv.Itoa(record.Generations),
			strconv.FormatBool(record.Stable),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	return w.write("run_records.csv", header, rows)
}

// WriteGenerationRecords writes one row per generation. Strategy counts are
// joined with ';' in roster order.
func (w *Writer) WriteGenerationRecords(records []GenerationRecord) error {
	header := []string{"run", "generation", "changed", "counts", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		counts := make([]string, len(record.Counts))
		for i, c := range record.Counts {
			counts[i] = strconv.Itoa(c)
		}
		rows = append(rows, []string{
			record.Run,
			strconv.Itoa(record.Generation),
			strconv.Itoa(record.Changed),
			strings.Join(counts, ";"),
			record.Duration.String(),
		})
	}
	return w.write("generation_records.csv", header, rows)
}

func (w *Writer) write(file string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", file, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", file, err)
	}
	for _, row := range rows {
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write %s row: %w", file, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
