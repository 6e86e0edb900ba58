package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oncorag/gliorag/internal/models"
)

// ReadStats accounts for what happened while reading one JSONL file, so
// skip counts are inspectable instead of only printed.
type ReadStats struct {
	Path           string
	FileMissing    bool
	Lines          int
	Records        int
	MalformedLines []int
}

func (s ReadStats) Skipped() int { return len(s.MalformedLines) }

// LoadLiterature reads literature records from a line-delimited JSON file,
// one object per line, UTF-8. A missing file contributes zero records and
// is not an error; malformed lines are skipped and counted.
func LoadLiterature(path string) ([]models.LiteratureRecord, ReadStats, error) {
	var records []models.LiteratureRecord
	stats, err := readLines(path, func(line []byte) error {
		var rec models.LiteratureRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return err
		}
		records = append(records, rec)
		return nil
	})
	stats.Records = len(records)
	return records, stats, err
}

// LoadGuidelines reads guideline records, with the same missing-file and
// malformed-line behavior as LoadLiterature.
func LoadGuidelines(path string) ([]models.GuidelineRecord, ReadStats, error) {
	var records []models.GuidelineRecord
	stats, err := readLines(path, func(line []byte) error {
		var rec models.GuidelineRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return err
		}
		records = append(records, rec)
		return nil
	})
	stats.Records = len(records)
	return records, stats, err
}

func readLines(path string, handle func(line []byte) error) (ReadStats, error) {
	stats := ReadStats{Path: path}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			stats.FileMissing = true
			return stats, nil
		}
		return stats, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 64*1024*1024)

	for scanner.Scan() {
		stats.Lines++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := handle([]byte(line)); err != nil {
			stats.MalformedLines = append(stats.MalformedLines, stats.Lines)
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return stats, nil
}

// WriteLiterature writes records as line-delimited JSON, replacing any
// existing file. Records with neither title nor abstract are dropped.
func WriteLiterature(path string, records []models.LiteratureRecord) (int, error) {
	count := 0
	err := writeLines(path, func(w *bufio.Writer) error {
		enc := json.NewEncoder(w)
		for _, rec := range records {
			if rec.Title == "" && rec.Abstract == "" {
				continue
			}
			if err := enc.Encode(rec); err != nil {
				return err
			}
			count++
		}
		return nil
	})
	return count, err
}

// WriteGuidelines writes guideline records as line-delimited JSON,
// replacing any existing file.
func WriteGuidelines(path string, records []models.GuidelineRecord) (int, error) {
	count := 0
	err := writeLines(path, func(w *bufio.Writer) error {
		enc := json.NewEncoder(w)
		for _, rec := range records {
			if err := enc.Encode(rec); err != nil {
				return err
			}
			count++
		}
		return nil
	})
	return count, err
}

func writeLines(path string, write func(w *bufio.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := write(w); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return w.Flush()
}
