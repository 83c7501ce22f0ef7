package files

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/farxc/procurement-insights/internal/procurement/types"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"golang.org/x/text/encoding/charmap"
)

const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
)

// DecodeReader wraps r so it yields UTF-8. Exports from some ERP systems are
// written in Windows-1252.
func DecodeReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", EncodingUTF8, "utf8":
		return r, nil
	case EncodingWindows1252, "cp1252":
		return charmap.Windows1252.NewDecoder().Reader(r), nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encoding)
	}
}

// ReadProcessed reads a processed purchase order CSV. Every cell is kept as
// text and missing required columns are added as all-null columns, so the
// result always carries types.ProcessedColumns.
func ReadProcessed(r io.Reader, encoding string) (dataframe.DataFrame, error) {
	decoded, err := DecodeReader(r, encoding)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	reader := csv.NewReader(decoded)
	reader.LazyQuotes = true
	records, err := reader.ReadAll()
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to parse csv: %w", err)
	}

	var df dataframe.DataFrame
	switch len(records) {
	case 0:
		df = emptyFrame(types.ProcessedColumns)
	case 1:
		df = emptyFrame(records[0])
	default:
		df = dataframe.LoadRecords(records,
			dataframe.DetectTypes(false),
			dataframe.DefaultType(series.String),
			dataframe.HasHeader(true),
		)
		if df.Err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("failed to load csv: %w", df.Err)
		}
	}

	return EnsureColumns(df, types.ProcessedColumns), nil
}

// emptyFrame builds a zero-row frame; gota refuses to load one from records.
func emptyFrame(header []string) dataframe.DataFrame {
	cols := make([]series.Series, 0, len(header))
	for _, h := range header {
		cols = append(cols, series.New([]string{}, series.String, h))
	}
	return dataframe.New(cols...)
}

// EnsureColumns adds every column of cols that df lacks, filled with nulls.
func EnsureColumns(df dataframe.DataFrame, cols []string) dataframe.DataFrame {
	have := make(map[string]bool)
	for _, n := range df.Names() {
		have[n] = true
	}
	for _, c := range cols {
		if have[c] {
			continue
		}
		nulls := make([]string, df.Nrow())
		for i := range nulls {
			nulls[i] = "NaN"
		}
		df = df.Mutate(series.New(nulls, series.String, c))
	}
	return df
}

// OpenFileAndDecode reads the processed CSV at path.
func OpenFileAndDecode(path, encoding string) (dataframe.DataFrame, error) {
	file, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	return ReadProcessed(file, encoding)
}

// WriteRecords writes header and records as CSV to w.
func WriteRecords(w io.Writer, header []string, records [][]string) error {
	if len(records) == 0 {
		cw := csv.NewWriter(w)
		cw.Write(header)
		cw.Flush()
		return cw.Error()
	}

	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, header)
	rows = append(rows, records...)

	df := dataframe.LoadRecords(rows,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.HasHeader(true),
	)
	if df.Err != nil {
		return fmt.Errorf("failed to build dataframe: %w", df.Err)
	}
	if err := df.WriteCSV(w); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

// WriteFile writes the CSV to path, creating parent directories.
func WriteFile(path string, header []string, records [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteRecords(out, header, records); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
