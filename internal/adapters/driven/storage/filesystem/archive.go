package filesystem

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/slumber-cli/internal/core/domain"
	"github.com/custodia-labs/slumber-cli/internal/core/ports/driven"
)

// Ensure Archive implements the interface.
var _ driven.NightArchive = (*Archive)(nil)

// Column names shared by the CSV logs.
const (
	columnTimestamp  = "timestamp"
	columnSleepEvent = "sleep_event"
)

// timestampLayouts are tried in order. Timestamps carry no zone and are
// read as wall-clock values; only their ordering and differences matter.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	time.RFC3339,
	time.RFC3339Nano,
}

// Archive reads nights from {root}/{date}/{file}.
// It never writes; the ingestion receiver may append to logs while they are read.
type Archive struct {
	root string
}

// NewArchive creates an archive over a data root.
// The root may be a bare path or a file:// URI.
func NewArchive(root string) *Archive {
	return &Archive{root: resolveRoot(root)}
}

// resolveRoot strips a file:// prefix so the root can be opened directly.
func resolveRoot(root string) string {
	return strings.TrimPrefix(root, "file://")
}

// Root returns the data root.
func (a *Archive) Root() string {
	return a.root
}

// Entries lists the sub-directories of the data root.
func (a *Archive) Entries(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dirents, err := os.ReadDir(a.root)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(dirents))
	for _, d := range dirents {
		if d.IsDir() {
			names = append(names, d.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Has reports whether a night holds an artifact as a regular file.
func (a *Archive) Has(_ context.Context, night string, artifact domain.Artifact) (bool, error) {
	info, err := os.Stat(a.path(night, artifact))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// Boundaries returns the ground truth timestamps in file order.
func (a *Archive) Boundaries(ctx context.Context, night string) ([]time.Time, error) {
	var out []time.Time
	err := a.readCSV(ctx, night, domain.ArtifactGroundTruth, []string{columnTimestamp},
		func(get func(string) string) error {
			ts, err := parseTimestamp(get(columnTimestamp))
			if err != nil {
				return err
			}
			out = append(out, ts)
			return nil
		})
	return out, err
}

// Journal returns the journal text.
func (a *Archive) Journal(ctx context.Context, night string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(a.path(night, domain.ArtifactJournal))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Events returns the event log in file order.
func (a *Archive) Events(ctx context.Context, night string) ([]domain.DiscreteEvent, error) {
	var out []domain.DiscreteEvent
	err := a.readCSV(ctx, night, domain.ArtifactEventLog, []string{columnTimestamp, columnSleepEvent},
		func(get func(string) string) error {
			ts, err := parseTimestamp(get(columnTimestamp))
			if err != nil {
				return err
			}
			out = append(out, domain.DiscreteEvent{
				Timestamp: ts,
				Label:     strings.TrimSpace(get(columnSleepEvent)),
			})
			return nil
		})
	return out, err
}

// Samples returns the sensor log in file order.
func (a *Archive) Samples(ctx context.Context, night string) ([]domain.SensorSample, error) {
	required := []string{columnTimestamp}
	for _, ch := range domain.Channels() {
		required = append(required, ch.String())
	}

	var out []domain.SensorSample
	err := a.readCSV(ctx, night, domain.ArtifactSensorLog, required,
		func(get func(string) string) error {
			ts, err := parseTimestamp(get(columnTimestamp))
			if err != nil {
				return err
			}
			values := make(map[domain.Channel]float64, len(domain.Channels()))
			for _, ch := range domain.Channels() {
				v, err := parseValue(ch.String(), get(ch.String()))
				if err != nil {
					return err
				}
				values[ch] = v
			}
			out = append(out, domain.SensorSample{
				Timestamp:   ts,
				Temperature: values[domain.ChannelTemperature],
				Humidity:    values[domain.ChannelHumidity],
				HeatIndex:   values[domain.ChannelHeatIndex],
				Light:       values[domain.ChannelLight],
				Sound:       values[domain.ChannelSound],
			})
			return nil
		})
	return out, err
}

func (a *Archive) path(night string, artifact domain.Artifact) string {
	return filepath.Join(a.root, night, artifact.FileName())
}

// readCSV calls row for every data row of an artifact.
// An empty file has no rows. The first bad row aborts the read.
func (a *Archive) readCSV(ctx context.Context, night string, artifact domain.Artifact,
	required []string, row func(get func(string) string) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Open(a.path(night, artifact))
	if err != nil {
		return err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	// Rows may be short while a line is still being appended.
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s header: %w", artifact.FileName(), err)
	}

	headerMap := make(map[string]int, len(headers))
	for i, h := range headers {
		headerMap[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range required {
		if _, ok := headerMap[col]; !ok {
			return fmt.Errorf("%w: %s has no %q column", domain.ErrInvalidInput, artifact.FileName(), col)
		}
	}

	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s line %d: %w", artifact.FileName(), line, err)
		}

		get := func(col string) string {
			if idx, ok := headerMap[col]; ok && idx < len(record) {
				return record[idx]
			}
			return ""
		}
		if err := row(get); err != nil {
			return fmt.Errorf("%s line %d: %w", artifact.FileName(), line, err)
		}
	}
}

func parseTimestamp(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", domain.ErrUnparseableTimestamp, raw)
}

// parseValue reads a sensor cell. Missing readings logged as nan come back
// as NaN; averaging leaves them out.
func parseValue(column, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", domain.ErrUnparseableValue, column, raw)
	}
	return v, nil
}
