package investor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ErrInvalidRecord is wrapped by every ingestion error that concerns a
// single record.
var ErrInvalidRecord = errors.New("invalid investor record")

// RecordError describes why a record was rejected at ingestion.
type RecordError struct {
	Index  int
	ID     string
	Field  string
	Reason string
}

func (e *RecordError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("record %d (id %q): %s: %s", e.Index, e.ID, e.Field, e.Reason)
	}
	return fmt.Sprintf("record %d: %s: %s", e.Index, e.Field, e.Reason)
}

func (e *RecordError) Unwrap() error {
	return ErrInvalidRecord
}

// Format is a data file encoding.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "yaml"
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("unsupported data file extension %q (want .yaml, .yml or .json)", filepath.Ext(path))
	}
}

// Source loads investor snapshots from a data file. An empty Path serves the
// built-in sample.
type Source struct {
	Path string
}

// NewSource creates a Source for the given path.
func NewSource(path string) *Source {
	return &Source{Path: path}
}

// Load returns a fresh snapshot. Each call allocates new records, so a
// snapshot handed to a view stays valid after later loads.
func (s *Source) Load() ([]*Investor, error) {
	if s.Path == "" {
		return Sample(), nil
	}
	return LoadFile(s.Path)
}

// LoadFile reads and ingests a YAML or JSON data file.
func LoadFile(path string) ([]*Investor, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer func() { _ = f.Close() }()

	investors, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return investors, nil
}

// Decode parses a data document, either a bare list of records or an object
// with an "investors" list, and ingests every record.
func Decode(r io.Reader, format Format) ([]*Investor, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}

	var records []record
	switch format {
	case FormatJSON:
		records, err = decodeJSON(data)
	default:
		records, err = decodeYAML(data)
	}
	if err != nil {
		return nil, err
	}
	return ingest(records)
}

func decodeJSON(data []byte) ([]record, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	if data[0] == '[' {
		var records []record
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parse investors JSON: %w", err)
		}
		return records, nil
	}
	var wrapper fileOutput
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("parse investors JSON: %w", err)
	}
	return wrapper.Investors, nil
}

func decodeYAML(data []byte) ([]record, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse investors YAML: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind == yaml.SequenceNode {
		var records []record
		if err := root.Decode(&records); err != nil {
			return nil, fmt.Errorf("parse investors YAML: %w", err)
		}
		return records, nil
	}
	var wrapper fileOutput
	if err := root.Decode(&wrapper); err != nil {
		return nil, fmt.Errorf("parse investors YAML: %w", err)
	}
	return wrapper.Investors, nil
}

// idNamespace seeds the IDs derived for records that carry none.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/pengelbrecht/investors"))

// derivedID is stable across loads of the same document: it depends only on
// the record's name and position.
func derivedID(name string, index int) string {
	return uuid.NewSHA1(idNamespace, []byte(name+"\x00"+strconv.Itoa(index))).String()
}

// ingest validates records and converts them into investors. Portfolio
// strings are parsed here, once, so comparisons never touch display text.
func ingest(records []record) ([]*Investor, error) {
	investors := make([]*Investor, 0, len(records))
	seen := make(map[string]int, len(records))

	for i, r := range records {
		id := strings.TrimSpace(r.ID)
		fail := func(field, reason string) error {
			return &RecordError{Index: i, ID: id, Field: field, Reason: reason}
		}

		name := strings.TrimSpace(r.Name)
		if name == "" {
			return nil, fail("name", "empty")
		}

		if id == "" {
			id = derivedID(name, i)
		}
		if prev, dup := seen[id]; dup {
			return nil, fail("id", fmt.Sprintf("duplicate of record %d", prev))
		}
		seen[id] = i

		if r.Investments < 0 {
			return nil, fail("investments", "negative")
		}
		if r.SuccessfulExits < 0 {
			return nil, fail("successful_exits", "negative")
		}
		if math.IsNaN(r.Rating) || r.Rating < 0 || r.Rating > MaxRating {
			return nil, fail("rating", fmt.Sprintf("%.2f outside [0, %.0f]", r.Rating, MaxRating))
		}

		portfolio := decimal.Zero
		if r.Portfolio != "" {
			amount, err := ParseAmount(string(r.Portfolio))
			if err != nil {
				return nil, fail("portfolio", err.Error())
			}
			portfolio = amount
		}

		investors = append(investors, &Investor{
			ID:              id,
			Name:            name,
			Expertise:       Category(strings.TrimSpace(r.Expertise)),
			Investments:     r.Investments,
			Portfolio:       portfolio,
			Rating:          r.Rating,
			SuccessfulExits: r.SuccessfulExits,
			TicketSize:      r.TicketSize,
			Sectors:         append([]string(nil), r.Sectors...),
			Location:        r.Location,
			Verified:        r.Verified,
			Avatar:          r.Avatar,
		})
	}
	return investors, nil
}

// MaxRating is the upper bound of an investor rating.
const MaxRating = 5.0
