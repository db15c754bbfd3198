package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/iota-uz/rangepicker/modules/rangepicker/domain"
	"github.com/iota-uz/rangepicker/pkg/blockedrange"
	"github.com/iota-uz/rangepicker/pkg/calendar"
)

var ErrUnsupportedFormat = errors.New("unsupported blocked-range file format")

type rangeRecord struct {
	ResourceID string `json:"resource_id" yaml:"resource_id" toml:"resource_id"`
	Start      string `json:"start" yaml:"start" toml:"start"`
	End        string `json:"end" yaml:"end" toml:"end"`
}

type rangeFile struct {
	Ranges []rangeRecord `json:"ranges" yaml:"ranges" toml:"ranges"`
}

// FileBlockedRangeRepository reads ranges from a .json, .yaml/.yml or .toml
// file. The file is re-read on every List so edits apply to the next session.
type FileBlockedRangeRepository struct {
	path string
	loc  *time.Location
}

var _ domain.BlockedRangeRepository = (*FileBlockedRangeRepository)(nil)

func NewFileBlockedRangeRepository(path string, loc *time.Location) *FileBlockedRangeRepository {
	if loc == nil {
		loc = time.UTC
	}
	return &FileBlockedRangeRepository{path: path, loc: loc}
}

func (r *FileBlockedRangeRepository) List(ctx context.Context, resourceID uuid.UUID, from time.Time) ([]blockedrange.Range, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, errors.Wrap(err, "read blocked ranges")
	}
	file, err := decode(r.path, data)
	if err != nil {
		return nil, err
	}

	out := make([]blockedrange.Range, 0, len(file.Ranges))
	for i, rec := range file.Ranges {
		if resourceID != uuid.Nil && rec.ResourceID != "" {
			id, err := uuid.Parse(rec.ResourceID)
			if err != nil {
				return nil, errors.Wrapf(err, "ranges[%d].resource_id", i)
			}
			if id != resourceID {
				continue
			}
		}
		rng, err := r.parseRecord(i, rec)
		if err != nil {
			return nil, err
		}
		if !from.IsZero() && rng.End.Before(from) {
			continue
		}
		out = append(out, rng)
	}
	return out, nil
}

func (r *FileBlockedRangeRepository) parseRecord(i int, rec rangeRecord) (blockedrange.Range, error) {
	start, err := calendar.ParseInstant(rec.Start, r.loc)
	if err != nil {
		return blockedrange.Range{}, errors.Wrapf(domain.ErrInvalidInstant, "ranges[%d].start: %v", i, err)
	}
	end, err := calendar.ParseInstant(rec.End, r.loc)
	if err != nil {
		return blockedrange.Range{}, errors.Wrapf(domain.ErrInvalidInstant, "ranges[%d].end: %v", i, err)
	}
	if end.Before(start) {
		return blockedrange.Range{}, errors.Wrapf(domain.ErrInvertedRange, "ranges[%d]", i)
	}
	return blockedrange.Range{Start: start, End: end}, nil
}

func decode(path string, data []byte) (rangeFile, error) {
	var file rangeFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&file); err != nil {
			return file, errors.Wrap(err, "decode json")
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&file); err != nil {
			return file, errors.Wrap(err, "decode yaml")
		}
	case ".toml":
		md, err := toml.Decode(string(data), &file)
		if err != nil {
			return file, errors.Wrap(err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return file, errors.Errorf("decode toml: unknown keys %v", undecoded)
		}
	default:
		return file, errors.Wrapf(ErrUnsupportedFormat, "%q", ext)
	}
	return file, nil
}
