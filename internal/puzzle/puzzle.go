// Package puzzle describes crossword layouts as data. Layouts come from YAML
// or JSON files, the built-in catalog or BigQuery, and are turned into a
// solvable hexword.Crossword by Build.
package puzzle

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"crosswarped.com/hexword"
	"crosswarped.com/hexword/pkg/hex"
)

// File is the on-disk form of a crossword layout.
type File struct {
	Name         string     `json:"name,omitempty" yaml:"name,omitempty"`
	Radius       int        `json:"radius" yaml:"radius" validate:"gte=0,lte=12"`
	Multiplicity int        `json:"multiplicity,omitempty" yaml:"multiplicity,omitempty" validate:"gte=0"`
	Lines        []LineSpec `json:"lines" yaml:"lines" validate:"required,min=1,dive"`
}

// LineSpec is one line of a layout. Exactly one of Pattern and Predicate
// is set.
type LineSpec struct {
	Q         int    `json:"q" yaml:"q"`
	R         int    `json:"r" yaml:"r"`
	Direction string `json:"direction" yaml:"direction" validate:"required,direction"`
	Pattern   string `json:"pattern,omitempty" yaml:"pattern,omitempty" validate:"required_without=Predicate,excluded_with=Predicate"`
	Predicate string `json:"predicate,omitempty" yaml:"predicate,omitempty" validate:"required_without=Pattern,predicate"`
}

// Format is a puzzle file encoding.
type Format int

const (
	YAML Format = iota
	JSON
)

// FormatOf picks the format from a file extension. Anything that is not
// .json is read as YAML.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return JSON
	}
	return YAML
}

// ErrInvalid matches every error caused by a malformed puzzle description:
// undecodable input, failed validation or an unknown builtin name.
var ErrInvalid = errors.New("invalid puzzle")

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("direction", validateDirection)
	_ = validate.RegisterValidation("predicate", validatePredicate)
}

func validateDirection(fl validator.FieldLevel) bool {
	_, err := hex.ParseDirection(fl.Field().String())
	return err == nil
}

func validatePredicate(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if name == "" {
		return true
	}
	_, ok := predicates[name]
	return ok
}

// Parse decodes, defaults and validates a puzzle. Unknown fields are an
// error in both formats.
func Parse(data []byte, format Format) (*File, error) {
	var f File
	switch format {
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("%w: decode json: %w", ErrInvalid, err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("%w: decode yaml: %w", ErrInvalid, err)
		}
	}

	f.applyDefaults()
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Load reads and parses the puzzle file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if f.Name == "" {
		f.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return f, nil
}

func (f *File) applyDefaults() {
	if f.Multiplicity == 0 {
		f.Multiplicity = hexword.DefaultMultiplicity
	}
}

// Validate checks the structure of f. Whether the lines form a solvable
// layout is checked later by hexword.Crossword.Validate.
func (f *File) Validate() error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Line returns the hexword line described by s.
func (s LineSpec) Line() (hexword.Line, error) {
	d, err := hex.ParseDirection(s.Direction)
	if err != nil {
		return hexword.Line{}, err
	}
	return hexword.Line{Start: hex.New(s.Q, s.R), Direction: d}, nil
}

// Search compiles the constraint of s.
func (s LineSpec) Search() (hexword.Search, error) {
	if s.Predicate != "" {
		return Lookup(s.Predicate)
	}
	return hexword.NewExpression(s.Pattern)
}

// Build turns f into a crossword. Every line is tried; the returned error
// joins the problems of all failing lines.
func (f *File) Build() (*hexword.Crossword, error) {
	cw := hexword.New(f.Radius, hexword.WithMultiplicity(f.Multiplicity))

	var errs []error
	for _, spec := range f.Lines {
		line, err := spec.Line()
		if err != nil {
			errs = append(errs, &hexword.ConfigError{Kind: hexword.InvalidLine, Line: line, Err: err})
			continue
		}
		search, err := spec.Search()
		if err != nil {
			errs = append(errs, &hexword.ConfigError{Kind: hexword.Pattern, Line: line, Err: err})
			continue
		}
		if err := cw.Add(line, search); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cw, nil
}
