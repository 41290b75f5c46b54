package quotes

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gocarina/gocsv"

	"github.com/julianstephens/wiserone/internal/models"
)

// Format identifies a supported quote source format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

const unsupportedFormatMsg = "unsupported file format"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// DetectFormat maps a file extension to a Format.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", &ParseError{Path: path, Msg: unsupportedFormatMsg}
	}
}

// Load reads a JSON or CSV quote source and returns a fresh Collection with
// every quote unused. The extension is checked before the file is opened.
func Load(path string, opts ...Option) (*Collection, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}

	qs, err := Decode(format, bytes.NewReader(data))
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) && pe.Path == "" {
			pe.Path = path
		}
		return nil, err
	}

	return New(qs, opts...), nil
}

// Decode parses quotes in the given format from r.
func Decode(format Format, r io.Reader) ([]models.Quote, error) {
	switch format {
	case FormatJSON:
		return DecodeJSON(r)
	case FormatCSV:
		return DecodeCSV(r)
	default:
		return nil, &ParseError{Msg: unsupportedFormatMsg}
	}
}

// DecodeJSON parses a document of the form {"quotes": [...]}.
func DecodeJSON(r io.Reader) ([]models.Quote, error) {
	var doc struct {
		Quotes *[]models.Quote `json:"quotes"`
	}
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, &ParseError{Msg: "invalid JSON", Err: err}
	}
	if err := dec.Decode(&json.RawMessage{}); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected content after document")
		}
		return nil, &ParseError{Msg: "invalid JSON", Err: err}
	}
	if doc.Quotes == nil {
		return nil, &ParseError{Msg: `missing "quotes" array`}
	}
	if err := validateAll(*doc.Quotes); err != nil {
		return nil, err
	}
	return *doc.Quotes, nil
}

// DecodeCSV parses one quote per row, mapping columns by the header row.
func DecodeCSV(r io.Reader) ([]models.Quote, error) {
	var qs []models.Quote
	if err := gocsv.Unmarshal(r, &qs); err != nil {
		return nil, &ParseError{Msg: "invalid CSV", Err: err}
	}
	if err := validateAll(qs); err != nil {
		return nil, err
	}
	return qs, nil
}

func validateAll(qs []models.Quote) error {
	for i, q := range qs {
		if err := validate.Struct(q); err != nil {
			return &ParseError{Msg: fmt.Sprintf("quote %d: %s", i+1, describe(err))}
		}
	}
	return nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fe.Field()+" is required")
		default:
			parts = append(parts, fmt.Sprintf("%s failed validation: %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(parts, ", ")
}
