package document

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/specialistvlad/skymodel/internal/ctxlog"
)

// Format identifies a document syntax.
type Format string

const (
	YAML Format = "yaml"
	JSON Format = "json"
)

// Extensions lists the file extensions Load understands.
var Extensions = []string{".yaml", ".yml", ".json"}

// FormatOf picks the format from the location's extension.
func FormatOf(location string) (Format, error) {
	switch strings.ToLower(path.Ext(location)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	}
	return "", fmt.Errorf("%w: '%s' (want one of %s)", ErrUnsupportedFormat, location, strings.Join(Extensions, ", "))
}

// Decode parses data in the given format.
func Decode(format Format, name string, data []byte) (*Map, error) {
	switch format {
	case YAML:
		return DecodeYAML(name, data)
	case JSON:
		return DecodeJSON(name, data)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

// Load fetches the document at location and decodes it.
func Load(ctx context.Context, f Fetcher, location string) (*Map, error) {
	logger := ctxlog.FromContext(ctx).With("location", location)

	format, err := FormatOf(location)
	if err != nil {
		return nil, err
	}
	data, err := f.Fetch(ctx, location)
	if err != nil {
		return nil, err
	}
	logger.Debug("Fetched document.", "bytes", len(data), "format", format)

	doc, err := Decode(format, location, data)
	if err != nil {
		return nil, err
	}
	logger.Debug("Decoded document.", "top_level_keys", doc.Len())
	return doc, nil
}
