package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/giygas/interactions-api/catalog/entities"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/encoding/charmap"
	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk layout shared by the JSON, YAML and TOML formats
type catalogFile struct {
	Drugs    []entities.DrugRecord    `json:"drugs" yaml:"drugs" toml:"drugs"`
	Symptoms []entities.SymptomRecord `json:"symptoms" yaml:"symptoms" toml:"symptoms"`
}

// SupportedEncodings lists the accepted values for the file encoding
var SupportedEncodings = []string{"utf-8", "iso-8859-1", "windows-1252"}

// LoadFile reads a catalog from a .json, .yaml/.yml or .toml file.
// Files in a single-byte encoding are converted to UTF-8 before parsing.
func LoadFile(path, encoding string) (*Catalog, error) {
	cleanPath := filepath.Clean(path)

	raw, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", cleanPath, err)
	}

	content, err := decode(raw, encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to decode catalog file %s: %w", cleanPath, err)
	}

	var file catalogFile
	switch ext := strings.ToLower(filepath.Ext(cleanPath)); ext {
	case ".json":
		err = json.Unmarshal(content, &file)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(content, &file)
	case ".toml":
		err = toml.Unmarshal(content, &file)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q (want .json, .yaml, .yml or .toml)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", cleanPath, err)
	}

	if len(file.Drugs) == 0 {
		return nil, fmt.Errorf("catalog file %s contains no drugs", cleanPath)
	}

	return New(file.Drugs, file.Symptoms)
}

func decode(raw []byte, encoding string) ([]byte, error) {
	var reader io.Reader
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "utf-8", "utf8":
		return raw, nil
	case "iso-8859-1", "latin1":
		reader = charmap.ISO8859_1.NewDecoder().Reader(bytes.NewReader(raw))
	case "windows-1252", "cp1252":
		reader = charmap.Windows1252.NewDecoder().Reader(bytes.NewReader(raw))
	default:
		return nil, fmt.Errorf("unsupported encoding %q, must be one of: %v", encoding, SupportedEncodings)
	}
	return io.ReadAll(reader)
}
