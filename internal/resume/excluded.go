package resume

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"time"
)

type ExcludedDocuments struct {
	Items []*ExcludedDocument
}

type ExcludedDocument struct {
	Name       string
	Path       string
	ExcludedAt time.Time
}

// LoadExcluded reads an exclude file. A missing or empty file is an empty list.
func LoadExcluded(path string) (*ExcludedDocuments, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &ExcludedDocuments{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &ExcludedDocuments{}, nil
	}

	var excluded ExcludedDocuments
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, err
	}
	return &excluded, nil
}

// Append adds entries whose names are not listed yet.
func (e *ExcludedDocuments) Append(other *ExcludedDocuments) {
	known := make(map[string]struct{}, len(e.Items))
	for _, item := range e.Items {
		known[item.Name] = struct{}{}
	}
	for _, item := range other.Items {
		if _, ok := known[item.Name]; ok {
			continue
		}
		known[item.Name] = struct{}{}
		e.Items = append(e.Items, item)
	}
}

func (e *ExcludedDocuments) Names() []string {
	names := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		names = append(names, item.Name)
	}
	return names
}

func (e *ExcludedDocuments) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}
