// Package resume holds the resume files found in an input folder and the
// candidates parsed from them.
package resume

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

type Document struct {
	// Name is the file name and identifies the candidate within a run.
	Name string `json:"name"`
	Path string `json:"path"`
}

type Documents struct {
	Dir   string
	Items []*Document
}

// Scan lists the regular files of dir, sorted by name. Subdirectories are not
// visited.
func Scan(dir string) (*Documents, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", dir, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%q is not a directory", abs)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, err
	}

	docs := &Documents{Dir: abs}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		docs.Items = append(docs.Items, &Document{
			Name: entry.Name(),
			Path: filepath.Join(abs, entry.Name()),
		})
	}

	docs.Sort()
	return docs, nil
}

func (d *Documents) Sort() {
	sort.Slice(d.Items, func(i, j int) bool {
		return d.Items[i].Name < d.Items[j].Name
	})
}

func (d *Documents) Len() int {
	return len(d.Items)
}

func (d *Documents) Names() []string {
	names := make([]string, 0, len(d.Items))
	for _, doc := range d.Items {
		names = append(names, doc.Name)
	}
	return names
}

func (d *Documents) FindByName(name string) *Document {
	for _, doc := range d.Items {
		if doc.Name == name {
			return doc
		}
	}
	return nil
}

// Keep retains the documents accepted by keep and returns the names of the
// dropped ones. Order is preserved.
func (d *Documents) Keep(keep func(*Document) bool) []string {
	var dropped []string
	kept := d.Items[:0]
	for _, doc := range d.Items {
		if keep(doc) {
			kept = append(kept, doc)
			continue
		}
		dropped = append(dropped, doc.Name)
	}
	d.Items = kept
	return dropped
}

// Exclude removes documents by name and returns the removed names.
func (d *Documents) Exclude(names []string) []string {
	targets := make(map[string]struct{}, len(names))
	for _, name := range names {
		targets[name] = struct{}{}
	}

	return d.Keep(func(doc *Document) bool {
		_, ok := targets[doc.Name]
		return !ok
	})
}

func (d *Documents) ToExcluded() *ExcludedDocuments {
	excluded := &ExcludedDocuments{}
	now := time.Now().UTC()
	for _, doc := range d.Items {
		excluded.Items = append(excluded.Items, &ExcludedDocument{
			Name:       doc.Name,
			Path:       doc.Path,
			ExcludedAt: now,
		})
	}
	return excluded
}
