package filtering

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/skill-matrix/internal/resume"
)

var defaultExtensions = []string{".pdf"}

type pdfOnlyFilter struct {
	extensions map[string]struct{}
}

// NewPDFOnly creates a filter that keeps documents with a PDF extension. Extra
// extensions can be allowed through Config.Extensions.
func NewPDFOnly() Filter {
	return &pdfOnlyFilter{}
}

func (f *pdfOnlyFilter) Name() string { return "pdf_only" }

func (f *pdfOnlyFilter) Disable(string) {}

func (f *pdfOnlyFilter) IsEnabled() bool { return true }

func (f *pdfOnlyFilter) Validate(cfg *Config) error {
	exts := defaultExtensions
	if cfg != nil && len(cfg.Extensions) > 0 {
		exts = cfg.Extensions
	}

	f.extensions = make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		f.extensions[ext] = struct{}{}
	}

	if len(f.extensions) == 0 {
		return fmt.Errorf("at least one extension is required")
	}
	return nil
}

func (f *pdfOnlyFilter) Apply(_ context.Context, deps Deps, docs *resume.Documents) (*resume.Documents, Step, error) {
	initial := docs.Len()
	dropped := docs.Keep(func(doc *resume.Document) bool {
		_, ok := f.extensions[strings.ToLower(filepath.Ext(doc.Name))]
		return ok
	})

	if len(dropped) > 0 {
		deps.Logger.Debug("skipping unsupported files", zap.Strings("files", dropped))
	}

	return docs, Step{Initial: initial, Dropped: len(dropped), Left: docs.Len()}, nil
}

func (f *pdfOnlyFilter) Status() Status {
	exts := make([]string, 0, len(f.extensions))
	for ext := range f.extensions {
		exts = append(exts, ext)
	}
	details := map[string]string{}
	if len(exts) > 0 {
		details["extensions"] = strings.Join(exts, ",")
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}

type safePathFilter struct {
	disabled bool
	reason   string
}

// NewSafePath creates a filter that drops documents resolving outside the input folder,
// for example through symlinks.
func NewSafePath() Filter {
	return &safePathFilter{}
}

func (f *safePathFilter) Name() string { return "safe_path" }

func (f *safePathFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *safePathFilter) IsEnabled() bool { return !f.disabled }

func (f *safePathFilter) Validate(*Config) error { return nil }

func (f *safePathFilter) Apply(_ context.Context, deps Deps, docs *resume.Documents) (*resume.Documents, Step, error) {
	initial := docs.Len()

	base, err := filepath.EvalSymlinks(docs.Dir)
	if err != nil {
		return docs, Step{}, fmt.Errorf("resolving input folder: %w", err)
	}

	dropped := docs.Keep(func(doc *resume.Document) bool {
		ok, err := isWithin(base, doc.Path)
		if err != nil {
			deps.Logger.Warn("skipping unresolvable file", zap.String("path", doc.Path), zap.Error(err))
			return false
		}
		if !ok {
			deps.Logger.Warn("skipping unsafe file path", zap.String("path", doc.Path))
		}
		return ok
	})

	return docs, Step{Initial: initial, Dropped: len(dropped), Left: docs.Len()}, nil
}

func (f *safePathFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason}
}

func isWithin(base, path string) (bool, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return false, err
	}
	rel, err := filepath.Rel(base, resolved)
	if err != nil {
		return false, nil
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)), nil
}

type excludeFileFilter struct {
	path string
}

// NewExcludeFile creates a filter that removes documents listed in the exclude file.
func NewExcludeFile() Filter {
	return &excludeFileFilter{}
}

func (f *excludeFileFilter) Name() string { return "exclude_file" }

func (f *excludeFileFilter) Disable(string) {}

func (f *excludeFileFilter) IsEnabled() bool { return true }

func (f *excludeFileFilter) Validate(cfg *Config) error {
	f.path = ""
	if cfg != nil {
		f.path = strings.TrimSpace(cfg.ExcludeFile)
	}
	return nil
}

func (f *excludeFileFilter) Apply(_ context.Context, deps Deps, docs *resume.Documents) (*resume.Documents, Step, error) {
	initial := docs.Len()
	if f.path == "" {
		return docs, Step{Initial: initial, Dropped: 0, Left: docs.Len()}, nil
	}

	excluded, err := resume.LoadExcluded(f.path)
	if err != nil {
		return docs, Step{}, fmt.Errorf("getting excluded resumes from file: %w", err)
	}

	removed := docs.Exclude(excluded.Names())
	if len(removed) > 0 {
		deps.Logger.Info("excluding resumes based on exclude file",
			zap.String("path", f.path),
			zap.Strings("excluded_resumes", removed),
			zap.Int("resumes_left", docs.Len()),
		)
	}

	return docs, Step{Initial: initial, Dropped: len(removed), Left: docs.Len()}, nil
}

func (f *excludeFileFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}
