package logger

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStringFieldsSkipsBlank(t *testing.T) {
	fields := StringFields(
		StringField{Key: "  candidate  ", Value: "  jane.pdf  "},
		StringField{Key: FieldPath, Value: "\t"},
		StringField{Key: " ", Value: "orphan"},
	)

	if len(fields) != 1 || fields[0].Key != "candidate" || fields[0].String != "jane.pdf" {
		t.Fatalf("unexpected fields: %+v", fields)
	}
	if got := StringFields(); len(got) != 0 {
		t.Fatalf("expected no fields, got %d", len(got))
	}
}

func TestFieldHelpers(t *testing.T) {
	tests := []struct {
		name string
		log  func(*zap.Logger) *zap.Logger
		want map[string]any
	}{
		{
			name: "candidate",
			log: func(l *zap.Logger) *zap.Logger {
				return WithCandidateFields(l, "jane.pdf", "/resumes/jane.pdf")
			},
			want: map[string]any{FieldCandidate: "jane.pdf", FieldPath: "/resumes/jane.pdf"},
		},
		{
			name: "candidate without path",
			log: func(l *zap.Logger) *zap.Logger {
				return WithCandidateFields(l, "jane.pdf", "")
			},
			want: map[string]any{FieldCandidate: "jane.pdf"},
		},
		{
			name: "ai",
			log: func(l *zap.Logger) *zap.Logger {
				return WithAIFields(l, "gemini", "gemini-2.5-flash")
			},
			want: map[string]any{FieldProvider: "gemini", FieldModel: "gemini-2.5-flash"},
		},
		{
			name: "custom",
			log: func(l *zap.Logger) *zap.Logger {
				return WithFields(l, zap.String("folder", "/resumes"))
			},
			want: map[string]any{"folder": "/resumes"},
		},
		{
			name: "nothing",
			log: func(l *zap.Logger) *zap.Logger {
				return WithFields(l)
			},
			want: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, observed := observer.New(zapcore.InfoLevel)
			tt.log(zap.New(core)).Info("entry")

			entries := observed.All()
			if len(entries) != 1 {
				t.Fatalf("expected 1 entry, got %d", len(entries))
			}
			if diff := cmp.Diff(tt.want, entries[0].ContextMap()); diff != "" {
				t.Fatalf("unexpected fields (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHelpersAcceptNilLogger(t *testing.T) {
	for _, l := range []*zap.Logger{
		WithFields(nil, zap.String("k", "v")),
		WithCandidateFields(nil, "jane.pdf", ""),
		WithAIFields(nil, "gemini", ""),
	} {
		if l == nil {
			t.Fatalf("expected a no-op logger")
		}
		l.Info("must not panic")
	}
}
