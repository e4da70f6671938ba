package output

import "testing"

func TestNewTimelineReportWriter(t *testing.T) {
	tests := []struct {
		name   string
		format OutputFormat
	}{
		{name: "Console", format: FormatConsole},
		{name: "JSON", format: FormatJSON},
		{name: "CSV", format: FormatCSV},
		{name: "Markdown", format: FormatMarkdown},
		{name: "CI", format: FormatCI},
		{name: "Unknown defaults to Console", format: "unknown"},
		{name: "Empty defaults to Console", format: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer := NewTimelineReportWriter(tt.format)
			if writer == nil {
				t.Fatal("NewTimelineReportWriter returned nil")
			}

			switch tt.format {
			case FormatJSON:
				if _, ok := writer.(*JSONTimelineWriter); !ok {
					t.Errorf("Expected *JSONTimelineWriter for format %q", tt.format)
				}
			case FormatCSV:
				if _, ok := writer.(*CSVTimelineWriter); !ok {
					t.Errorf("Expected *CSVTimelineWriter for format %q", tt.format)
				}
			case FormatMarkdown:
				if _, ok := writer.(*MarkdownTimelineWriter); !ok {
					t.Errorf("Expected *MarkdownTimelineWriter for format %q", tt.format)
				}
			case FormatCI:
				if _, ok := writer.(*CITimelineWriter); !ok {
					t.Errorf("Expected *CITimelineWriter for format %q", tt.format)
				}
			default:
				if _, ok := writer.(*ConsoleTimelineWriter); !ok {
					t.Errorf("Expected *ConsoleTimelineWriter for format %q", tt.format)
				}
			}
		})
	}
}

func TestNewCommitListWriter(t *testing.T) {
	tests := []struct {
		name   string
		format OutputFormat
	}{
		{name: "Console", format: FormatConsole},
		{name: "JSON", format: FormatJSON},
		{name: "CSV", format: FormatCSV},
		{name: "Markdown", format: FormatMarkdown},
		{name: "CI", format: FormatCI},
		{name: "Unknown defaults to Console", format: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer := NewCommitListWriter(tt.format)
			if writer == nil {
				t.Fatal("NewCommitListWriter returned nil")
			}

			switch tt.format {
			case FormatJSON:
				if _, ok := writer.(*JSONCommitListWriter); !ok {
					t.Errorf("Expected *JSONCommitListWriter for format %q", tt.format)
				}
			case FormatCSV:
				if _, ok := writer.(*CSVCommitListWriter); !ok {
					t.Errorf("Expected *CSVCommitListWriter for format %q", tt.format)
				}
			case FormatMarkdown:
				if _, ok := writer.(*MarkdownCommitListWriter); !ok {
					t.Errorf("Expected *MarkdownCommitListWriter for format %q", tt.format)
				}
			case FormatCI:
				if _, ok := writer.(*CICommitListWriter); !ok {
					t.Errorf("Expected *CICommitListWriter for format %q", tt.format)
				}
			default:
				if _, ok := writer.(*ConsoleCommitListWriter); !ok {
					t.Errorf("Expected *ConsoleCommitListWriter for format %q", tt.format)
				}
			}
		})
	}
}
