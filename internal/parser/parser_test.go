package parser

import (
	"errors"
	"reflect"
	"testing"
)

func TestLocate(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		start, end    string
		wantRemainder string
		wantBody      string
		wantErr       error
	}{
		{
			name:          "discards code before the block",
			text:          "this is some random code [\n* this is a random piece\n* of doc block\n]\nwith extra\ncode after that",
			start:         "[",
			end:           "]",
			wantRemainder: "\nwith extra\ncode after that",
			wantBody:      "\n* this is a random piece\n* of doc block\n",
		},
		{
			name:     "multi character delimiters",
			text:     "prefix/**body*/suffix",
			start:    "/**",
			end:      "*/",
			wantBody: "body",

			wantRemainder: "suffix",
		},
		{
			name:          "only the first block",
			text:          "<!--a--> <!--b-->",
			start:         "<!--",
			end:           "-->",
			wantBody:      "a",
			wantRemainder: " <!--b-->",
		},
		{
			name:    "no start delimiter",
			text:    "this is some random code [\n* of non-doc block\n]",
			start:   "/**",
			end:     "*/",
			wantErr: ErrBlockNotFound,
		},
		{
			name:    "end before start does not count",
			text:    "*/ and then /** never closed",
			start:   "/**",
			end:     "*/",
			wantErr: ErrUnterminatedBlock,
		},
		{
			name:    "empty text",
			text:    "",
			start:   "/**",
			end:     "*/",
			wantErr: ErrBlockNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remainder, body, err := Locate(tt.text, tt.start, tt.end)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Locate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Locate() unexpected error: %v", err)
			}
			if body != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
			if remainder != tt.wantRemainder {
				t.Errorf("remainder = %q, want %q", remainder, tt.wantRemainder)
			}
		})
	}
}

func TestLocate_UnterminatedIsNotFound(t *testing.T) {
	_, _, err := Locate("/** open", "/**", "*/")
	if !errors.Is(err, ErrBlockNotFound) {
		t.Errorf("unterminated block should match ErrBlockNotFound, got %v", err)
	}
	if !errors.Is(err, ErrUnterminatedBlock) {
		t.Errorf("expected ErrUnterminatedBlock, got %v", err)
	}
}

func TestExtractHeader(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantHeader string
		wantLines  string
		wantErr    bool
	}{
		{
			name:       "header after leading text",
			body:       " \n * ## Parsing\n *\n * text\n",
			wantHeader: "## Parsing",
			wantLines:  " *\n * text\n",
		},
		{
			name:       "header is the last line",
			body:       "\n# Title",
			wantHeader: "# Title",
			wantLines:  "",
		},
		{
			name:       "crlf line ending",
			body:       "# Title\r\n* line\r\n",
			wantHeader: "# Title",
			wantLines:  "* line\r\n",
		},
		{
			name:    "no header",
			body:    "just text\nno header\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, header, err := ExtractHeader(tt.body)
			if tt.wantErr {
				if !errors.Is(err, ErrNoHeader) {
					t.Fatalf("ExtractHeader() error = %v, want ErrNoHeader", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractHeader() unexpected error: %v", err)
			}
			if header != tt.wantHeader {
				t.Errorf("header = %q, want %q", header, tt.wantHeader)
			}
			if lines != tt.wantLines {
				t.Errorf("lines = %q, want %q", lines, tt.wantLines)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		lines     string
		delimiter rune
		want      []string
	}{
		{
			name:      "strips delimiter and spaces",
			lines:     "* line one\n*   line two\nno-marker line",
			delimiter: '*',
			want:      []string{"line one", "line two", "no-marker line"},
		},
		{
			name:      "keeps empty lines and trailing spaces",
			lines:     " *\n * text  \n",
			delimiter: '*',
			want:      []string{"", "text  "},
		},
		{
			name:      "interleaved delimiter and spaces",
			lines:     "// / hello // world",
			delimiter: '/',
			want:      []string{"hello // world"},
		},
		{
			name:      "empty body",
			lines:     "",
			delimiter: '*',
			want:      []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.lines, tt.delimiter)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize(%q) = %q, want %q", tt.lines, got, tt.want)
			}
		})
	}
}

func TestStripHeader(t *testing.T) {
	tests := map[string]string{
		"# Intro":     "Intro",
		"## Parsing ": "Parsing",
		"#NoSpace":    "NoSpace",
		"Plain":       "Plain",
	}
	for in, want := range tests {
		if got := StripHeader(in); got != want {
			t.Errorf("StripHeader(%q) = %q, want %q", in, got, want)
		}
	}
}
