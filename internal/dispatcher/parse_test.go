package dispatcher_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dshills/linedit/internal/dispatcher"
	"github.com/dshills/linedit/internal/engine/history"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"empty", "", nil},
		{"blank", "   \t ", nil},
		{"single word", "undo", []string{"undo"}},
		{"collapses whitespace", "  delete   1:2\t3 ", []string{"delete", "1:2", "3"}},
		{"quoted spaces", `append "hello world"`, []string{"append", "hello world"}},
		{"empty quotes", `append ""`, []string{"append", ""}},
		{"escaped quote", `append "say \"hi\""`, []string{"append", `say "hi"`}},
		{"newline escape", `insert 1:1 "a\nb"`, []string{"insert", "1:1", "a\nb"}},
		{"tab escape", `append "a\tb"`, []string{"append", "a\tb"}},
		{"backslash escape", `append "a\\n"`, []string{"append", `a\n`}},
		{"unknown escape kept", `append "a\qb"`, []string{"append", `a\qb`}},
		{"bare backslash kept", `load C:\dir\file`, []string{"load", `C:\dir\file`}},
		{"adjacent quoted text", `append pre"fix and"post`, []string{"append", "prefix andpost"}},
		{"unicode", `append "héllo 世界"`, []string{"append", "héllo 世界"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dispatcher.Tokenize(tt.line)
			if err != nil {
				t.Fatalf("Tokenize(%q) error: %v", tt.line, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestTokenizeUnterminatedQuote(t *testing.T) {
	_, err := dispatcher.Tokenize(`append "oops`)
	if !errors.Is(err, dispatcher.ErrSyntax) {
		t.Errorf("expected ErrSyntax, got %v", err)
	}
}

func TestTokenizeRoundTripsQuote(t *testing.T) {
	texts := []string{"plain", "two words", `with "quotes"`, `back\slash`, "multi\nline", "tab\there", ""}
	for _, text := range texts {
		got, err := dispatcher.Tokenize("append " + history.Quote(text))
		if err != nil {
			t.Fatalf("Tokenize error for %q: %v", text, err)
		}
		if len(got) != 2 || got[1] != text {
			t.Errorf("round trip of %q gave %q", text, got)
		}
	}
}

func TestParse(t *testing.T) {
	name, args, err := dispatcher.Parse(`replace 1:2 3 "x y"`)
	if err != nil {
		t.Fatal(err)
	}
	if name != "replace" {
		t.Errorf("name = %q", name)
	}
	if !reflect.DeepEqual(args, []string{"1:2", "3", "x y"}) {
		t.Errorf("args = %q", args)
	}

	name, args, err = dispatcher.Parse("   ")
	if err != nil || name != "" || args != nil {
		t.Errorf("blank line: got %q %q %v", name, args, err)
	}
}

func TestParseLineCol(t *testing.T) {
	tests := []struct {
		in      string
		line    int
		col     int
		wantErr bool
	}{
		{"1:1", 1, 1, false},
		{"12:40", 12, 40, false},
		{"0:5", 0, 5, false},
		{"3", 0, 0, true},
		{"a:1", 0, 0, true},
		{"1:b", 0, 0, true},
		{":", 0, 0, true},
		{"", 0, 0, true},
	}

	for _, tt := range tests {
		line, col, err := dispatcher.ParseLineCol(tt.in)
		if tt.wantErr {
			if !errors.Is(err, dispatcher.ErrUsage) {
				t.Errorf("ParseLineCol(%q) error = %v, want ErrUsage", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseLineCol(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if line != tt.line || col != tt.col {
			t.Errorf("ParseLineCol(%q) = %d:%d, want %d:%d", tt.in, line, col, tt.line, tt.col)
		}
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		in      string
		start   int
		end     int
		wantErr bool
	}{
		{"2:4", 2, 4, false},
		{"3", 3, 3, false},
		{"5:1", 5, 1, false},
		{"x", 0, 0, true},
		{"1:", 0, 0, true},
		{"", 0, 0, true},
	}

	for _, tt := range tests {
		start, end, err := dispatcher.ParseRange(tt.in)
		if tt.wantErr {
			if !errors.Is(err, dispatcher.ErrUsage) {
				t.Errorf("ParseRange(%q) error = %v, want ErrUsage", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRange(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if start != tt.start || end != tt.end {
			t.Errorf("ParseRange(%q) = %d:%d, want %d:%d", tt.in, start, end, tt.start, tt.end)
		}
	}
}
