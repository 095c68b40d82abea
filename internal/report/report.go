// Package report renders parse results as text diagnostics or as JSON and
// YAML documents.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/orizon-lang/kestrel/internal/lexer"
	"github.com/orizon-lang/kestrel/internal/parser"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Result is the outcome of parsing one file
type Result struct {
	File    string
	Source  string
	Program *parser.Program
	Errors  parser.ParseErrors
	Tokens  int
	RunID   string
}

// Parse parses source and collects the result
func Parse(file, source, runID string, opts ...parser.Option) *Result {
	p := parser.New(source, file, opts...)
	program, errs := p.Parse()
	return &Result{
		File:    file,
		Source:  source,
		Program: program,
		Errors:  errs,
		Tokens:  p.Consumed(),
		RunID:   runID,
	}
}

// OK reports whether the file parsed without diagnostics
func (r *Result) OK() bool {
	return len(r.Errors) == 0
}

// Renderer writes results in one output format
type Renderer struct {
	out    io.Writer
	format string
	styles Styles
}

// NewRenderer creates a renderer. Unknown formats are rejected.
func NewRenderer(out io.Writer, format string, color bool) (*Renderer, error) {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
	return &Renderer{out: out, format: format, styles: NewStyles(out, color)}, nil
}

// AST writes the syntax tree of res followed by its diagnostics
func (r *Renderer) AST(res *Result) error {
	if r.format != FormatText {
		return r.encode(NewDocument(res))
	}

	if res.Program != nil {
		for _, stmt := range res.Program.Statements {
			if _, err := fmt.Fprintln(r.out, stmt.String()); err != nil {
				return err
			}
		}
	}
	return r.diagnostics(res)
}

// Check writes only the diagnostics of res
func (r *Renderer) Check(res *Result) error {
	if r.format != FormatText {
		doc := NewDocument(res)
		doc.Program = nil
		return r.encode(doc)
	}
	return r.diagnostics(res)
}

// Tokens writes a token listing, one token per line
func (r *Renderer) Tokens(file string, tokens []lexer.Token) error {
	if r.format != FormatText {
		type entry struct {
			Type     string `json:"type" yaml:"type"`
			Literal  string `json:"literal,omitempty" yaml:"literal,omitempty"`
			Position string `json:"position" yaml:"position"`
		}
		entries := make([]entry, len(tokens))
		for i, tok := range tokens {
			entries[i] = entry{Type: tok.Type.String(), Literal: tok.Literal, Position: tok.Span.Start.String()}
		}
		return r.encode(map[string]interface{}{"file": file, "tokens": entries})
	}

	for _, tok := range tokens {
		pos := fmt.Sprintf("%s:%s", file, tok.Span.Start)
		line := fmt.Sprintf("%-16s %s", r.styles.render(r.styles.Position, pos), r.styles.render(r.styles.Kind, tok.Type.String()))
		if tok.Literal != "" && tok.Literal != tok.Type.String() {
			line += fmt.Sprintf(" %q", tok.Literal)
		}
		if _, err := fmt.Fprintln(r.out, line); err != nil {
			return err
		}
	}
	return nil
}

// Summary writes a one-line total over several results. It is a no-op for
// machine-readable formats.
func (r *Renderer) Summary(results []*Result) error {
	if r.format != FormatText {
		return nil
	}

	failed, diagnostics := 0, 0
	for _, res := range results {
		if !res.OK() {
			failed++
		}
		diagnostics += len(res.Errors)
	}

	line := fmt.Sprintf("%d file(s) parsed, %d with errors, %d diagnostic(s)", len(results), failed, diagnostics)
	if failed == 0 {
		line = r.styles.render(r.styles.Success, line)
	} else {
		line = r.styles.render(r.styles.Severity, line)
	}
	_, err := fmt.Fprintln(r.out, line)
	return err
}

// diagnostics writes each error as `file:line:col: error: message` followed
// by the offending source line and a caret
func (r *Renderer) diagnostics(res *Result) error {
	lines := strings.Split(res.Source, "\n")

	for _, err := range res.Errors {
		var b strings.Builder
		fmt.Fprintf(&b, "%s: %s %s\n",
			r.styles.render(r.styles.Position, err.Position.String()),
			r.styles.render(r.styles.Severity, "error:"),
			err.Message)

		if line := err.Position.Line; line >= 1 && line <= len(lines) {
			text := strings.TrimRight(lines[line-1], "\r")
			fmt.Fprintf(&b, "    %s\n", r.styles.render(r.styles.Excerpt, text))
			fmt.Fprintf(&b, "    %s%s\n", caretPadding(text, err.Position.Column), r.styles.render(r.styles.Caret, "^"))
		}

		if _, werr := io.WriteString(r.out, b.String()); werr != nil {
			return werr
		}
	}
	return nil
}

// caretPadding returns the whitespace that puts a caret under column, keeping
// tabs so the caret lines up with the excerpt
func caretPadding(text string, column int) string {
	var b strings.Builder
	col := 1
	for _, ch := range text {
		if col >= column {
			break
		}
		if ch == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteRune(' ')
		}
		col++
	}
	for ; col < column; col++ {
		b.WriteRune(' ')
	}
	return b.String()
}

func (r *Renderer) encode(v interface{}) error {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
	}
	return nil
}
