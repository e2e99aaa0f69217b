// Package render turns a stream of response fragments into colored
// terminal output: fenced code blocks are buffered until complete and
// syntax-highlighted, inline code spans are colored, everything else
// passes through line by line.
package render

import (
	"bytes"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/fatih/color"
)

// Options configure a Renderer.
type Options struct {
	// Raw disables all coloring and passes fragments through.
	Raw bool
	// CodeBlockTheme is a chroma style name for fenced blocks.
	CodeBlockTheme string
	// InlineCodeTheme is a color spec for `inline code`, e.g.
	// "blue", "#5fd7ff", or "cyan on black".
	InlineCodeTheme string
}

// Renderer is a small state machine over the fragment stream. Input is
// buffered per line so fence markers split across fragment boundaries
// are still detected.
type Renderer struct {
	w      io.Writer
	raw    bool
	style  string
	inline *color.Color

	line    bytes.Buffer
	inFence bool
	lang    string
	block   bytes.Buffer
}

// New creates a renderer writing to w.
func New(w io.Writer, opts Options) *Renderer {
	inline, err := ParseInlineTheme(opts.InlineCodeTheme)
	if err != nil {
		inline = color.New(color.FgBlue)
	}
	return &Renderer{
		w:      w,
		raw:    opts.Raw,
		style:  opts.CodeBlockTheme,
		inline: inline,
	}
}

// Write feeds one stream fragment to the renderer.
func (r *Renderer) Write(fragment string) error {
	if r.raw {
		_, err := io.WriteString(r.w, fragment)
		return err
	}

	r.line.WriteString(fragment)
	for {
		buf := r.line.String()
		nl := strings.IndexByte(buf, '\n')
		if nl < 0 {
			return nil
		}
		line := buf[:nl]
		r.line.Reset()
		r.line.WriteString(buf[nl+1:])
		if err := r.handleLine(line); err != nil {
			return err
		}
	}
}

// Flush emits any buffered partial line or unterminated code block.
// Call once at stream end.
func (r *Renderer) Flush() error {
	if r.raw {
		return nil
	}

	if r.line.Len() > 0 {
		line := r.line.String()
		r.line.Reset()
		if err := r.handleLine(line); err != nil {
			return err
		}
	}

	if r.inFence && r.block.Len() > 0 {
		// Stream ended inside a fence: emit what we have.
		if err := r.emitBlock(); err != nil {
			return err
		}
	}
	r.inFence = false
	return nil
}

func (r *Renderer) handleLine(line string) error {
	trimmed := strings.TrimSpace(line)

	switch {
	case !r.inFence && strings.HasPrefix(trimmed, "```"):
		r.inFence = true
		r.lang = strings.TrimSpace(strings.TrimPrefix(trimmed, "```"))
		r.block.Reset()
		return nil

	case r.inFence && strings.HasPrefix(trimmed, "```"):
		r.inFence = false
		return r.emitBlock()

	case r.inFence:
		r.block.WriteString(line)
		r.block.WriteByte('\n')
		return nil

	default:
		if _, err := io.WriteString(r.w, r.colorInline(line)); err != nil {
			return err
		}
		_, err := io.WriteString(r.w, "\n")
		return err
	}
}

func (r *Renderer) emitBlock() error {
	out := highlight(r.block.String(), r.lang, r.style)
	r.block.Reset()
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	_, err := io.WriteString(r.w, out)
	return err
}

// colorInline colors complete `code` spans within a line. An unmatched
// backtick is left as-is.
func (r *Renderer) colorInline(line string) string {
	if strings.Count(line, "`") < 2 {
		return line
	}

	var b strings.Builder
	rest := line
	for {
		open := strings.IndexByte(rest, '`')
		if open < 0 {
			b.WriteString(rest)
			return b.String()
		}
		end := strings.IndexByte(rest[open+1:], '`')
		if end < 0 {
			b.WriteString(rest)
			return b.String()
		}
		b.WriteString(rest[:open])
		b.WriteString(r.inline.Sprint(rest[open+1 : open+1+end]))
		rest = rest[open+end+2:]
	}
}

// highlight runs code through chroma with the configured style. On any
// failure the code is returned unstyled.
func highlight(code, language, styleName string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		return code
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return buf.String()
}
