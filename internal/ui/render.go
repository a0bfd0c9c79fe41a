package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/dmora/agentcmd"
)

// ChunkWriter is an agentcmd.Sink that prints chunks to a writer, either
// as text (status lines styled when color is on) or as JSON lines.
type ChunkWriter struct {
	mu    sync.Mutex
	w     io.Writer
	color bool
	json  bool
	enc   *json.Encoder
}

var _ agentcmd.Sink = (*ChunkWriter)(nil)

// jsonChunk is one JSON line: the chunk fields tagged with the event name.
type jsonChunk struct {
	Event string `json:"event"`
	agentcmd.StreamChunk
}

// NewChunkWriter returns a text ChunkWriter.
func NewChunkWriter(w io.Writer, color bool) *ChunkWriter {
	return &ChunkWriter{w: w, color: color}
}

// NewJSONChunkWriter returns a ChunkWriter that writes one JSON object per
// chunk.
func NewJSONChunkWriter(w io.Writer) *ChunkWriter {
	return &ChunkWriter{w: w, json: true, enc: json.NewEncoder(w)}
}

// Emit implements agentcmd.Sink. Write errors are dropped; the sink
// contract has no error path.
func (c *ChunkWriter) Emit(chunk agentcmd.StreamChunk) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.json {
		_ = c.enc.Encode(jsonChunk{Event: agentcmd.EventCLIStream, StreamChunk: chunk})
		return
	}
	_, _ = io.WriteString(c.w, c.render(chunk.Content))
}

// render styles launcher status lines. Agent output passes through
// untouched so terminal escape sequences from PTY sessions survive.
func (c *ChunkWriter) render(content string) string {
	if !c.color {
		return content
	}
	style, ok := statusStyle(content)
	if !ok {
		return content
	}
	// Style the text, keep the surrounding newlines outside the escapes.
	body := strings.Trim(content, "\n")
	if body == "" {
		return content
	}
	lead := content[:strings.Index(content, body)]
	trail := content[len(lead)+len(body):]
	return lead + style.Render(body) + trail
}

// statusStyle picks the style for a launcher-generated line.
func statusStyle(content string) (lipgloss.Style, bool) {
	s := strings.TrimLeft(content, "\n")
	switch {
	case strings.HasPrefix(s, "ERROR: "):
		return stderrStyle, true
	case strings.HasPrefix(s, "❌"):
		return errorStyle, true
	case strings.HasPrefix(s, "⚠️"):
		return warningStyle, true
	case strings.HasPrefix(s, "✅"):
		return successStyle, true
	case strings.HasPrefix(s, "🔗"):
		return mutedStyle, true
	}
	return lipgloss.Style{}, false
}

// Availability is one row of the check command's report.
type Availability struct {
	Agent     agentcmd.Agent `json:"agent"`
	Binary    string         `json:"binary"`
	Path      string         `json:"path,omitempty"`
	Available bool           `json:"available"`
}

// WriteAvailability prints the check report as aligned text.
func WriteAvailability(w io.Writer, rows []Availability, color bool) error {
	width := 0
	for _, r := range rows {
		width = max(width, len(r.Agent))
	}
	for _, r := range rows {
		mark, where := "✓", r.Path
		style := successStyle
		if !r.Available {
			mark, where = "✗", "not found ("+r.Binary+")"
			style = errorStyle
		}
		if color {
			mark = style.Render(mark)
			where = mutedStyle.Render(where)
		}
		name := fmt.Sprintf("%-*s", width, r.Agent)
		if color {
			name = infoStyle.Render(name)
		}
		if _, err := fmt.Fprintf(w, "%s %s  %s\n", mark, name, where); err != nil {
			return err
		}
	}
	return nil
}
