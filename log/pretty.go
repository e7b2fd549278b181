package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Styles for the colorized text handler.
var (
	styleKey     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleString  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styleNumber  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleTime    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	styleTrace   = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	styleDebug   = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	styleInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleMessage = lipgloss.NewStyle().Bold(true)
)

func levelStyle(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return styleError
	case l >= slog.LevelWarn:
		return styleWarn
	case l >= slog.LevelInfo:
		return styleInfo
	case l >= slog.LevelDebug:
		return styleDebug
	default:
		return styleTrace
	}
}

// prettyHandler is a colorized line-oriented text handler. Keys render
// dimmed, values colored by type, levels colored by severity.
type prettyHandler struct {
	opts  slog.HandlerOptions
	mu    *sync.Mutex
	w     io.Writer
	attrs []slog.Attr
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	return &prettyHandler{
		opts: *opts,
		mu:   &sync.Mutex{},
		w:    w,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if !r.Time.IsZero() && h.replaced(slog.Time(slog.TimeKey, r.Time)) {
		sep(buf)
		buf.WriteString(styleTime.Render(h.timeText(r)))
	}

	sep(buf)
	buf.WriteString(levelStyle(r.Level).Render(Level(r.Level).String()))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			sep(buf)
			buf.WriteString(styleKey.Render(
				fmt.Sprintf("%s:%d", src.File, src.Line),
			))
		}
	}

	sep(buf)
	buf.WriteString(styleMessage.Render(r.Message))

	for _, a := range h.attrs {
		h.writeAttr(buf, a)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(buf, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...)

	return &clone
}

// WithGroup is accepted for interface completeness; group prefixes are not
// rendered.
func (h *prettyHandler) WithGroup(string) slog.Handler { return h }

// replaced reports whether the configured ReplaceAttr keeps the attribute.
func (h *prettyHandler) replaced(a slog.Attr) bool {
	if h.opts.ReplaceAttr == nil {
		return true
	}

	return !h.opts.ReplaceAttr(nil, a).Equal(slog.Attr{})
}

func (h *prettyHandler) timeText(r slog.Record) string {
	a := slog.Time(slog.TimeKey, r.Time)
	if h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(nil, a)
	}

	return a.Value.String()
}

func sep(buf *bytes.Buffer) {
	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}
}

func (h *prettyHandler) writeAttr(buf *bytes.Buffer, a slog.Attr) {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		for _, member := range a.Value.Group() {
			if a.Key != "" {
				member.Key = a.Key + "." + member.Key
			}

			h.writeAttr(buf, member)
		}

		return
	}

	sep(buf)
	buf.WriteString(styleKey.Render(a.Key))
	buf.WriteByte('=')
	buf.WriteString(renderValue(a.Value))
}

func renderValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindInt64:
		return styleNumber.Render(strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		return styleNumber.Render(strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		return styleNumber.Render(
			strconv.FormatFloat(v.Float64(), 'g', -1, 64),
		)

	case slog.KindBool:
		if v.Bool() {
			return styleInfo.Render("true")
		}

		return styleError.Render("false")

	case slog.KindDuration:
		return styleNumber.Render(v.Duration().String())

	case slog.KindTime:
		return styleTime.Render(v.Time().String())

	default:
		return styleString.Render(v.String())
	}
}
