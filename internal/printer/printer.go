// Package printer writes styled, human-oriented CLI output.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/colonyops/adminctl/internal/core/i18n"
	"github.com/colonyops/adminctl/internal/core/styles"
	"github.com/colonyops/adminctl/internal/core/ui"
)

type ctxKey struct{}

// Printer writes status lines to a writer.
type Printer struct {
	w io.Writer
}

// New creates a printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// NewContext returns a context carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the printer stored in ctx, or one writing to stdout.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stdout)
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}

func (p *Printer) line(icon, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if icon != "" {
		msg = icon + " " + msg
	}
	_, _ = fmt.Fprintln(p.w, msg)
}

// Printf writes an unstyled line.
func (p *Printer) Printf(format string, args ...any) {
	p.line("", format, args...)
}

// Infof writes an informational line.
func (p *Printer) Infof(format string, args ...any) {
	p.line(styles.LevelInfoStyle.Render("•"), format, args...)
}

// Successf writes a success line.
func (p *Printer) Successf(format string, args ...any) {
	p.line(styles.StateActiveStyle.Render("✔"), format, args...)
}

// Warnf writes a warning line.
func (p *Printer) Warnf(format string, args ...any) {
	p.line(styles.LevelWarnStyle.Render("!"), format, args...)
}

// Errorf writes an error line.
func (p *Printer) Errorf(format string, args ...any) {
	p.line(styles.LevelErrorStyle.Render("✘"), format, args...)
}

// Headerf writes a bold section header.
func (p *Printer) Headerf(format string, args ...any) {
	_, _ = fmt.Fprintln(p.w, styles.CommandHeaderStyle.Render(fmt.Sprintf(format, args...)))
}

// Alerts returns an AlertPresenter that prints translated alerts.
func (p *Printer) Alerts(catalog *i18n.Catalog) ui.AlertPresenter {
	return ui.AlertFunc(func(key string, level ui.Level) {
		msg := catalog.Message(key)
		switch level {
		case ui.LevelError:
			p.Errorf("%s", msg)
		case ui.LevelWarning:
			p.Warnf("%s", msg)
		default:
			p.Infof("%s", msg)
		}
	})
}
