package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/soul/pkg/model"
	"github.com/muesli/termenv"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatAuto = "auto"
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ResolveFormat turns FormatAuto into text on terminals and JSON elsewhere.
func ResolveFormat(format string, w io.Writer) (string, error) {
	switch format {
	case "", FormatAuto:
		if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return FormatText, nil
		}
		return FormatJSON, nil
	case FormatText, FormatJSON, FormatYAML:
		return format, nil
	}
	return "", fmt.Errorf("unknown format %q (want auto, text, json or yaml)", format)
}

// EventRecord is the serialized form of a printed event.
type EventRecord struct {
	Event string           `json:"event" yaml:"event"`
	Model string           `json:"model,omitempty" yaml:"model,omitempty"`
	Child any              `json:"child,omitempty" yaml:"child,omitempty"`
	Old   model.Attributes `json:"old,omitempty" yaml:"old,omitempty"`
	New   model.Attributes `json:"new,omitempty" yaml:"new,omitempty"`
}

// Printer writes events and documents in one format.
type Printer struct {
	w       io.Writer
	format  string
	profile termenv.Profile
}

// NewPrinter creates a Printer. format must already be resolved.
func NewPrinter(w io.Writer, format string) *Printer {
	return &Printer{
		w:       w,
		format:  format,
		profile: termenv.NewOutput(w).EnvColorProfile(),
	}
}

// Event prints a single event record.
func (p *Printer) Event(rec EventRecord) error {
	switch p.format {
	case FormatJSON:
		return p.jsonLine(rec)
	case FormatYAML:
		return p.yamlDoc([]EventRecord{rec})
	}

	header := rec.Event
	if rec.Model != "" {
		header = rec.Model + " " + header
	}
	if rec.Child != nil {
		header += fmt.Sprintf(" %v", rec.Child)
	}
	fmt.Fprintln(p.w, p.profile.String(header).Bold().Foreground(p.profile.Color("#a78bfa")))

	for _, key := range rec.New.Keys() {
		before := p.profile.String(fmt.Sprintf("%v", rec.Old[key])).Foreground(p.profile.Color("#fb7185"))
		after := p.profile.String(fmt.Sprintf("%v", rec.New[key])).Foreground(p.profile.Color("#34d399"))
		fmt.Fprintf(p.w, "  %s: %s -> %s\n", key, before, after)
	}
	return nil
}

// Document prints a final value (a model, or any encodable value).
func (p *Printer) Document(v any) error {
	switch p.format {
	case FormatJSON:
		return p.jsonLine(v)
	case FormatYAML:
		return p.yamlDoc(v)
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = p.w.Write(data)
	return err
}

// Errorf prints a highlighted message in text mode and a JSON error record otherwise.
func (p *Printer) Errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.format == FormatJSON {
		_ = p.jsonLine(map[string]string{"error": msg})
		return
	}
	fmt.Fprintln(p.w, p.profile.String(msg).Foreground(p.profile.Color("#f87171")))
}

func (p *Printer) jsonLine(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func (p *Printer) yamlDoc(v any) error {
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
