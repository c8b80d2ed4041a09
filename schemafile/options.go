package schemafile

import "fmt"

// Options controls how schema documents are loaded.
type Options struct {
	// Strict turns unknown keys into errors instead of warnings.
	Strict bool
}

// Diag carries non-fatal warnings produced during loading.
type Diag interface {
	HasWarnings() bool
	Warnings() []string
}

type simpleDiag struct{ ws []string }

func (d *simpleDiag) HasWarnings() bool        { return len(d.ws) > 0 }
func (d *simpleDiag) Warnings() []string       { return append([]string(nil), d.ws...) }
func (d *simpleDiag) warnf(f string, a ...any) { d.ws = append(d.ws, fmt.Sprintf(f, a...)) }
