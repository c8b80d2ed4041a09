package strictskema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/strictskema/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	// CodeOptionalProperty: a property is wrapped as optional or defaulted.
	// Strict output requires every declared property to be present.
	CodeOptionalProperty = "unrepresentable_optional_property"
	// CodeUnsupportedVariant: the node kind is unrecognized or has no strict
	// representation (any, never, intersection, tuple, record).
	CodeUnsupportedVariant = "unsupported_variant"
)

// Sentinels matched by errors.Is against returned Issues.
var (
	ErrOptionalProperty   = errors.New("strictskema: optional property is not representable")
	ErrUnsupportedVariant = errors.New("strictskema: unsupported schema variant")
)

// Issue represents a single conversion failure.
type Issue struct {
	Path    string // JSON Pointer into the output document (for example: /properties/user).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints.
	// Params carries structured parameters (e.g., {"property":"nick"} or
	// {"variant":"tuple"}).
	Params map[string]any
}

// Issues is a collection of conversion errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. unsupported_variant at /properties/x: unsupported schema variant "tuple"
		fmt.Fprintf(b, "%s at %s: %s", it.Code, it.Path, it.Message)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Is lets errors.Is match the sentinel of any contained issue code.
func (iss Issues) Is(target error) bool {
	for _, it := range iss {
		switch {
		case it.Code == CodeOptionalProperty && target == ErrOptionalProperty:
			return true
		case it.Code == CodeUnsupportedVariant && target == ErrUnsupportedVariant:
			return true
		}
	}
	return false
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

func optionalPropertyIssue(path, property string, wrapper string) Issues {
	data := map[string]string{"property": property, "wrapper": wrapper}
	return Issues{{
		Path:    path,
		Code:    CodeOptionalProperty,
		Message: i18n.T(CodeOptionalProperty, data),
		Hint:    "wrap the property type with Nullable instead",
		Params:  map[string]any{"property": property, "wrapper": wrapper},
	}}
}

func unsupportedVariantIssue(path, variant string) Issues {
	return Issues{{
		Path:    path,
		Code:    CodeUnsupportedVariant,
		Message: i18n.T(CodeUnsupportedVariant, map[string]string{"variant": variant}),
		Params:  map[string]any{"variant": variant},
	}}
}
