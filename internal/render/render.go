// Package render turns template paths and contents into project files.
package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nikolalohinski/gonja/v2"
	"github.com/nikolalohinski/gonja/v2/exec"

	"github.com/company/fastapi-configurator/internal/cookiecutter"
)

// Namespace is the name templates use to reach the context.
const Namespace = "cookiecutter"

var pathToken = regexp.MustCompile(`\{\{\s*cookiecutter\.(\w+)\s*\}\}`)

func init() {
	gonja.DefaultConfig.AutoEscape = false
	gonja.DefaultConfig.StrictUndefined = false
	gonja.DefaultConfig.TrimBlocks = true
	gonja.DefaultConfig.LeftStripBlocks = true
}

// SyntaxError is returned when one template cannot be parsed or executed.
// The caller keeps the unrendered source for that file.
type SyntaxError struct {
	Path string
	Err  error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("template %s: %v", e.Path, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Renderer renders templates against one context.
type Renderer struct {
	ctx  *cookiecutter.Context
	vars map[string]any
}

// New returns a renderer bound to ctx.
func New(ctx *cookiecutter.Context) *Renderer {
	return &Renderer{
		ctx:  ctx,
		vars: map[string]any{Namespace: ctx.Map()},
	}
}

// Path substitutes {{ cookiecutter.key }} tokens. An unknown key renders
// as its own name.
func (r *Renderer) Path(p string) string {
	return pathToken.ReplaceAllStringFunc(p, func(tok string) string {
		key := pathToken.FindStringSubmatch(tok)[1]
		if v, ok := r.ctx.Text(key); ok {
			return v
		}
		return key
	})
}

// Content renders src. On failure it returns src unchanged together with a
// *SyntaxError, so the file is still written.
func (r *Renderer) Content(path, src string) (out string, err error) {
	if !strings.Contains(src, "{{") && !strings.Contains(src, "{%") && !strings.Contains(src, "{#") {
		return src, nil
	}
	defer func() {
		if rec := recover(); rec != nil {
			out, err = src, &SyntaxError{Path: path, Err: fmt.Errorf("%v", rec)}
		}
	}()

	tpl, perr := gonja.FromString(src)
	if perr != nil {
		return src, &SyntaxError{Path: path, Err: perr}
	}
	rendered, xerr := tpl.ExecuteToString(exec.NewContext(r.vars))
	if xerr != nil {
		return src, &SyntaxError{Path: path, Err: xerr}
	}
	return keepTrailingNewline(src, rendered), nil
}

// keepTrailingNewline restores the final newline Jinja drops by default,
// unless the source ends on a block tag that trim_blocks already consumed.
func keepTrailingNewline(src, out string) string {
	if !strings.HasSuffix(src, "\n") || strings.HasSuffix(out, "\n") {
		return out
	}
	if strings.HasSuffix(strings.TrimRight(src, "\n"), "%}") {
		return out
	}
	return out + "\n"
}

// IsStub reports whether a rendered Python module holds nothing but a
// docstring. Other file types are never stubs.
func IsStub(path, content string) bool {
	if !strings.HasSuffix(path, ".py") {
		return false
	}
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return true
	}
	if !strings.HasPrefix(trimmed, `"""`) || !strings.HasSuffix(trimmed, `"""`) {
		return false
	}
	var inner string
	if len(trimmed) >= 6 {
		inner = strings.TrimSpace(trimmed[3 : len(trimmed)-3])
	}
	return !strings.Contains(inner, `"""`) &&
		!strings.Contains(content, "def ") &&
		!strings.Contains(content, "class ")
}
