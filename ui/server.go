// Package ui serves a small web playground for expressions. A form posts
// an expression and the page shows its tokens, tree, canonical source,
// value and hash.
package ui

import (
	"embed"
	"encoding/json"
	"html/template"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/pratt/expr/eval"
	"github.com/dhamidi/pratt/expr/hash"
	"github.com/dhamidi/pratt/expr/parser"
	"github.com/dhamidi/pratt/format"
)

//go:embed templates
var embeddedFS embed.FS

type Server struct {
	opts       []parser.Option
	templateFS fs.FS
	funcMap    template.FuncMap
	mux        *http.ServeMux
	log        commonlog.Logger
}

// Result is the analysis of one expression, rendered as HTML or JSON.
type Result struct {
	Input  string   `json:"input"`
	Tokens []string `json:"tokens,omitempty"`
	Tree   string   `json:"tree,omitempty"`
	Source string   `json:"source,omitempty"`
	Value  *int     `json:"value,omitempty"`
	Hash   *int32   `json:"hash,omitempty"`
	Error  string   `json:"error,omitempty"`

	// ErrorStart and ErrorEnd are byte offsets into Input.
	ErrorStart int `json:"error_start,omitempty"`
	ErrorEnd   int `json:"error_end,omitempty"`
}

// NewServer returns a playground parsing with opts. Templates under
// ui/templates in the working directory override the embedded ones.
func NewServer(opts ...parser.Option) *Server {
	s := &Server{
		opts:       opts,
		templateFS: overlayFS("ui/templates", mustSub(embeddedFS, "templates")),
		mux:        http.NewServeMux(),
		log:        commonlog.GetLogger("pratt.ui"),
	}

	s.funcMap = template.FuncMap{
		"before": func(r Result) string {
			return r.Input[:clamp(r.ErrorStart, len(r.Input))]
		},
		"marked": func(r Result) string {
			return r.Input[clamp(r.ErrorStart, len(r.Input)):clamp(r.ErrorEnd, len(r.Input))]
		},
		"after": func(r Result) string {
			return r.Input[clamp(r.ErrorEnd, len(r.Input)):]
		},
	}

	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /parse", s.handleParse)
	s.mux.HandleFunc("GET /parse", s.handleParse)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Analyze runs every stage on input and records the first failure.
func (s *Server) Analyze(input string) Result {
	result := Result{Input: input}

	tokens, err := parser.NewLexer(input).Tokenize()
	for _, tok := range tokens {
		result.Tokens = append(result.Tokens, tok.String())
	}
	if err != nil {
		result.setError(err)
		return result
	}

	expr, err := parser.Parse(input, s.opts...)
	if err != nil {
		result.setError(err)
		return result
	}

	tree, _ := format.NewTreeEncoder(nil).MarshalText(expr)
	result.Tree = strings.TrimRight(string(tree), "\n")
	result.Source = format.Source(expr)
	sum := hash.Sum(expr)
	result.Hash = &sum

	value, err := eval.Evaluate(expr)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Value = &value
	return result
}

func (r *Result) setError(err error) {
	r.Error = err.Error()
	if start, end, ok := parser.ErrorSpan(err); ok {
		r.ErrorStart, r.ErrorEnd = start, end
	}
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	tmpl, err := template.New("").Funcs(s.funcMap).ParseFS(s.templateFS, "*.html")
	if err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		s.log.Errorf("render %s: %s", name, err)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, "index.html", nil)
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var input string

	if isJSON(r.Header.Get("Content-Type")) {
		var req struct {
			Input string `json:"input"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
		input = req.Input
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form data: "+err.Error(), http.StatusBadRequest)
			return
		}
		input = r.FormValue("input")
	}

	result := s.Analyze(input)
	s.log.Debugf("parse %q: %s", input, result.Error)

	if isJSON(r.Header.Get("Accept")) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			s.log.Errorf("encode result: %s", err)
		}
		return
	}

	s.render(w, "index.html", result)
}

// isJSON reports whether a Content-Type or Accept value names JSON,
// ignoring parameters such as charset.
func isJSON(header string) bool {
	mediaType, _, err := mime.ParseMediaType(header)
	return err == nil && mediaType == "application/json"
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

type overlayFSType struct {
	primary   fs.FS
	secondary fs.FS
}

func overlayFS(primaryPath string, secondary fs.FS) fs.FS {
	return &overlayFSType{
		primary:   os.DirFS(primaryPath),
		secondary: secondary,
	}
}

func (o *overlayFSType) Open(name string) (fs.File, error) {
	f, err := o.primary.Open(name)
	if err == nil {
		return f, nil
	}
	return o.secondary.Open(name)
}

func (o *overlayFSType) ReadDir(name string) ([]fs.DirEntry, error) {
	entries := make(map[string]fs.DirEntry)

	if list, err := fs.ReadDir(o.secondary, name); err == nil {
		for _, e := range list {
			entries[e.Name()] = e
		}
	}
	if list, err := fs.ReadDir(o.primary, name); err == nil {
		for _, e := range list {
			entries[e.Name()] = e
		}
	}

	result := make([]fs.DirEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, e)
	}
	return result, nil
}
