package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/feature"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/logging"
)

//go:embed templates/*.html static/*
var assets embed.FS

var pageNames = []string{
	"home", "mcq", "pdf-qa", "csv", "research", "qa-evaluator",
	"study-plan", "quiz", "concept-map", "summary",
	"llm", "llm-event", "status",
}

var funcs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
	"usd": func(v *float64) string {
		if v == nil {
			return "n/a"
		}
		return fmt.Sprintf("$%.4f", *v)
	},
}

func parsePages() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(funcs).
			ParseFS(assets, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}

type navItem struct {
	Href   string
	Title  string
	Active bool
}

// pageData is shared by every template. Handlers fill what their page
// uses.
type pageData struct {
	Title  string
	Nav    []navItem
	Banner string

	Error      string
	Warning    string
	Flash      string
	FlashClass string

	Result *feature.Result
	Output template.HTML
	Chart  string

	Form    map[string]string
	Checked map[string]bool

	// Extra carries page-specific data that does not fit above.
	Extra any
}

func (s *Server) newPage(kind feature.Kind) *pageData {
	nav := make([]navItem, 0, len(feature.Kinds()))
	for _, k := range feature.Kinds() {
		href := "/" + k.Slug()
		if k == feature.KindHome {
			href = "/"
		}
		nav = append(nav, navItem{Href: href, Title: k.Title(), Active: k == kind})
	}

	p := &pageData{
		Title:   kind.Title(),
		Nav:     nav,
		Form:    map[string]string{},
		Checked: map[string]bool{},
	}
	if !s.router.Gateway().Available() {
		p.Banner = feature.UnavailableMessage
	}
	return p
}

// fail puts err on the page as the user-facing message.
func (p *pageData) fail(kind feature.Kind, err error) {
	p.Error = feature.UserMessage(kind, err)
}

func (s *Server) markdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data *pageData) {
	t, ok := s.pages[name]
	if !ok {
		http.Error(w, "unknown page "+name, http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		logging.FromContext(r.Context()).WithError(err).WithField("page", name).Error("render failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) renderStatus(w http.ResponseWriter, r *http.Request, status int, msg string) {
	p := s.newPage(feature.KindHome)
	p.Title = http.StatusText(status)
	p.Error = msg
	s.render(w, r, status, "status", p)
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}
