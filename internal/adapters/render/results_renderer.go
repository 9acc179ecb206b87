package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"marketplace-service/internal/core/domain"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
)

//go:embed templates/*.html
var templatesFS embed.FS

type cardView struct {
	ID        int64
	Title     string
	Brand     string
	Model     string
	Condition string
	Price     string
	TradeType string
	Tags      []string
}

type resultsView struct {
	Context domain.SearchContext
	IsTrade bool
	Items   []cardView
}

// HTMLResultsRenderer renders the results partial and minifies it for direct injection.
type HTMLResultsRenderer struct {
	tmpl     *template.Template
	minifier *minify.M
}

func NewHTMLResultsRenderer() (*HTMLResultsRenderer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/results.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse results template: %w", err)
	}

	m := minify.New()
	m.AddFunc("text/html", html.Minify)

	return &HTMLResultsRenderer{tmpl: tmpl, minifier: m}, nil
}

func (r *HTMLResultsRenderer) RenderResults(sc domain.SearchContext, items []domain.Listing) (string, error) {
	view := resultsView{
		Context: sc,
		IsTrade: sc == domain.ContextTrade,
		Items:   make([]cardView, 0, len(items)),
	}
	tradeFormats := domain.TradeFormats()
	for _, l := range items {
		card := cardView{
			ID:        l.ID,
			Title:     l.Title,
			Brand:     l.BrandName,
			Model:     l.ModelName,
			Condition: domain.LabelOf(domain.Conditions(l.Category), l.Condition),
			TradeType: domain.LabelOf(tradeFormats, l.TradeType),
			Tags:      l.Tags,
		}
		if l.Price != nil {
			card.Price = fmt.Sprintf("$%.2f", *l.Price)
		}
		view.Items = append(view.Items, card)
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "results.html", view); err != nil {
		return "", fmt.Errorf("failed to execute results template: %w", err)
	}

	minified, err := r.minifier.String("text/html", buf.String())
	if err != nil {
		return "", fmt.Errorf("failed to minify results markup: %w", err)
	}
	return minified, nil
}
