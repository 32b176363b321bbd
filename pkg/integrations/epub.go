package integrations

import (
	"context"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-shiori/go-epub"
	"github.com/kerbaras/littlelemon/pkg/data"
	"github.com/kerbaras/littlelemon/pkg/services"
	"github.com/kerbaras/littlelemon/pkg/utils"
	"github.com/sirupsen/logrus"
)

const menuBookName = "littlelemon-menu.epub"

// EPubBuilder writes the cached menu as an e-book with one section per
// category.
type EPubBuilder struct {
	outputDir string
	fetcher   ImageFetcher
	processor Processor
	log       logrus.FieldLogger
}

func NewEPubBuilder(outputDir string, log logrus.FieldLogger) *EPubBuilder {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &EPubBuilder{outputDir: outputDir, log: log}
}

// WithImages embeds dish photos, downloaded with fetcher and prepared by
// processor. Without it the book is text only.
func (p *EPubBuilder) WithImages(fetcher ImageFetcher, processor Processor) *EPubBuilder {
	p.fetcher = fetcher
	p.processor = processor
	return p
}

// CreateEPub compiles the menu into a single EPub file and returns its path.
func (p *EPubBuilder) CreateEPub(ctx context.Context, items []*data.MenuItem) (string, error) {
	if len(items) == 0 {
		return "", fmt.Errorf("no menu items to export")
	}

	if err := os.MkdirAll(p.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	e, err := epub.NewEpub("Little Lemon Menu")
	if err != nil {
		return "", fmt.Errorf("failed to create EPub: %w", err)
	}
	e.SetAuthor("Little Lemon")
	e.SetDescription("We are a family owned Mediterranean restaurant in Chicago, focused on traditional recipes served with a modern twist.")
	e.SetLang("en")

	var imageDir string
	if p.fetcher != nil {
		imageDir, err = os.MkdirTemp("", "littlelemon-images-*")
		if err != nil {
			return "", fmt.Errorf("failed to create image directory: %w", err)
		}
		defer os.RemoveAll(imageDir)
	}

	for _, category := range services.Categories(items) {
		dishes := services.FilterMenu(items, "", category)
		if len(dishes) == 0 {
			continue
		}
		body := p.renderSection(ctx, e, imageDir, category, dishes)
		if _, err := e.AddSection(body, category, "", ""); err != nil {
			return "", fmt.Errorf("failed to add section %s: %w", category, err)
		}
	}

	outputPath := filepath.Join(p.outputDir, menuBookName)
	if err := e.Write(outputPath); err != nil {
		return "", fmt.Errorf("failed to write EPub: %w", err)
	}

	p.log.WithFields(logrus.Fields{"path": outputPath, "items": len(items)}).Info("menu exported")
	return outputPath, nil
}

func (p *EPubBuilder) renderSection(ctx context.Context, e *epub.Epub, imageDir, category string, dishes []*data.MenuItem) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<h1>%s</h1>\n", html.EscapeString(category)))

	for _, item := range dishes {
		b.WriteString(`<div class="dish">` + "\n")
		b.WriteString(fmt.Sprintf("<h2>%s</h2>\n", html.EscapeString(item.Title)))
		if imageDir != "" && item.Image != "" {
			if src, err := p.addImage(ctx, e, imageDir, item); err != nil {
				p.log.WithError(err).WithField("id", item.ID).Warn("skipping dish photo")
			} else {
				b.WriteString(fmt.Sprintf(`<img src="%s" alt="%s" style="max-width:100%%;height:auto;"/>`+"\n",
					src, html.EscapeString(item.Title)))
			}
		}
		b.WriteString(fmt.Sprintf("<p>%s</p>\n", html.EscapeString(item.Description)))
		b.WriteString(fmt.Sprintf(`<p class="price"><strong>$%.2f</strong></p>`+"\n", item.Price))
		b.WriteString("</div>\n")
	}
	return b.String()
}

// addImage downloads and embeds one dish photo, returning its path inside
// the book.
func (p *EPubBuilder) addImage(ctx context.Context, e *epub.Epub, imageDir string, item *data.MenuItem) (string, error) {
	raw, err := p.fetcher.Fetch(ctx, item.Image)
	if err != nil {
		return "", err
	}
	if p.processor != nil {
		if raw, err = p.processor.Process(raw); err != nil {
			return "", err
		}
	}

	name := fmt.Sprintf("dish-%d.jpg", item.ID)
	path := filepath.Join(imageDir, name)
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return e.AddImage(path, name)
}

type httpImageFetcher struct {
	api *utils.API
}

// NewHTTPImageFetcher fetches absolute image URLs with the given timeout.
func NewHTTPImageFetcher(timeout time.Duration) ImageFetcher {
	return &httpImageFetcher{api: utils.NewAPI("", timeout)}
}

func (f *httpImageFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f.api.Fetch(ctx, url, nil)
}
