package handler

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/firstapp/accounts/internal/core/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names accepted by the renderer.
const (
	PageCreateUser = "create_user"
	PageAdminLogin = "admin_login"
	PageUserList   = "user_list"
)

// page is the data every template receives through the base layout.
type page struct {
	Title   string
	Flashes []domain.Flash
}

// TemplateRenderer renders the embedded HTML pages inside the base layout.
type TemplateRenderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*TemplateRenderer, error) {
	r := &TemplateRenderer{pages: make(map[string]*template.Template)}
	for _, name := range []string{PageCreateUser, PageAdminLogin, PageUserList} {
		t, err := template.ParseFS(templateFS, "templates/base.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render satisfies echo.Renderer.
func (r *TemplateRenderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return t.ExecuteTemplate(w, "base", data)
}
