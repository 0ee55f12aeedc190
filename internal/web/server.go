package web

import (
	"embed"
	"html/template"
	"time"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

// NewRouter builds the gin engine serving the task pages.
func NewRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	tmpl := template.Must(template.New("").Funcs(template.FuncMap{
		"duedate": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format("2006-01-02")
		},
	}).ParseFS(templatesFS, "templates/*.html"))
	r.SetHTMLTemplate(tmpl)

	r.GET("/", handleIndex)
	r.POST("/add", handleAdd)
	r.GET("/toggle/:id", handleToggle)
	r.POST("/edit/:id", handleEdit)
	r.GET("/delete/:id", handleDelete)

	return r
}
