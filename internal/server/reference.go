package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/invoicely/internal/currency"
	"github.com/smallbiznis/invoicely/internal/invoice/domain"
	"github.com/smallbiznis/invoicely/internal/invoice/render"
)

type templateView struct {
	Name      domain.Template `json:"name"`
	Accent    string          `json:"accent"`
	AccentEnd string          `json:"accentEnd"`
	Header    string          `json:"header"`
}

func (s *Server) ListCurrencies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": currency.All()})
}

func (s *Server) ListTemplates(c *gin.Context) {
	out := make([]templateView, 0, len(domain.Templates))
	for _, t := range domain.Templates {
		theme := render.ThemeFor(t)
		out = append(out, templateView{
			Name:      t,
			Accent:    string(theme.Accent),
			AccentEnd: string(theme.AccentEnd),
			Header:    string(theme.Header),
		})
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}
