package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/invoicely/internal/invoice/domain"
	"github.com/smallbiznis/invoicely/internal/invoice/draft"
)

type selectTemplateRequest struct {
	Template string `json:"template"`
}

type setCurrencyRequest struct {
	Currency string `json:"currency"`
}

type setLogoRequest struct {
	Logo string `json:"logo"`
}

type updateItemRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (s *Server) CreateDraft(c *gin.Context) {
	sess := s.drafts.Open(c.Request.Context())
	c.Set("session_id", sess.ID)

	preview, err := s.drafts.Preview(sess.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": preview})
}

func (s *Server) GetDraft(c *gin.Context) {
	id := sessionID(c)
	sess, err := s.drafts.Get(id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sess})
}

// UpdateDraft replaces the whole draft, mirroring every form change.
func (s *Server) UpdateDraft(c *gin.Context) {
	var req domain.Details
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	s.respondPreview(c, func(id string) (draft.Preview, error) {
		return s.drafts.OnDraftChange(id, req)
	})
}

func (s *Server) DiscardDraft(c *gin.Context) {
	s.drafts.Discard(sessionID(c))
	c.Status(http.StatusNoContent)
}

func (s *Server) SelectDraftTemplate(c *gin.Context) {
	var req selectTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	s.respondPreview(c, func(id string) (draft.Preview, error) {
		return s.drafts.SelectTemplate(id, req.Template)
	})
}

func (s *Server) SetDraftCurrency(c *gin.Context) {
	var req setCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	s.respondPreview(c, func(id string) (draft.Preview, error) {
		return s.drafts.SetCurrency(id, req.Currency)
	})
}

func (s *Server) SetDraftLogo(c *gin.Context) {
	var req setLogoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	s.respondPreview(c, func(id string) (draft.Preview, error) {
		return s.drafts.SetLogo(id, req.Logo)
	})
}

func (s *Server) AddDraftItem(c *gin.Context) {
	s.respondPreview(c, s.drafts.AddItem)
}

func (s *Server) UpdateDraftItem(c *gin.Context) {
	index, err := parseIndex(c.Param("index"))
	if err != nil {
		AbortWithError(c, domain.ErrItemOutOfRange)
		return
	}
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	s.respondPreview(c, func(id string) (draft.Preview, error) {
		return s.drafts.SetItemField(id, index, req.Field, req.Value)
	})
}

func (s *Server) RemoveDraftItem(c *gin.Context) {
	index, err := parseIndex(c.Param("index"))
	if err != nil {
		AbortWithError(c, domain.ErrItemOutOfRange)
		return
	}
	s.respondPreview(c, func(id string) (draft.Preview, error) {
		return s.drafts.RemoveItem(id, index)
	})
}

func (s *Server) PreviewDraft(c *gin.Context) {
	html, err := s.invoice.RenderDraft(sessionID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (s *Server) CommitDraft(c *gin.Context) {
	inv, err := s.invoice.CommitDraft(c.Request.Context(), sessionID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	annotateInvoice(c, inv.ID)
	c.JSON(http.StatusCreated, gin.H{"data": inv})
}

func (s *Server) respondPreview(c *gin.Context, fn func(id string) (draft.Preview, error)) {
	preview, err := fn(sessionID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": preview})
}

func sessionID(c *gin.Context) string {
	id := strings.TrimSpace(c.Param("id"))
	c.Set("session_id", id)
	return id
}
