package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mtgbinder/mtgbinder-api/internal/application"
	"github.com/mtgbinder/mtgbinder-api/internal/domain/entity"
	"github.com/mtgbinder/mtgbinder-api/internal/domain/repository"
	"github.com/mtgbinder/mtgbinder-api/pkg/response"
	"github.com/mtgbinder/mtgbinder-api/pkg/validation"
)

type CardHandler struct {
	Svc    *application.CardService
	Logger *logrus.Logger
}

func NewCardHandler(svc *application.CardService, logger *logrus.Logger) *CardHandler {
	return &CardHandler{Svc: svc, Logger: logger}
}

type cardListQuery struct {
	Title      string `form:"title" binding:"omitempty,max=50"`
	ManaCost   *int   `form:"manacost" binding:"omitempty,min=0"`
	CardStatus string `form:"cardstatus" binding:"omitempty,max=50"`
}

type subtypeRequest struct {
	SubtypeID int64 `json:"subtypeid" binding:"required,min=1"`
}

type cardCreateRequest struct {
	Title      string           `json:"title" binding:"required,max=50"`
	ManaCost   int              `json:"manacost" binding:"omitempty,min=0"`
	Power      string           `json:"power" binding:"omitempty,max=50"`
	Toughness  string           `json:"toughness" binding:"omitempty,max=50"`
	Link       string           `json:"link" binding:"required,uri,max=255"`
	Ability    string           `json:"ability" binding:"omitempty,max=255"`
	FlavorText string           `json:"flavortext" binding:"omitempty,max=255"`
	CardStatus string           `json:"cardstatus" binding:"required,max=50"`
	Subtypes   []subtypeRequest `json:"subtypes" binding:"omitempty,dive"`
}

// cardUpdateRequest accepts the same shape with everything optional. A
// title in the payload is tolerated and ignored: the natural key is
// immutable once the card exists.
type cardUpdateRequest struct {
	Title      string `json:"title" binding:"omitempty,max=50"`
	ManaCost   int    `json:"manacost" binding:"omitempty,min=0"`
	Power      string `json:"power" binding:"omitempty,max=50"`
	Toughness  string `json:"toughness" binding:"omitempty,max=50"`
	Link       string `json:"link" binding:"omitempty,uri,max=255"`
	Ability    string `json:"ability" binding:"omitempty,max=255"`
	FlavorText string `json:"flavortext" binding:"omitempty,max=255"`
	CardStatus string `json:"cardstatus" binding:"omitempty,max=50"`
}

// List answers all cards, optionally narrowed by recognized filters;
// multiple filters combine as the intersection of per-field result sets
// by card id.
func (h *CardHandler) List(c *gin.Context) {
	if unknown := unknownQueryKeys(c, "title", "manacost", "cardstatus"); len(unknown) > 0 {
		writeBadRequest(c, map[string]any{"unrecognized": unknown})
		return
	}
	var q cardListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBadRequest(c, validation.ToDetails(err))
		return
	}

	var filters []repository.Filter
	if q.Title != "" {
		filters = append(filters, repository.Filter{Field: "title", Value: q.Title})
	}
	if q.ManaCost != nil {
		filters = append(filters, repository.Filter{Field: "manacost", Value: *q.ManaCost})
	}
	if q.CardStatus != "" {
		filters = append(filters, repository.Filter{Field: "cardstatus", Value: q.CardStatus})
	}

	cards, err := h.listFiltered(c, filters)
	if err != nil {
		writeError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, cards, "cards")
	c.JSON(resp.Status, resp)
}

func (h *CardHandler) listFiltered(c *gin.Context, filters []repository.Filter) ([]entity.Card, error) {
	if len(filters) == 0 {
		return h.Svc.List(c.Request.Context(), nil)
	}
	sets := make([][]entity.Card, 0, len(filters))
	for i := range filters {
		set, err := h.Svc.List(c.Request.Context(), &filters[i])
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	return intersectByID(sets, func(card entity.Card) int64 { return card.CardID }), nil
}

func (h *CardHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "cardid")
	if !ok {
		return
	}
	card, err := h.Svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, card, "card")
	c.JSON(resp.Status, resp)
}

func (h *CardHandler) Create(c *gin.Context) {
	var req cardCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, validation.ToDetails(err))
		return
	}

	candidate := &entity.Card{
		Title:      req.Title,
		ManaCost:   req.ManaCost,
		Power:      req.Power,
		Toughness:  req.Toughness,
		Link:       req.Link,
		Ability:    req.Ability,
		FlavorText: req.FlavorText,
		CardStatus: req.CardStatus,
	}
	for _, st := range req.Subtypes {
		candidate.Subtypes = append(candidate.Subtypes, entity.Subtype{SubtypeID: st.SubtypeID})
	}

	card, err := h.Svc.Create(c.Request.Context(), candidate)
	if err != nil {
		writeError(c, err)
		return
	}
	resp := response.Success(c, http.StatusCreated, card, "card created")
	c.JSON(resp.Status, resp)
}

func (h *CardHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "cardid")
	if !ok {
		return
	}
	var req cardUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, validation.ToDetails(err))
		return
	}

	candidate := &entity.Card{
		CardID:     id,
		ManaCost:   req.ManaCost,
		Power:      req.Power,
		Toughness:  req.Toughness,
		Link:       req.Link,
		Ability:    req.Ability,
		FlavorText: req.FlavorText,
		CardStatus: req.CardStatus,
	}

	card, err := h.Svc.Update(c.Request.Context(), candidate)
	if err != nil {
		writeError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, card, "card updated")
	c.JSON(resp.Status, resp)
}

func (h *CardHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "cardid")
	if !ok {
		return
	}
	card, err := h.Svc.Delete(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, card, "card deleted")
	c.JSON(resp.Status, resp)
}
