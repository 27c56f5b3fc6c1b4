package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/zvrva/littlelemon/internal/domain"
	"github.com/zvrva/littlelemon/internal/service/menu"
)

type MenuHandler struct {
	service menu.MenuUseCase
}

// decimalField accepts either a JSON string or a bare number and keeps the
// raw text so the service can validate it as a decimal.
type decimalField string

func (d *decimalField) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = decimalField(s)
		return nil
	}
	*d = decimalField(data)
	return nil
}

type menuItemRequest struct {
	Title     *string       `json:"title"`
	Price     *decimalField `json:"price"`
	Inventory *int          `json:"inventory"`
}

func (r menuItemRequest) input() menu.ItemInput {
	input := menu.ItemInput{Title: r.Title, Inventory: r.Inventory}
	if r.Price != nil {
		price := string(*r.Price)
		input.Price = &price
	}
	return input
}

type menuItemResponse struct {
	ID        int64        `json:"id"`
	Title     string       `json:"title"`
	Price     domain.Price `json:"price"`
	Inventory int          `json:"inventory"`
}

func toMenuItemResponse(item *domain.MenuItem) menuItemResponse {
	return menuItemResponse{
		ID:        item.ID,
		Title:     item.Title,
		Price:     item.Price,
		Inventory: item.Inventory,
	}
}

func NewMenuHandler(service menu.MenuUseCase) *MenuHandler {
	return &MenuHandler{service: service}
}

func (h *MenuHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.POST("/", h.create)
	router.GET("/:id", h.retrieve)
	router.PUT("/:id", h.update)
	router.PATCH("/:id", h.update)
	router.DELETE("/:id", h.remove)
}

func (h *MenuHandler) list(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]menuItemResponse, 0, len(items))
	for i := range items {
		out = append(out, toMenuItemResponse(&items[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *MenuHandler) create(c *gin.Context) {
	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.service.Create(c.Request.Context(), req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toMenuItemResponse(item))
}

func (h *MenuHandler) retrieve(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err := errIfBadID(c, err); err != nil {
		return
	}

	item, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMenuItemResponse(item))
}

func (h *MenuHandler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err := errIfBadID(c, err); err != nil {
		return
	}

	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.service.Update(c.Request.Context(), id, req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMenuItemResponse(item))
}

func (h *MenuHandler) remove(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err := errIfBadID(c, err); err != nil {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
