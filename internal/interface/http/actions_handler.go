package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/healthdash/internal/domain/health"
)

type stepsRequest struct {
	Date  string `json:"date"`
	Steps int    `json:"steps"`
}

type mealRequest struct {
	Date     string `json:"date"`
	Name     string `json:"name"`
	Calories int    `json:"calories"`
}

type searchRequest struct {
	Query string `json:"query"`
}

// SaveSteps records steps for a chosen date.
func (h *Handler) SaveSteps(c *gin.Context) {
	var req stepsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidBody(c, err)
		return
	}
	if err := h.aggregator.SaveSteps(c.Request.Context(), req.Date, req.Steps); err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SaveQuickSteps records today's steps.
func (h *Handler) SaveQuickSteps(c *gin.Context) {
	var req stepsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidBody(c, err)
		return
	}
	if err := h.aggregator.SaveQuickSteps(c.Request.Context(), req.Steps); err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SaveMeal records a meal for a chosen date.
func (h *Handler) SaveMeal(c *gin.Context) {
	var req mealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidBody(c, err)
		return
	}
	if err := h.aggregator.SaveMeal(c.Request.Context(), req.Date, req.Name, req.Calories); err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SaveQuickMeal records a meal for today.
func (h *Handler) SaveQuickMeal(c *gin.Context) {
	var req mealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidBody(c, err)
		return
	}
	if err := h.aggregator.SaveQuickMeal(c.Request.Context(), req.Name, req.Calories); err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateTargets stores new goals.
func (h *Handler) UpdateTargets(c *gin.Context) {
	var req health.Targets
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidBody(c, err)
		return
	}
	if err := h.aggregator.UpdateTargets(c.Request.Context(), req); err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateSearch feeds one edit of the search box into the debounced flow.
func (h *Handler) UpdateSearch(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidBody(c, err)
		return
	}
	h.search.OnQueryChange(c.Request.Context(), req.Query)
	c.JSON(http.StatusAccepted, h.search.State())
}

// SearchState returns the current query and results.
func (h *Handler) SearchState(c *gin.Context) {
	c.JSON(http.StatusOK, h.search.State())
}

// AddFriend selects a search candidate.
func (h *Handler) AddFriend(c *gin.Context) {
	var req health.AddFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidBody(c, err)
		return
	}
	if err := h.search.Select(c.Request.Context(), req.FriendUsername); err != nil {
		abortWithDomainError(c, err)
		return
	}
	view, _ := h.aggregator.Views().Friends()
	c.JSON(http.StatusOK, gin.H{"friends": view})
}
