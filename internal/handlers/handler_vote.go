package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/schoolstate/sas_backend/internal/core/ports/services"
	"github.com/schoolstate/sas_backend/internal/dto"
)

// voteHandler handles HTTP requests related to votes.
type voteHandler struct {
	voteService portssvc.VoteSvcFacade
}

func newVoteHandler(vs portssvc.VoteSvcFacade) *voteHandler {
	return &voteHandler{voteService: vs}
}

// registerVoteRoutes registers routes related to votes.
func registerVoteRoutes(rg *gin.RouterGroup, voteService portssvc.VoteSvcFacade) {
	h := newVoteHandler(voteService)

	votes := rg.Group("/votes")
	{
		votes.POST("", h.createVote)
		votes.GET("", h.listVotes)
		votes.POST("/:id/papers", h.castVote)
		votes.DELETE("/:id", h.deleteVote)
	}
}

// createVote godoc
// @Summary Open a new vote
// @Tags votes
// @Accept  json
// @Produce  json
// @Param   vote body dto.CreateVoteRequest true "Vote details"
// @Success 201 {object} dto.VoteResponse
// @Failure 400 {object} map[string]string "Invalid choices or end time"
// @Failure 403 {object} map[string]string "Not politics"
// @Security BearerAuth
// @Router /votes [post]
func (h *voteHandler) createVote(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	vote, err := h.voteService.CreateVote(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToVoteResponse(vote))
}

// listVotes godoc
// @Summary List all votes
// @Description Citizens see their own papers; politics sees results only
// @Tags votes
// @Produce  json
// @Success 200 {array} dto.VoteResponse
// @Failure 403 {object} map[string]string "Not permitted"
// @Security BearerAuth
// @Router /votes [get]
func (h *voteHandler) listVotes(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	votes, err := h.voteService.GetAllVotes(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToVoteResponses(votes))
}

// castVote godoc
// @Summary Cast a voting paper
// @Tags votes
// @Accept  json
// @Produce  json
// @Param   id path string true "Vote ID"
// @Param   paper body dto.CastVoteRequest true "Choice vector, one entry per choice"
// @Success 201 {object} dto.VoteResponse
// @Failure 400 {object} map[string]string "Malformed paper"
// @Failure 409 {object} map[string]string "Vote ended or already cast"
// @Security BearerAuth
// @Router /votes/{id}/papers [post]
func (h *voteHandler) castVote(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	vote, err := h.voteService.CastVote(c.Request.Context(), caller, c.Param("id"), req.Vote)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToVoteResponse(vote))
}

// deleteVote godoc
// @Summary Delete a vote and all its papers
// @Tags votes
// @Produce  json
// @Param   id path string true "Vote ID"
// @Success 204 "Deleted"
// @Failure 403 {object} map[string]string "Not politics"
// @Failure 404 {object} map[string]string "Vote not found"
// @Security BearerAuth
// @Router /votes/{id} [delete]
func (h *voteHandler) deleteVote(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	if err := h.voteService.DeleteVote(c.Request.Context(), caller, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
