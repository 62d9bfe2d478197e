package results

import (
	"encoding/json"
	"net/http"
	"time"

	"judgeapi/services"
	"judgeapi/utils/response"

	"github.com/gin-gonic/gin"
)

const publicCacheTTL = 30 * time.Second

// GetPublicRankings returns rankings of a publicly visible group
// @Summary Get public rankings
// @Description Rankings of a group whose results surface is open or password-protected
// @Tags Results
// @Produce json
// @Param slug path string true "Group slug"
// @Param password query string false "Results password"
// @Success 200 {array} services.RankingEntry
// @Failure 404 {object} response.ErrorResponse
// @Router /results/public/{slug}/rankings [get]
func GetPublicRankings(c *gin.Context) {
	group, err := services.GatePublicResults(c.Param("slug"), c.Query("password"))
	if err != nil {
		response.Error(c, services.StatusFor(err), err.Error())
		return
	}

	// Rankings are the hot public read, short cache absorbs refresh storms
	cacheKey := "rankings:" + group.ID
	if cached, ok := services.CacheGet(c.Request.Context(), cacheKey); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
		return
	}

	rankings, err := services.GetRankings(group.ID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedComputeResults)
		return
	}

	if payload, err := json.Marshal(rankings); err == nil {
		services.CacheSet(c.Request.Context(), cacheKey, string(payload), publicCacheTTL)
	}
	c.JSON(http.StatusOK, rankings)
}

// GetPublicSummary returns the rollup of a publicly visible group
// @Summary Get a public group summary
// @Description The score rollup of a group whose results surface is reachable
// @Tags Results
// @Produce json
// @Param slug path string true "Group slug"
// @Param password query string false "Results password"
// @Success 200 {object} services.GroupSummary
// @Failure 404 {object} response.ErrorResponse
// @Router /results/public/{slug}/summary [get]
func GetPublicSummary(c *gin.Context) {
	group, err := services.GatePublicResults(c.Param("slug"), c.Query("password"))
	if err != nil {
		response.Error(c, services.StatusFor(err), err.Error())
		return
	}

	summary, err := services.GetGroupSummary(group.ID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedComputeResults)
		return
	}
	c.JSON(http.StatusOK, summary)
}
