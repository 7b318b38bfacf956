// ABOUTME: Route handlers for days, profiles, health samples, chat and foods.
// ABOUTME: Request bodies decode straight into the tracker's input types.
package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/harperreed/fitdiary/internal/tracker"
)

func (h *Handler) appendMeal(c *gin.Context) {
	var in tracker.MealInput
	if err := c.ShouldBindJSON(&in); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	h.dispatch(c, http.StatusCreated, tracker.AppendMealRequest{UserID: c.Param("user"), Date: c.Param("date"), Meal: in})
}

func (h *Handler) removeMeal(c *gin.Context) {
	h.dispatch(c, http.StatusOK, tracker.RemoveMealRequest{UserID: c.Param("user"), Date: c.Param("date"), EntryID: c.Param("id")})
}

func (h *Handler) appendExercise(c *gin.Context) {
	var in tracker.ExerciseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	h.dispatch(c, http.StatusCreated, tracker.AppendExerciseRequest{UserID: c.Param("user"), Date: c.Param("date"), Exercise: in})
}

func (h *Handler) removeExercise(c *gin.Context) {
	h.dispatch(c, http.StatusOK, tracker.RemoveExerciseRequest{UserID: c.Param("user"), Date: c.Param("date"), EntryID: c.Param("id")})
}

func (h *Handler) getDietDay(c *gin.Context) {
	h.dispatch(c, http.StatusOK, tracker.GetDietDayRequest{UserID: c.Param("user"), Date: c.Param("date")})
}

func (h *Handler) getExerciseDay(c *gin.Context) {
	h.dispatch(c, http.StatusOK, tracker.GetExerciseDayRequest{UserID: c.Param("user"), Date: c.Param("date")})
}

func (h *Handler) getDashboard(c *gin.Context) {
	h.dispatch(c, http.StatusOK, tracker.GetDashboardRequest{UserID: c.Param("user"), Date: c.Query("date")})
}

func (h *Handler) getSummary(c *gin.Context) {
	period := c.DefaultQuery("period", "week")
	s, err := h.tracker.Summary(c.Request.Context(), c.Param("user"), period, c.Query("date"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) listDietDays(c *gin.Context) {
	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}
	days, err := h.tracker.ListDietDays(c.Request.Context(), c.Param("user"), c.Query("from"), c.Query("to"), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

func (h *Handler) listExerciseDays(c *gin.Context) {
	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}
	days, err := h.tracker.ListExerciseDays(c.Request.Context(), c.Param("user"), c.Query("from"), c.Query("to"), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

func (h *Handler) getProfile(c *gin.Context) {
	p, err := h.tracker.Profile(c.Request.Context(), c.Param("user"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) updateProfile(c *gin.Context) {
	var in tracker.ProfileUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	h.dispatch(c, http.StatusOK, tracker.UpdateProfileRequest{UserID: c.Param("user"), Update: in})
}

func (h *Handler) recordHealthSample(c *gin.Context) {
	var in tracker.HealthInput
	if err := c.ShouldBindJSON(&in); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.Date == "" {
		in.Date = h.tracker.Today()
	}
	h.dispatch(c, http.StatusCreated, tracker.RecordHealthSampleRequest{UserID: c.Param("user"), Sample: in})
}

func (h *Handler) listHealthSamples(c *gin.Context) {
	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}
	samples, err := h.tracker.HealthHistory(c.Request.Context(), c.Param("user"), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"samples": samples})
}

func (h *Handler) chat(c *gin.Context) {
	var in tracker.ChatRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	h.dispatch(c, http.StatusOK, in)
}

func (h *Handler) searchFoods(c *gin.Context) {
	if h.foods == nil {
		apiError(c, http.StatusNotFound, "food lookup is not configured")
		return
	}
	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}
	facts, err := h.foods.Search(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"foods": facts})
}

func (h *Handler) foodPortion(c *gin.Context) {
	if h.foods == nil {
		apiError(c, http.StatusNotFound, "food lookup is not configured")
		return
	}
	grams := 100.0
	if raw := c.Query("grams"); raw != "" {
		g, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			apiError(c, http.StatusBadRequest, "grams must be a number")
			return
		}
		grams = g
	}
	p, err := h.foods.Portion(c.Request.Context(), c.Param("name"), grams)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
