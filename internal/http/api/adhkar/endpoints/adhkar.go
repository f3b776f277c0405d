package endpoints

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jummah-prayer/server/internal/dhikr"
	"github.com/jummah-prayer/server/internal/http/api"
	"github.com/jummah-prayer/server/internal/http/api/adhkar/packets"
	"github.com/jummah-prayer/server/internal/model"
)

// AdhkarModule mounts the dhikr counter endpoints (JWT required).
func AdhkarModule(counter *dhikr.Counter) api.Module {
	ctl := &AdhkarController{counter: counter}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/adhkar", ctl.listAdhkar)
		c.POST("/adhkar/:index/increment", ctl.increment)
		c.POST("/adhkar/:index/acknowledge", ctl.acknowledge)
		c.POST("/adhkar/:index/reset", ctl.reset)
		c.POST("/adhkar/:index/commit", ctl.commit)
		c.GET("/adhkar/:index/stats", ctl.getStats)
	})
}

type AdhkarController struct {
	counter *dhikr.Counter
}

func indexParam(ctx *gin.Context) (int, *api.APIError) {
	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil || index < 0 || index >= len(dhikr.Definitions) {
		return 0, &api.APIError{Code: http.StatusNotFound, Message: "no such dhikr"}
	}
	return index, nil
}

// GET /api/adhkar
func (a *AdhkarController) listAdhkar(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	counts := a.counter.Counts(user.ID)
	items := make([]packets.DhikrItem, 0, len(dhikr.Definitions))
	for i, def := range dhikr.Definitions {
		items = append(items, packets.DhikrItem{Index: i, Count: counts[i], Definition: def})
	}
	return packets.ListResponse{Adhkar: items}, nil
}

// POST /api/adhkar/:index/increment
func (a *AdhkarController) increment(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	index, apiErr := indexParam(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	count, goalReached, err := a.counter.Increment(user.ID, index)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not save count"}
	}
	return packets.IncrementResponse{
		Index:       index,
		Count:       count,
		Goal:        dhikr.Definitions[index].Goal,
		GoalReached: goalReached,
	}, nil
}

// POST /api/adhkar/:index/acknowledge
func (a *AdhkarController) acknowledge(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	index, apiErr := indexParam(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	if err := a.counter.Acknowledge(user.ID, index); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not reset count"}
	}
	return gin.H{"index": index, "count": 0}, nil
}

// POST /api/adhkar/:index/reset
func (a *AdhkarController) reset(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	index, apiErr := indexParam(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	if err := a.counter.Reset(user.ID, index); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not reset count"}
	}
	return gin.H{"index": index, "count": 0}, nil
}

// POST /api/adhkar/:index/commit
func (a *AdhkarController) commit(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	index, apiErr := indexParam(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	var request packets.CommitRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if err := a.counter.Commit(user.ID, index, *request.Count); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not save count"}
	}
	return gin.H{"index": index, "count": a.counter.Counts(user.ID)[index]}, nil
}

// GET /api/adhkar/:index/stats
func (a *AdhkarController) getStats(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	index, apiErr := indexParam(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	stats, err := a.counter.GetStats(user.ID, index)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load stats"}
	}
	return stats, nil
}
