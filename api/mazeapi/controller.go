package mazeapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/beka-birhanu/backtrack-maze/api/identity"
	dmn "github.com/beka-birhanu/backtrack-maze/domain"
	"github.com/beka-birhanu/backtrack-maze/maze"
	"github.com/beka-birhanu/backtrack-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultGenerationTimeout = 2 * time.Second
	formatText               = "text"
)

// MazeController serves maze previews, step replays and saved mazes.
type MazeController struct {
	mazeService       i.MazeService
	generationTimeout time.Duration
}

// NewMazeController initializes a MazeController. A non-positive timeout
// falls back to the default.
func NewMazeController(ms i.MazeService, generationTimeout time.Duration) (*MazeController, error) {
	if ms == nil {
		return nil, errors.New("nil maze service")
	}
	if generationTimeout <= 0 {
		generationTimeout = defaultGenerationTimeout
	}

	return &MazeController{
		mazeService:       ms,
		generationTimeout: generationTimeout,
	}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.GET("/preview", mc.preview)
		mazes.GET("/steps", mc.steps)
	}
}

// RegisterProtected registers protected routes.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("", mc.create)
		mazes.GET("", mc.list)
		mazes.GET("/:ID", mc.byID)
		mazes.DELETE("/:ID", mc.delete)
	}
}

func (mc *MazeController) timeout(ctx *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx.Request.Context(), mc.generationTimeout)
}

func (mc *MazeController) preview(ctx *gin.Context) {
	var query GenerateQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timeoutCtx, cancel := mc.timeout(ctx)
	defer cancel()
	record, err := mc.mazeService.Preview(timeoutCtx, query.Width, query.Height, query.Seed)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if query.Format == formatText {
		ctx.String(http.StatusOK, record.String())
		return
	}
	ctx.JSON(http.StatusOK, mazeResponse(record))
}

func (mc *MazeController) steps(ctx *gin.Context) {
	var query GenerateQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timeoutCtx, cancel := mc.timeout(ctx)
	defer cancel()
	replay, err := mc.mazeService.Replay(timeoutCtx, query.Width, query.Height, query.Seed)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, stepsResponse(replay))
}

func (mc *MazeController) create(ctx *gin.Context) {
	userID, ok := identity.UserID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	var request CreateMazeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timeoutCtx, cancel := mc.timeout(ctx)
	defer cancel()
	record, err := mc.mazeService.Create(timeoutCtx, userID, request.Name, request.Width, request.Height, request.Seed)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, mazeResponse(record))
}

func (mc *MazeController) list(ctx *gin.Context) {
	userID, ok := identity.UserID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	records, err := mc.mazeService.ByOwner(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]*MazeResponse, 0, len(records))
	for _, r := range records {
		response = append(response, mazeResponse(r))
	}
	ctx.JSON(http.StatusOK, response)
}

func (mc *MazeController) byID(ctx *gin.Context) {
	userID, ok := identity.UserID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid maze id"})
		return
	}

	record, err := mc.mazeService.ByID(ctx.Request.Context(), userID, id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if ctx.Query("format") == formatText {
		ctx.String(http.StatusOK, record.String())
		return
	}
	ctx.JSON(http.StatusOK, mazeResponse(record))
}

func (mc *MazeController) delete(ctx *gin.Context) {
	userID, ok := identity.UserID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid maze id"})
		return
	}

	if err := mc.mazeService.Delete(ctx.Request.Context(), userID, id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// respondError maps service errors onto HTTP statuses.
func respondError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, maze.ErrInvalidDimensions), errors.Is(err, dmn.ErrInvalidMazeName):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, dmn.ErrMazeNotFound), errors.Is(err, dmn.ErrNotOwner):
		// A stranger's maze is reported as missing.
		status, message = http.StatusNotFound, dmn.ErrMazeNotFound.Error()
	case errors.Is(err, context.DeadlineExceeded):
		status, message = http.StatusGatewayTimeout, "generation timed out"
	}

	ctx.JSON(status, gin.H{"error": message})
}
