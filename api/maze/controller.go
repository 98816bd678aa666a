// Package mazeapi exposes the maze generator over HTTP.
package mazeapi

import (
	"errors"
	"net/http"

	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// MazeController serves the generator's state and accepts operator edits.
type MazeController struct {
	generator i.MazeGenerator
	logger    i.Logger
	upgrader  websocket.Upgrader
}

// NewMazeController initializes a MazeController.
func NewMazeController(g i.MazeGenerator, logger i.Logger) (*MazeController, error) {
	if g == nil {
		return nil, errors.New("maze controller needs a generator")
	}
	return &MazeController{
		generator: g,
		logger:    logger,
		upgrader:  websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	m := route.Group("/maze")
	{
		m.GET("", mc.snapshot)
		m.GET("/cells", mc.cells)
		m.GET("/walls", mc.walls)
		m.GET("/frame", mc.frame)
		m.GET("/ascii", mc.ascii)
		m.GET("/stream", mc.stream)
	}
}

// RegisterProtected registers protected routes.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {
	m := route.Group("/maze")
	{
		m.POST("/start", mc.start)
		m.POST("/advance", mc.advance)
		m.POST("/commands", mc.command)
	}
}

func (mc *MazeController) snapshot(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, mc.generator.Snapshot())
}

func (mc *MazeController) cells(ctx *gin.Context) {
	snap := mc.generator.Snapshot()
	ctx.JSON(http.StatusOK, &CellsResponse{
		State:               snap.State,
		LongestWalkDistance: snap.LongestWalkDistance,
		Cells:               snap.Cells,
	})
}

func (mc *MazeController) walls(ctx *gin.Context) {
	snap := mc.generator.Snapshot()
	ctx.JSON(http.StatusOK, &WallsResponse{State: snap.State, Walls: snap.Walls})
}

func (mc *MazeController) frame(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, mc.generator.Frame())
}

func (mc *MazeController) ascii(ctx *gin.Context) {
	ctx.String(http.StatusOK, mc.generator.ASCII())
}

// start restarts generation. Fields missing from the body keep their current
// values; an empty body regenerates with the current parameters.
func (mc *MazeController) start(ctx *gin.Context) {
	params := mc.generator.Params()
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&params); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	err := mc.generator.Configure(ctx.Request.Context(), params)
	if errors.Is(err, service.ErrInvalidParams) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, mc.generator.Snapshot())
}

func (mc *MazeController) advance(ctx *gin.Context) {
	var request AdvanceRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	removed, err := mc.generator.Advance(ctx.Request.Context(), request.Steps)
	if errors.Is(err, service.ErrInvalidSteps) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, &AdvanceResponse{Removed: removed, State: mc.generator.Snapshot().State})
}

func (mc *MazeController) command(ctx *gin.Context) {
	var request CommandRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := mc.generator.Apply(ctx.Request.Context(), i.Command(request.Command))
	if errors.Is(err, service.ErrUnknownCommand) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, mc.generator.Params())
}
