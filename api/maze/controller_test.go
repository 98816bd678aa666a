package mazeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-maze/api"
	api_i "github.com/beka-birhanu/vinom-maze/api/i"
	"github.com/beka-birhanu/vinom-maze/api/identity"
	"github.com/beka-birhanu/vinom-maze/infrastruture/events"
	logger "github.com/beka-birhanu/vinom-maze/infrastruture/log"
	"github.com/beka-birhanu/vinom-maze/infrastruture/token"
	"github.com/beka-birhanu/vinom-maze/render"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"
)

type MazeControllerSuite struct {
	suite.Suite
	generator *service.Generator
	handler   http.Handler
	token     string
}

func (s *MazeControllerSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (s *MazeControllerSuite) SetupTest() {
	l, err := logger.New("TEST", "", io.Discard)
	s.Require().NoError(err)

	s.generator, err = service.NewGenerator(context.Background(), service.GeneratorConfig{
		Defaults: i.Params{
			Width:         6,
			Height:        5,
			StepBudget:    1,
			Seed:          7,
			CellSize:      20,
			WallThickness: 10,
			WallsVisible:  true,
			Palette:       render.Palette{Wall: render.Black},
		},
		WindowWidth:  640,
		WindowHeight: 480,
		Tick:         time.Hour,
		Publisher:    events.NopPublisher{},
		Logger:       l,
	})
	s.Require().NoError(err)

	controller, err := NewMazeController(s.generator, l)
	s.Require().NoError(err)

	tokenizer := token.NewJwtService("test-secret", "vinom-maze")
	s.token, err = tokenizer.Generate(map[string]interface{}{"role": "operator"}, time.Minute)
	s.Require().NoError(err)

	s.handler = api.NewRouter(api.Config{
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{controller},
		AuthorizationMiddleware: identity.Authoriz(tokenizer),
	}).Handler()
}

func (s *MazeControllerSuite) do(method, path, body string, authorized bool) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorized {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *MazeControllerSuite) decode(rec *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(v))
}

func (s *MazeControllerSuite) TestSnapshot() {
	rec := s.do(http.MethodGet, "/api/v1/maze", "", false)
	s.Require().Equal(http.StatusOK, rec.Code)

	var body map[string]any
	s.decode(rec, &body)
	s.Equal("being_generated", body["state"])
	s.Equal(s.generator.Snapshot().GenerationID.String(), body["generation_id"])
	s.Equal(map[string]any{"x": 0.0, "y": 0.0}, body["current"])
}

func (s *MazeControllerSuite) TestCellsAndWalls() {
	var cells CellsResponse
	rec := s.do(http.MethodGet, "/api/v1/maze/cells", "", false)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.decode(rec, &cells)
	s.Len(cells.Cells, 30)

	var walls WallsResponse
	rec = s.do(http.MethodGet, "/api/v1/maze/walls", "", false)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.decode(rec, &walls)
	s.Len(walls.Walls, 5*5+6*4)
}

func (s *MazeControllerSuite) TestFrameAndASCII() {
	var frame render.Frame
	rec := s.do(http.MethodGet, "/api/v1/maze/frame", "", false)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.decode(rec, &frame)
	s.Len(frame.Cells, 30)
	s.Equal(render.Centered(6, 5, 20, 10, 640, 480), frame.Layout)

	rec = s.do(http.MethodGet, "/api/v1/maze/ascii", "", false)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Header().Get("Content-Type"), "text/plain")
	s.Equal(s.generator.ASCII(), rec.Body.String())
}

func (s *MazeControllerSuite) TestProtectedRoutesNeedToken() {
	for _, path := range []string{"/api/v1/maze/start", "/api/v1/maze/advance", "/api/v1/maze/commands"} {
		rec := s.do(http.MethodPost, path, `{}`, false)
		s.Equal(http.StatusUnauthorized, rec.Code, path)
	}
}

func (s *MazeControllerSuite) TestAdvance() {
	rec := s.do(http.MethodPost, "/api/v1/maze/advance", `{"steps": 4}`, true)
	s.Require().Equal(http.StatusOK, rec.Code)
	var resp AdvanceResponse
	s.decode(rec, &resp)
	s.Equal(4, resp.Removed)

	rec = s.do(http.MethodPost, "/api/v1/maze/advance", `{"steps": 1000}`, true)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.decode(rec, &resp)
	s.Equal(25, resp.Removed)
	s.Equal("generated", resp.State.String())

	rec = s.do(http.MethodPost, "/api/v1/maze/advance", `{"steps": 0}`, true)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *MazeControllerSuite) TestCommands() {
	rec := s.do(http.MethodPost, "/api/v1/maze/commands", `{"command": "width+"}`, true)
	s.Require().Equal(http.StatusOK, rec.Code)
	var params i.Params
	s.decode(rec, &params)
	s.Equal(7, params.Width)

	rec = s.do(http.MethodPost, "/api/v1/maze/commands", `{"command": "fly"}`, true)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/maze/commands", `{}`, true)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *MazeControllerSuite) TestStart() {
	before := s.generator.Snapshot().GenerationID

	rec := s.do(http.MethodPost, "/api/v1/maze/start", `{"width": 3, "height": 2, "palette": {"far": "#00ff00"}}`, true)
	s.Require().Equal(http.StatusOK, rec.Code)
	var snap i.Snapshot
	s.decode(rec, &snap)
	s.NotEqual(before, snap.GenerationID)
	s.Len(snap.Cells, 6)
	s.Equal(10, snap.Params.WallThickness, "fields left out keep their values")
	s.Equal("#00ff00", snap.Params.Palette.Far.Hex())

	rec = s.do(http.MethodPost, "/api/v1/maze/start", "", true)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal(3, s.generator.Params().Width)

	rec = s.do(http.MethodPost, "/api/v1/maze/start", `{"width": 0}`, true)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/maze/start", `{"width": "wide"}`, true)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *MazeControllerSuite) TestStream() {
	srv := httptest.NewServer(s.handler)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/maze/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err)
	defer conn.Close()

	var first StreamMessage
	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(5 * time.Second)))
	s.Require().NoError(conn.ReadJSON(&first))
	s.Equal(s.generator.Snapshot().GenerationID, first.GenerationID)
	s.Zero(first.RemovedWalls)
	s.Len(first.Frame.Cells, 30)

	// The handler subscribes before sending the first message.
	_, err = s.generator.Advance(context.Background(), 2)
	s.Require().NoError(err)

	var next StreamMessage
	s.Require().NoError(conn.ReadJSON(&next))
	s.Equal(2, next.RemovedWalls)

	p := s.generator.Params()
	p.Width, p.Height = 3, 2
	s.Require().NoError(s.generator.Configure(context.Background(), p))

	var restarted StreamMessage
	s.Require().NoError(conn.ReadJSON(&restarted))
	s.Equal(s.generator.Snapshot().GenerationID, restarted.GenerationID)
	s.Zero(restarted.RemovedWalls)
	s.Len(restarted.Frame.Cells, 6, "the frame belongs to the generation it is sent with")
}

func TestMazeControllerSuite(t *testing.T) {
	suite.Run(t, new(MazeControllerSuite))
}
