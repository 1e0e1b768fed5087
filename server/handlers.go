package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/katalvlaran/radarmaze/astar"
	"github.com/katalvlaran/radarmaze/explorer"
	"github.com/katalvlaran/radarmaze/mazefile"
	"github.com/katalvlaran/radarmaze/occupancy"
	"github.com/katalvlaran/radarmaze/radar"
)

// maxBody caps request bodies; maze documents are the largest payload.
const maxBody = 8 << 20

// CreateRequest is the body of POST /api/sessions. Every field is optional.
type CreateRequest struct {
	Maze       json.RawMessage `json:"maze,omitempty"`
	Resolution float64         `json:"resolution,omitempty"`
	RadarRange int             `json:"radar_range,omitempty"`
	AngleStep  int             `json:"angle_step,omitempty"`
}

// CreateResponse answers a successful create.
type CreateResponse struct {
	ID       string            `json:"id"`
	Height   int               `json:"height"`
	Width    int               `json:"width"`
	Snapshot explorer.Snapshot `json:"snapshot"`
}

// CommandRequest is the body of POST /api/sessions/{id}/commands.
//
//	move   direction: up|down|left|right or w|s|a|d
//	start  stop  clear  home  exit
//	range  value: new radar range
//	step   value: number of steps, default 1
type CommandRequest struct {
	Command   string `json:"command"`
	Direction string `json:"direction,omitempty"`
	Value     int    `json:"value,omitempty"`
}

// CommandResponse carries the command outcome and the resulting snapshot.
type CommandResponse struct {
	Command   string                `json:"command"`
	Moved     *bool                 `json:"moved,omitempty"`
	Path      astar.Path            `json:"path,omitempty"`
	Reachable *bool                 `json:"reachable,omitempty"`
	Steps     []explorer.StepResult `json:"steps,omitempty"`
	Snapshot  explorer.Snapshot     `json:"snapshot"`
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err = json.Unmarshal(raw, &req); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid JSON: %w", err))
			return
		}
	}

	desc := s.maze
	if len(req.Maze) > 0 {
		if desc, err = mazefile.Parse(bytes.NewReader(req.Maze)); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	if desc == nil {
		writeError(w, http.StatusBadRequest, ErrNoMaze)
		return
	}

	resolution := req.Resolution
	if resolution <= 0 && len(req.Maze) == 0 {
		resolution = s.cfg.Maze.Resolution
	}
	grid, start, err := desc.Build(resolution)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	id := uuid.New()
	logger := s.log.With(slog.String("session", id.String()))
	opts := s.cfg.ExplorerOptions(logger)
	if req.RadarRange != 0 {
		opts = append(opts, explorer.WithRadarRange(req.RadarRange))
	}
	if req.AngleStep != 0 {
		opts = append(opts, explorer.WithAngleStep(req.AngleStep))
	}
	exp, err := explorer.New(grid, start, opts...)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	sess, err := s.add(id, exp)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	logger.Info("session created",
		slog.Int("height", grid.Height()),
		slog.Int("width", grid.Width()),
		slog.String("start", start.String()))

	sess.mu.Lock()
	snap := sess.exp.Snapshot()
	sess.mu.Unlock()
	writeJSON(w, http.StatusCreated, CreateResponse{
		ID:       sess.id.String(),
		Height:   grid.Height(),
		Width:    grid.Width(),
		Snapshot: snap,
	})
}

func (s *Server) listSessions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"sessions": s.ids()})
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFor(w, r)
	if !ok {
		return
	}
	sess.mu.Lock()
	snap := sess.exp.Snapshot()
	sess.mu.Unlock()

	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if !s.remove(id) {
		writeError(w, http.StatusNotFound, fmt.Errorf("%w: %s", ErrSessionNotFound, id))
		return
	}
	s.log.Info("session deleted", slog.String("session", id.String()))
	w.WriteHeader(http.StatusNoContent)
}

// getGrid writes the occupancy grid. The grid is immutable, so no session
// lock is needed.
func (s *Server) getGrid(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFor(w, r)
	if !ok {
		return
	}
	grid := sess.exp.Grid()

	var buf bytes.Buffer
	var err error
	contentType := "text/plain; charset=utf-8"
	switch format := r.URL.Query().Get("format"); format {
	case "", "text":
		err = grid.WriteText(&buf)
	case "binary":
		contentType = "application/octet-stream"
		err = grid.WriteBinary(&buf)
	case "preview":
		buf.WriteString(grid.Preview(grid.Height(), grid.Width()))
	default:
		writeError(w, http.StatusBadRequest, fmt.Errorf("unknown format %q", format))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) postCommand(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFor(w, r)
	if !ok {
		return
	}
	var req CommandRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid JSON: %w", err))
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	resp, err := apply(sess.exp, req)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	resp.Snapshot = sess.exp.Snapshot()
	writeJSON(w, http.StatusOK, resp)
}

// apply runs one command against e. The caller holds the session lock.
func apply(e *explorer.Explorer, req CommandRequest) (CommandResponse, error) {
	resp := CommandResponse{Command: strings.ToLower(req.Command)}
	switch resp.Command {
	case "move":
		d, err := explorer.ParseDirection(req.Direction)
		if err != nil {
			return resp, err
		}
		moved, err := e.Move(d)
		if err != nil {
			return resp, err
		}
		resp.Moved = &moved
	case "start":
		if err := e.StartExploration(); err != nil {
			return resp, err
		}
	case "stop":
		e.StopExploration()
	case "clear":
		e.StopAndClear()
	case "home", "exit":
		var path astar.Path
		var err error
		if resp.Command == "home" {
			path, err = e.GoHome()
		} else {
			path, err = e.GoToNearestExit()
		}
		if err != nil {
			return resp, err
		}
		reachable := path != nil
		resp.Path, resp.Reachable = path, &reachable
	case "range":
		if err := e.SetRadarRange(req.Value); err != nil {
			return resp, err
		}
	case "step":
		n := max(req.Value, 1)
		for i := 0; i < n; i++ {
			res, err := e.Step()
			if err != nil {
				return resp, err
			}
			resp.Steps = append(resp.Steps, res)
			if res.State != explorer.Exploring && res.State != explorer.Navigating {
				break
			}
		}
	default:
		return resp, fmt.Errorf("%w: %q", errUnknownCommand, req.Command)
	}

	return resp, nil
}

var errUnknownCommand = errors.New("server: unknown command")

// sessionFor resolves the {id} route variable, writing the error response
// itself when it fails.
func (s *Server) sessionFor(w http.ResponseWriter, r *http.Request) (*session, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid session id: %w", err))
		return nil, false
	}
	sess, err := s.lookup(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return nil, false
	}
	return sess, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, explorer.ErrBusy), errors.Is(err, explorer.ErrNoExits):
		return http.StatusConflict
	case errors.Is(err, ErrTooManySessions):
		return http.StatusTooManyRequests
	case errors.Is(err, explorer.ErrBadDirection),
		errors.Is(err, explorer.ErrOptionViolation),
		errors.Is(err, radar.ErrBadRange),
		errors.Is(err, occupancy.ErrBadResolution),
		errors.Is(err, occupancy.ErrBadCoordinate),
		errors.Is(err, occupancy.ErrGridTooLarge),
		errors.Is(err, occupancy.ErrNoSegments),
		errors.Is(err, errUnknownCommand):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
