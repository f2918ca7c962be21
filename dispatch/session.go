// Package dispatch answers inspection requests: a command name and a
// JSON body in, a JSON value or a human readable error out.
package dispatch

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/skdltmxn/smsinspect/internal/logging"
	"github.com/skdltmxn/smsinspect/objparams"
	"github.com/skdltmxn/smsinspect/sms"
)

// DefaultParamsDir is the catalog directory used when Config.Params is
// nil.
const DefaultParamsDir = "ObjectParameters"

// ErrUnknownCommand indicates a command name with no handler.
var ErrUnknownCommand = errors.New("unknown command")

// Config configures a Session.
type Config struct {
	// Finder locates the game on first use.
	Finder *sms.Finder

	// PID, when non-zero, attaches to that process instead of searching.
	PID int

	// Params is the shared object parameter catalog.
	Params *objparams.Store

	Logger logging.Logger
}

// Session serves the requests of one client. It attaches to the game
// lazily and owns it until Close.
type Session struct {
	cfg  Config
	game *sms.Game
	log  logging.Logger
}

// NewSession returns a session that has not attached to a game yet.
func NewSession(cfg Config) *Session {
	if cfg.Finder == nil {
		cfg.Finder = &sms.Finder{}
	}
	log := cfg.Logger
	if log == nil {
		log = logging.NoOp{}
	}
	if cfg.Params == nil {
		cfg.Params = objparams.NewStore(DefaultParamsDir, objparams.Options{Logger: log})
	}
	return &Session{cfg: cfg, log: log}
}

// Attach uses g for later requests, closing any previously attached
// game.
func (s *Session) Attach(g *sms.Game) {
	if s.game != nil && s.game != g {
		s.game.Close()
	}
	s.game = g
}

// Game returns the attached game, finding it first if needed.
func (s *Session) Game() (*sms.Game, error) {
	if s.game != nil {
		return s.game, nil
	}

	var g *sms.Game
	var err error
	if s.cfg.PID != 0 {
		g, err = s.cfg.Finder.Find(s.cfg.PID)
	} else {
		g, err = s.cfg.Finder.FindOne()
	}
	if err != nil {
		return nil, err
	}
	s.log.Logf(logging.SeverityInfo, "attached to %s in pid %d (%s backend)", g.Version(), g.PID(), g.Kind())
	s.game = g
	return g, nil
}

// Close releases the attached game.
func (s *Session) Close() error {
	if s.game == nil {
		return nil
	}
	err := s.game.Close()
	s.game = nil
	return err
}

type handler func(s *Session, body json.RawMessage) (any, error)

var handlers map[string]handler

func init() {
	handlers = map[string]handler{
		"init":        handleInit,
		"getVersion":  handleGetVersion,
		"getManagers": handleGetManagers,
		"getManagees": handleGetManagees,
		"read":        handleRead,
		"readString":  handleReadString,
		"write":       handleWrite,
		"getClass":    handleGetClass,
		"getFields":   handleGetFields,
		"getTypes":    handleGetTypes,
		"reload":      handleReload,
		"disasm":      handleDisasm,
	}
}

// Commands returns the supported command names, sorted.
func Commands() []string {
	return slices.Sorted(maps.Keys(handlers))
}

// Handle runs one command. The result is ready for encoding/json.
func (s *Session) Handle(command string, body json.RawMessage) (any, error) {
	h, ok := handlers[command]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
	return h(s, body)
}

// Request is one command in the JSON framing used by HandleJSON.
type Request struct {
	ID      json.RawMessage `json:"id,omitempty"`
	Command string          `json:"command"`
	Body    json.RawMessage `json:"body,omitempty"`
}

// Response answers a Request. Exactly one of Result and Error is set.
type Response struct {
	ID     json.RawMessage `json:"id,omitempty"`
	Result any             `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// HandleJSON decodes a Request, runs it and encodes the Response.
func (s *Session) HandleJSON(data []byte) []byte {
	var req Request
	var resp Response
	if err := json.Unmarshal(data, &req); err != nil {
		resp.Error = fmt.Sprintf("invalid request: %v", err)
	} else {
		resp.ID = req.ID
		result, err := s.Handle(req.Command, req.Body)
		if err != nil {
			resp.Error = err.Error()
		} else {
			resp.Result = nullable{result}
		}
	}

	out, err := json.Marshal(resp)
	if err != nil {
		out, _ = json.Marshal(Response{ID: resp.ID, Error: err.Error()})
	}
	return out
}

// nullable keeps a nil result as an explicit null instead of dropping it.
type nullable struct {
	v any
}

func (n nullable) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.v)
}
