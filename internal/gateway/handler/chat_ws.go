package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"vibechart/internal/chartconfig"
	"vibechart/internal/history"
	"vibechart/internal/pipeline"
	"vibechart/internal/translate"
)

// ChatHandler serves an interactive editing session over a websocket. Each
// connection owns one history log and processes instructions in order.
type ChatHandler struct {
	runner Runner
	charts ChartService
	logger *zap.Logger
}

func NewChatHandler(runner Runner, charts ChartService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{runner: runner, charts: charts, logger: logger}
}

const (
	chatWSWriteWait = 10 * time.Second
	chatWSPongWait  = 60 * time.Second
	chatWSPingEvery = (chatWSPongWait * 9) / 10
	chatWSMaxTurns  = 32
)

var chatWSUpgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type chatWSInbound struct {
	Type   string           `json:"type"`
	Prompt string           `json:"prompt,omitempty"`
	Config chartconfig.Tree `json:"config,omitempty"`
}

type chatWSOutbound struct {
	Type     string           `json:"type"`
	Config   chartconfig.Tree `json:"config,omitempty"`
	Version  int              `json:"version,omitempty"`
	Fallback bool             `json:"fallback,omitempty"`
	Error    string           `json:"error,omitempty"`
	Details  string           `json:"details,omitempty"`
}

func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.runner.Ready(); err != nil {
		writeClassified(w, err)
		return
	}
	sessionID := strings.TrimSpace(r.URL.Query().Get("sessionId"))

	conn, err := chatWSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(chatWSPongWait)); err != nil {
		h.logger.Warn("chat ws set read deadline failed", zap.Error(err))
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(chatWSPongWait))
	})

	writeCh := make(chan chatWSOutbound, 32)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(chatWSPingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case out := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(chatWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(chatWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	hist := history.New(h.initialConfig(ctx, sessionID))
	var turns []translate.Turn
	pushChatWS(writeCh, chatWSOutbound{Type: "config", Config: hist.Current(), Version: hist.Len()})

	for {
		var in chatWSInbound
		if err := conn.ReadJSON(&in); err != nil {
			cancel()
			<-writerDone
			return
		}
		switch strings.ToLower(strings.TrimSpace(in.Type)) {
		case "ping":
			pushChatWS(writeCh, chatWSOutbound{Type: "pong"})
		case "instruction":
			res, err := h.runner.Run(ctx, pipeline.Request{
				Instruction: in.Prompt,
				History:     turns,
				Current:     hist.Current(),
			})
			if err != nil {
				_, body := classify(err)
				h.logger.Warn("chat instruction failed", zap.String("session_id", sessionID), zap.Error(err))
				pushChatWS(writeCh, chatWSOutbound{Type: "error", Error: body.Error, Details: body.Details})
				continue
			}
			version := hist.Append(res.Tree)
			turns = append(turns,
				translate.Turn{Role: "user", Content: strings.TrimSpace(in.Prompt)},
				translate.Turn{Role: "assistant", Content: "updated chart configuration"},
			)
			if len(turns) > chatWSMaxTurns {
				turns = turns[len(turns)-chatWSMaxTurns:]
			}
			pushChatWS(writeCh, chatWSOutbound{Type: "config", Config: res.Tree, Version: version, Fallback: res.Fallback})
		case "undo":
			cfg, ok := hist.Undo()
			if !ok {
				pushChatWS(writeCh, chatWSOutbound{Type: "error", Error: "Nothing to undo"})
				continue
			}
			// The undone change's user and assistant turns go with it.
			if len(turns) >= 2 {
				turns = turns[:len(turns)-2]
			}
			pushChatWS(writeCh, chatWSOutbound{Type: "config", Config: cfg, Version: hist.Len()})
		case "reset":
			cfg := in.Config
			if cfg == nil {
				cfg = chartconfig.Tree{}
			}
			hist.Reset(cfg)
			turns = nil
			pushChatWS(writeCh, chatWSOutbound{Type: "config", Config: hist.Current(), Version: hist.Len()})
		default:
			pushChatWS(writeCh, chatWSOutbound{Type: "error", Error: "unsupported type: " + in.Type})
		}
	}
}

// initialConfig seeds the connection from the session's latest saved chart.
func (h *ChatHandler) initialConfig(ctx context.Context, sessionID string) chartconfig.Tree {
	if sessionID == "" || h.charts == nil {
		return chartconfig.Tree{}
	}
	state, err := h.charts.Load(ctx, sessionID)
	if err != nil {
		h.logger.Warn("chat session load failed", zap.String("session_id", sessionID), zap.Error(err))
		return chartconfig.Tree{}
	}
	if state.Chart == nil || state.Chart.Config == nil {
		return chartconfig.Tree{}
	}
	return state.Chart.Config
}

func pushChatWS(writeCh chan chatWSOutbound, out chatWSOutbound) {
	select {
	case writeCh <- out:
	default:
	}
}
