package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/teslashibe/emotional-helper/pkg/journal"
	"github.com/teslashibe/emotional-helper/pkg/protocol"
)

type controlRecorder struct {
	mu      sync.Mutex
	actions []protocol.Action
	err     error
}

func (r *controlRecorder) handle(ctx context.Context, a protocol.Action) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, a)
	return r.err
}

func (r *controlRecorder) seen() []protocol.Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]protocol.Action(nil), r.actions...)
}

func TestStatusEndpoint(t *testing.T) {
	s := NewServer("0")
	s.UpdateState(func(st *State) {
		st.Emotion = "您当前情绪为：开心"
		st.Label = "happy"
	})

	resp, err := s.App().Test(httptest.NewRequest("GET", "/api/status", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var st State
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		t.Fatal(err)
	}
	if st.Emotion != "您当前情绪为：开心" || st.MusicTitle != NoMusicTitle || st.Elapsed != ZeroElapsed {
		t.Errorf("unexpected state %+v", st)
	}
}

func TestIndexServed(t *testing.T) {
	s := NewServer("0")
	resp, err := s.App().Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != 200 || !strings.Contains(string(body), "/ws/status") {
		t.Errorf("index not served: %d", resp.StatusCode)
	}
}

func TestControlEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		handlerErr error
		noHandler  bool
		wantStatus int
		wantOK     bool
	}{
		{name: "pause", path: "/api/controls/pause", wantStatus: 200, wantOK: true},
		{name: "volume up", path: "/api/controls/volume-up", wantStatus: 200, wantOK: true},
		{name: "unknown action", path: "/api/controls/dance", wantStatus: 400},
		{name: "handler error", path: "/api/controls/release", handlerErr: errors.New("engine gone"), wantStatus: 500},
		{name: "loop stopped", path: "/api/controls/resume", handlerErr: context.Canceled, wantStatus: 503},
		{name: "not configured", path: "/api/controls/quit", noHandler: true, wantStatus: 503},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &controlRecorder{err: tt.handlerErr}
			var opts []Option
			if !tt.noHandler {
				opts = append(opts, WithControl(rec.handle))
			}
			s := NewServer("0", opts...)

			resp, err := s.App().Test(httptest.NewRequest("POST", tt.path, nil))
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if tt.wantStatus == 400 {
				return
			}
			var res protocol.ResultData
			json.NewDecoder(resp.Body).Decode(&res)
			if res.OK != tt.wantOK {
				t.Errorf("ok = %v, want %v (%s)", res.OK, tt.wantOK, res.Error)
			}
		})
	}
}

func TestHistoryEndpoint(t *testing.T) {
	mem := journal.NewMemory(10)
	mem.Record(context.Background(), journal.Entry{Label: "sad", Line: "抱抱你", Spoken: true})
	s := NewServer("0", WithHistory(mem.Recent))

	resp, err := s.App().Test(httptest.NewRequest("GET", "/api/history?limit=5", nil))
	if err != nil {
		t.Fatal(err)
	}
	var entries []journal.Entry
	json.NewDecoder(resp.Body).Decode(&entries)
	if len(entries) != 1 || entries[0].Label != "sad" {
		t.Errorf("unexpected history %+v", entries)
	}

	resp, _ = s.App().Test(httptest.NewRequest("GET", "/api/history?limit=abc", nil))
	if resp.StatusCode != 400 {
		t.Errorf("bad limit status = %d, want 400", resp.StatusCode)
	}
}

func TestLogsEndpoint(t *testing.T) {
	s := NewServer("0")
	for i := 0; i < maxLogs+10; i++ {
		s.AddLog("info", "line")
	}
	if n := len(s.Logs()); n != maxLogs {
		t.Errorf("buffered %d logs, want %d", n, maxLogs)
	}

	resp, _ := s.App().Test(httptest.NewRequest("GET", "/api/logs", nil))
	var logs []LogEntry
	json.NewDecoder(resp.Body).Decode(&logs)
	if len(logs) != maxLogs {
		t.Errorf("GET /api/logs returned %d entries", len(logs))
	}
}

func TestWebSocketRequiresUpgrade(t *testing.T) {
	s := NewServer("0")
	resp, _ := s.App().Test(httptest.NewRequest("GET", "/ws/status", nil))
	if resp.StatusCode != 426 {
		t.Errorf("status = %d, want 426", resp.StatusCode)
	}
}

// serve starts s on a random local port and returns its ws base URL.
func serve(t *testing.T, s *Server) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	go s.Serve(ln)
	t.Cleanup(func() { s.Shutdown() })
	return "ws://" + ln.Addr().String()
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	var (
		ws  *websocket.Conn
		err error
	)
	for i := 0; i < 20; i++ {
		ws, _, err = websocket.DefaultDialer.Dial(url, nil)
		if err == nil {
			t.Cleanup(func() { ws.Close() })
			return ws
		}
		time.Sleep(25 * time.Millisecond)
	}
	t.Fatalf("dial %s: %v", url, err)
	return nil
}

func TestStatusWebSocket(t *testing.T) {
	s := NewServer("0")
	base := serve(t, s)
	ws := dial(t, base+"/ws/status")
	ws.SetReadDeadline(time.Now().Add(2 * time.Second))

	// first message is the replayed idle state
	var st State
	if err := ws.ReadJSON(&st); err != nil {
		t.Fatalf("read replay: %v", err)
	}
	if !st.Released || st.Icon != "disc" {
		t.Errorf("unexpected initial state %+v", st)
	}

	s.UpdateState(func(st *State) { st.Message = "别生气啦" })
	for {
		if err := ws.ReadJSON(&st); err != nil {
			t.Fatalf("read update: %v", err)
		}
		if st.Message == "别生气啦" {
			break
		}
	}
}

func TestControlWebSocket(t *testing.T) {
	rec := &controlRecorder{}
	s := NewServer("0", WithControl(rec.handle))
	s.UpdateState(func(st *State) { st.Volume = 0.7 })
	base := serve(t, s)
	ws := dial(t, base+"/ws/control")
	ws.SetReadDeadline(time.Now().Add(2 * time.Second))

	send := func(msg *protocol.Message) *protocol.Message {
		t.Helper()
		data, _ := msg.Bytes()
		if err := ws.WriteMessage(websocket.TextMessage, data); err != nil {
			t.Fatalf("write: %v", err)
		}
		_, reply, err := ws.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		out, err := protocol.ParseMessage(reply)
		if err != nil {
			t.Fatalf("parse reply: %v", err)
		}
		return out
	}

	ctrl, _ := protocol.NewControlMessage(protocol.ActionVolumeDown)
	reply := send(ctrl)
	if reply.Type != protocol.TypeResult {
		t.Fatalf("reply type = %s, want result", reply.Type)
	}
	var res protocol.ResultData
	reply.ParseData(&res)
	if !res.OK || res.Action != protocol.ActionVolumeDown || res.Volume != 0.7 {
		t.Errorf("unexpected result %+v", res)
	}
	if got := rec.seen(); len(got) != 1 || got[0] != protocol.ActionVolumeDown {
		t.Errorf("handler saw %v", got)
	}

	bad, _ := protocol.NewMessage(protocol.TypeControl, map[string]string{"action": "dance"})
	if reply := send(bad); reply.Type != protocol.TypeError {
		t.Errorf("unknown action reply = %s, want error", reply.Type)
	}

	ping, _ := protocol.NewMessage(protocol.TypePing, protocol.PingData{ID: "p1"})
	reply = send(ping)
	var pong protocol.PongData
	reply.ParseData(&pong)
	if reply.Type != protocol.TypePong || pong.ID != "p1" {
		t.Errorf("unexpected pong %+v", reply)
	}
}

func TestShutdownIdempotent(t *testing.T) {
	s := NewServer("0")
	s.Shutdown()
	if err := s.Shutdown(); err != nil {
		t.Errorf("second shutdown: %v", err)
	}
}
