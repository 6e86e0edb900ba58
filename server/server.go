package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/oncorag/gliorag/internal/models"
	"github.com/oncorag/gliorag/pkg/rag"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Be careful with this in production
	},
}

// Message is the wire format in both directions. Incoming type "question"
// produces an "answer" with the grounded source list in Data, or an
// "error".
type Message struct {
	Type    string      `json:"type"`
	Content string      `json:"content"`
	Data    interface{} `json:"data,omitempty"`
}

// SourceSummary is the per-source citation info attached to an answer,
// positionally matching the [source_i] markers in the answer text.
type SourceSummary struct {
	Label      string  `json:"label"`
	SourceType string  `json:"source_type"`
	Name       string  `json:"name"`
	Year       string  `json:"year"`
	Extra      string  `json:"extra,omitempty"`
	Distance   float64 `json:"distance"`
}

// AnswerServer serves question-answering over WebSocket.
type AnswerServer struct {
	addr   string
	engine *rag.Engine
}

func New(addr string, engine *rag.Engine) *AnswerServer {
	return &AnswerServer{addr: addr, engine: engine}
}

// Start blocks serving the /ws endpoint until the listener fails.
func (s *AnswerServer) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)

	log.Printf("answer server listening on %s", s.addr)
	return http.ListenAndServe(s.addr, mux)
}

func (s *AnswerServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			log.Printf("Error reading message: %v", err)
			break
		}

		var msg Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		s.handleMessage(r.Context(), conn, msg)
	}
}

func (s *AnswerServer) handleMessage(ctx context.Context, conn *websocket.Conn, msg Message) {
	if msg.Type != "question" {
		s.send(conn, Message{Type: "error", Content: fmt.Sprintf("unknown message type: %s", msg.Type)})
		return
	}

	question := strings.TrimSpace(msg.Content)
	if question == "" {
		s.send(conn, Message{Type: "error", Content: "empty question"})
		return
	}

	answer, err := s.engine.AnswerQuestion(ctx, question)
	if err != nil {
		s.send(conn, Message{Type: "error", Content: err.Error()})
		return
	}

	s.send(conn, Message{
		Type:    "answer",
		Content: answer.Text,
		Data:    SummarizeSources(answer.Sources),
	})
}

func (s *AnswerServer) send(conn *websocket.Conn, msg Message) {
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("Error writing message: %v", err)
	}
}

// SummarizeSources flattens retrieved chunks into citation rows, keeping
// retrieval order so labels line up with the answer's markers.
func SummarizeSources(sources []models.RetrievedChunk) []SourceSummary {
	out := make([]SourceSummary, 0, len(sources))
	for i, src := range sources {
		summary := SourceSummary{
			Label:      fmt.Sprintf("source_%d", i+1),
			SourceType: metaString(src.Metadata, "source_type"),
			Year:       metaString(src.Metadata, "year"),
			Distance:   src.Distance,
		}

		summary.Name = metaString(src.Metadata, "title")
		if summary.Name == "" {
			summary.Name = metaString(src.Metadata, "guideline_name")
		}
		if summary.Name == "" {
			summary.Name = metaString(src.Metadata, "file_name")
		}

		summary.Extra = metaString(src.Metadata, "pmid")
		if summary.Extra == "" {
			summary.Extra = metaString(src.Metadata, "file_name")
		}

		out = append(out, summary)
	}
	return out
}

func metaString(meta map[string]any, key string) string {
	if meta == nil {
		return ""
	}
	v, ok := meta[key]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
