package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"relaybot/internal/domain"
)

const defaultHistoryLimit = 50

// sendRequest mirrors the wire shape of a send intent. Media selection is by
// field presence; the photo-over-video precedence is applied in
// domain.NewSendIntent.
type sendRequest struct {
	ChatID              string `json:"chat_id"`
	Text                string `json:"text"`
	PhotoURL            string `json:"photo_url,omitempty"`
	VideoURL            string `json:"video_url,omitempty"`
	ParseMode           string `json:"parse_mode,omitempty"`
	DisableNotification bool   `json:"disable_notification,omitempty"`
}

func (r sendRequest) intent() domain.SendIntent {
	return domain.NewSendIntent(r.ChatID, r.Text, r.PhotoURL, r.VideoURL, r.ParseMode, r.DisableNotification)
}

type editRequest struct {
	ChatID    string `json:"chat_id"`
	MessageID int    `json:"message_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

type deleteRequest struct {
	ChatID    string `json:"chat_id"`
	MessageID int    `json:"message_id"`
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Telegram Relay API",
		"version": s.cfg.Version,
		"status":  "active",
		"endpoints": map[string]string{
			"bot_info":       "/api/bot/info",
			"send_message":   "/api/messages/send",
			"edit_message":   "/api/messages/edit",
			"delete_message": "/api/messages/delete",
			"get_history":    "/api/messages/history",
			"send_bulk":      "/api/messages/send-bulk",
			"health":         "/api/health",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	count, err := s.log.Count(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "healthy",
		"timestamp":     time.Now().Format(time.RFC3339),
		"bot_active":    s.gw != nil,
		"messages_sent": count,
	})
}

func (s *Server) handleBotInfo(w http.ResponseWriter, r *http.Request) {
	self, err := s.gw.SelfInfo(r.Context())
	if err != nil {
		s.logger.Error("bot info failed", "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data": map[string]any{
			"id":                          self.ID,
			"username":                    self.Username,
			"first_name":                  self.FirstName,
			"can_join_groups":             self.CanJoinGroups,
			"can_read_all_group_messages": self.CanReadAllGroupMessages,
			"supports_inline_queries":     self.SupportsInlineQueries,
		},
	})
}

func (s *Server) handleChatInfo(w http.ResponseWriter, r *http.Request) {
	target := chi.URLParam(r, "chat_id")

	chat, err := s.gw.ChatInfo(r.Context(), target)
	if err != nil {
		s.logger.Error("chat info failed", "chat_id", target, "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Member count only applies to groups; channels and DMs report null.
	var memberCount *int
	if chat.Type == "group" || chat.Type == "supergroup" {
		n, err := s.gw.ChatMemberCount(r.Context(), target)
		if err != nil {
			s.logger.Error("member count failed", "chat_id", target, "err", err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		memberCount = &n
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data": map[string]any{
			"id":           chat.ID,
			"title":        chat.Title,
			"username":     chat.Username,
			"type":         chat.Type,
			"description":  chat.Description,
			"member_count": memberCount,
		},
	})
}

func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if !s.decode(w, r, &req) {
		return
	}

	receipt, err := s.engine.Send(r.Context(), req.intent())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "message send failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "message sent",
		"data":    sentData(receipt.Sent),
	})
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	var req editRequest
	if !s.decode(w, r, &req) {
		return
	}

	parseMode := req.ParseMode
	if parseMode == "" {
		parseMode = domain.DefaultParseMode
	}
	err := s.engine.Edit(r.Context(), domain.EditIntent{
		Target:    req.ChatID,
		MessageID: req.MessageID,
		Body:      req.Text,
		ParseMode: parseMode,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "message edit failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "message edited",
		"data": map[string]any{
			"message_id": req.MessageID,
			"chat_id":    req.ChatID,
		},
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if !s.decode(w, r, &req) {
		return
	}

	err := s.engine.Delete(r.Context(), domain.DeleteIntent{
		Target:    req.ChatID,
		MessageID: req.MessageID,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "message delete failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "message deleted",
		"data": map[string]any{
			"message_id": req.MessageID,
			"chat_id":    req.ChatID,
		},
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	total, err := s.log.Count(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	msgs, err := s.log.Suffix(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if msgs == nil {
		msgs = []domain.Outcome{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data": map[string]any{
			"total":    total,
			"messages": msgs,
		},
	})
}

func (s *Server) handleSendBulk(w http.ResponseWriter, r *http.Request) {
	var reqs []sendRequest
	if !s.decode(w, r, &reqs) {
		return
	}

	intents := make([]domain.SendIntent, 0, len(reqs))
	for _, req := range reqs {
		intents = append(intents, req.intent())
	}

	report := s.engine.SendBulk(r.Context(), intents)

	results := make([]map[string]any, 0, len(report.Results))
	for _, res := range report.Results {
		item := map[string]any{
			"chat_id": res.Target,
			"success": res.Success,
		}
		if res.Success {
			item["data"] = sentData(res.Receipt.Sent)
		} else {
			item["error"] = res.Err
		}
		results = append(results, item)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": strconv.Itoa(report.Successes) + "/" + strconv.Itoa(len(reqs)) + " messages sent",
		"results": results,
	})
}

func sentData(m domain.SentMessage) map[string]any {
	return map[string]any{
		"message_id": m.MessageID,
		"chat_id":    m.ChatID,
		"date":       m.Date.Format(time.RFC3339),
	}
}

// decode unmarshals a size-limited JSON body; it writes a 400 and returns
// false on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad request")
		return false
	}
	defer r.Body.Close()

	if err := json.Unmarshal(body, v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   msg,
	})
}
