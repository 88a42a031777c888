package webui

import (
	"errors"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/TolgaCulfa/sunum2/internal/composer"
	"github.com/TolgaCulfa/sunum2/internal/deck"
	"github.com/TolgaCulfa/sunum2/internal/dialogue"
	"github.com/TolgaCulfa/sunum2/internal/logger"
	"github.com/TolgaCulfa/sunum2/internal/quota"
)

type chatIncoming struct {
	Text string `json:"text"`
}

type chatOutgoing struct {
	Text         string             `json:"text"`
	Choices      []string           `json:"choices,omitempty"`
	Error        string             `json:"error,omitempty"`
	Presentation *deck.Presentation `json:"presentation,omitempty"`
}

// handleChatSocket runs one intake dialogue per websocket connection. Each
// accepted answer advances the dialogue one step; the model-selection answer
// triggers the generation, and quota or provider failures rewind the dialogue
// to model selection so the user can retry with another tier.
func (s *Server) handleChatSocket(w http.ResponseWriter, r *http.Request) {
	owner, err := s.verifier.Verify(r.Context(), bearerToken(r))
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "yetkisiz erişim"})
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("webui: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	state := dialogue.New(s.registry)
	if err := sendPrompt(conn, state); err != nil {
		return
	}

	for {
		var in chatIncoming
		if err := conn.ReadJSON(&in); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("webui: websocket read: %v", err)
			}
			return
		}

		done, err := state.Submit(in.Text)
		if err != nil {
			var verr *dialogue.ValidationError
			if errors.As(err, &verr) {
				if werr := conn.WriteJSON(chatOutgoing{Error: verr.Reason}); werr != nil {
					return
				}
				continue
			}
			if werr := conn.WriteJSON(chatOutgoing{Error: err.Error()}); werr != nil {
				return
			}
			continue
		}

		if !done {
			if err := sendPrompt(conn, state); err != nil {
				return
			}
			continue
		}

		params := state.Params()
		if err := conn.WriteJSON(chatOutgoing{Text: "Sunumunuz hazırlanıyor, lütfen bekleyin..."}); err != nil {
			return
		}
		p, err := s.generator.Generate(r.Context(), composer.GenerateRequest{
			Owner:      owner,
			Topic:      params.Topic,
			SlideCount: params.SlideCount,
			Style:      params.Style,
			Tier:       params.Tier,
			Audience:   params.Audience,
		})
		if err != nil {
			state.RewindToModel()
			if werr := conn.WriteJSON(chatOutgoing{Error: generateFailureText(err)}); werr != nil {
				return
			}
			if werr := sendPrompt(conn, state); werr != nil {
				return
			}
			continue
		}

		if err := conn.WriteJSON(chatOutgoing{
			Text:         "Sunumunuz hazır! 🎉",
			Presentation: p,
		}); err != nil {
			return
		}
		state.Reset()
		if err := sendPrompt(conn, state); err != nil {
			return
		}
	}
}

func sendPrompt(conn *websocket.Conn, state *dialogue.State) error {
	prompt := state.Prompt()
	return conn.WriteJSON(chatOutgoing{Text: prompt.Text, Choices: prompt.Choices})
}

func generateFailureText(err error) string {
	var exceeded *quota.ExceededError
	if errors.As(err, &exceeded) {
		return exceeded.Error()
	}
	var parseErr *composer.ParseError
	if errors.As(err, &parseErr) {
		return "Model çıktısı çözümlenemedi. Başka bir model seçip tekrar deneyin."
	}
	return "Sunum oluşturulamadı. Başka bir model seçip tekrar deneyin."
}
