package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/onsideagency/touchline/internal/textgen"
)

const coachSystemPrompt = "You are a football coaching assistant for a sports agency. " +
	"Answer concisely and practically, grounded in the reference notes when they are relevant."

// maxChatContext bounds how many knowledge articles are stuffed into the
// prompt for one chat turn.
const maxChatContext = 3

type chatPayload struct {
	Message string `json:"message" validate:"required"`
}

// CoachChatHandler streams a model answer token by token as server-sent
// events. Matching knowledge-base articles are folded into the prompt first.
func (s *Server) CoachChatHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload chatPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if err := s.validate.Struct(payload); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
			return
		}

		prompt := payload.Message
		if articles, err := s.Knowledge.Search(payload.Message); err != nil {
			log.Warn("Knowledge search failed, answering without context", "error", err)
		} else if len(articles) > 0 {
			if len(articles) > maxChatContext {
				articles = articles[:maxChatContext]
			}
			var b strings.Builder
			b.WriteString("Reference notes:\n")
			for _, a := range articles {
				fmt.Fprintf(&b, "## %s\n%s\n\n", a.Title, a.Body)
			}
			b.WriteString("Question: ")
			b.WriteString(payload.Message)
			prompt = b.String()
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		err := s.TextGen.Stream(r.Context(), textgen.GenerateRequest{
			System: coachSystemPrompt,
			Prompt: prompt,
		}, func(token string) error {
			// A token containing newlines must become one data: line per
			// line, or the frame ends early.
			for _, line := range strings.Split(token, "\n") {
				if _, err := fmt.Fprintf(w, "data: %s\n", line); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprint(w, "\n"); err != nil {
				return err
			}
			flusher.Flush()
			return nil
		})
		if err != nil {
			// Headers are already out, so the error goes down the stream.
			log.Error("Chat stream failed", "error", err)
			fmt.Fprintf(w, "event: error\ndata: %s\n\n", err.Error())
			flusher.Flush()
			return
		}

		fmt.Fprint(w, "data: [DONE]\n\n")
		flusher.Flush()
	}
}
