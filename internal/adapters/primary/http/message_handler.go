package http

import (
	"net/http"

	"github.com/guipratiko/onlyhelper-back/internal/adapters/primary/validation"
	"github.com/guipratiko/onlyhelper-back/internal/core/ports"
)

type appendMessageRequest struct {
	Content        string `json:"content"`
	AttachmentData string `json:"attachmentData"`
	SessionID      string `json:"sessionId"`
}

// Validate is a no-op: content/attachment rules live in the domain so
// they hold for every entry path.
func (r appendMessageRequest) Validate() error {
	return nil
}

// MessageHandler serves the transcript endpoints. Both run behind the
// access gate inside the service.
type MessageHandler struct {
	messages ports.MessageService
	errors   *ErrorHandler
}

func NewMessageHandler(messages ports.MessageService, errors *ErrorHandler) *MessageHandler {
	return &MessageHandler{messages: messages, errors: errors}
}

// List returns the transcript. Visitors identify themselves with the
// sessionId query parameter; attendants with their bearer token.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	ticketID, err := parseUUIDParam(r, "ticketID")
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	caller := callerFrom(r, r.URL.Query().Get("sessionId"))

	transcript, err := h.messages.ListForTicket(r.Context(), ticketID, caller)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	WriteList(w, transcript)
}

// Append adds a message to the transcript.
func (h *MessageHandler) Append(w http.ResponseWriter, r *http.Request) {
	ticketID, err := parseUUIDParam(r, "ticketID")
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[appendMessageRequest](r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	message, err := h.messages.Append(r.Context(), ports.AppendMessageParams{
		TicketID:   ticketID,
		Content:    req.Content,
		Attachment: req.AttachmentData,
		Caller:     callerFrom(r, req.SessionID),
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	WriteCreated(w, message)
}
