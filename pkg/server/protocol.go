package server

import (
	"encoding/json"
	stderrors "errors"

	"github.com/vango-dev/vango-modal/internal/errors"
)

// Message types.
const (
	MsgEvent = "event"
	MsgKeyUp = "keyup"
	MsgHTML  = "html"
	MsgError = "error"
)

// ClientMessage is a message sent by the browser.
type ClientMessage struct {
	T   string `json:"t"`
	HID string `json:"hid,omitempty"`
	Ev  string `json:"ev,omitempty"`
	Key string `json:"key,omitempty"`

	// err is set when the frame could not be decoded.
	err error
}

// ServerMessage is a message sent to the browser.
type ServerMessage struct {
	T    string `json:"t"`
	HTML string `json:"html,omitempty"`
	Code string `json:"code,omitempty"`
	Msg  string `json:"msg,omitempty"`
}

// DecodeClientMessage parses a client frame. Unknown types and missing
// fields are reported as E061.
func DecodeClientMessage(data []byte) (ClientMessage, error) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return ClientMessage{}, errors.New("E061").Wrap(err)
	}

	switch msg.T {
	case MsgEvent:
		if msg.HID == "" || msg.Ev == "" {
			return ClientMessage{}, errors.New("E061").WithDetail("event messages need hid and ev")
		}
	case MsgKeyUp:
		if msg.Key == "" {
			return ClientMessage{}, errors.New("E061").WithDetail("keyup messages need key")
		}
	default:
		return ClientMessage{}, errors.New("E061").WithDetail("unknown message type " + `"` + msg.T + `"`)
	}
	return msg, nil
}

// errorMessage converts err into an error frame.
func errorMessage(err error) ServerMessage {
	msg := ServerMessage{T: MsgError, Msg: err.Error()}
	var ve *errors.VangoError
	if stderrors.As(err, &ve) {
		msg.Code = ve.Code
		msg.Msg = ve.FormatCompact()
	}
	return msg
}
