package ws

import "encoding/json"

// Типы кадров, которые понимает и отправляет сервер
const (
	TypeState      = "state"       // снапшот онлайна группы при подключении
	TypePeerJoined = "peer_joined" // пользователь открыл подключение
	TypePeerLeft   = "peer_left"   // пользователь закрыл подключение
	TypeMessage    = "message"     // от клиента: новое сообщение
	TypeMessageAck = "message_ack" // подтверждение отправителю, не само сообщение
	TypeTyping     = "typing"      // от клиента: пользователь печатает
	TypeTypingStop = "typing_stop" // от клиента: перестал печатать
	TypeError      = "error"       // ошибка обработки кадра клиента
)

type clientFrame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type StatePayload struct {
	GroupID string   `json:"groupId"`
	Online  []string `json:"online"`
}

type PeerEventPayload struct {
	GroupID string `json:"groupId"`
	UserID  string `json:"userId"`
}

type MessagePayload struct {
	Content string `json:"content"`
}

// для client: снимает pending и дедуплицирует по id
type MessageAckPayload struct {
	ID       string `json:"id"`
	TSUnixMs int64  `json:"tsUnixMs"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}
