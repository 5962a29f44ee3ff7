package websocket

// 服务端 → 客户端
const (
	EventState       = "state"        // engine event + table snapshot
	EventPrompt      = "prompt"       // the seat is waiting for bet/action/continue
	EventTableJoined = "table_joined" // lobby seated the player
	EventTableClosed = "table_closed" // session finished
	EventError       = "error"
)

// 客户端 → 服务端
const (
	EventBet      = "bet"      // data: {"amount": 10}
	EventAction   = "action"   // data: {"move": "h" | "s"}
	EventContinue = "continue" // data: {"again": true}
)

type OutgoingMessage struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type IncomingMessage struct {
	From  string      `json:"from"`
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}
