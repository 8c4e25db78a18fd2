package service

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Message 是推播給訂閱者的通知內容
type Message struct {
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	EventID   uint      `json:"event_id"`
	UserID    uint      `json:"user_id,omitempty"`
	Role      string    `json:"role,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Client 代表一個訂閱活動通知的 WebSocket 連接
type Client struct {
	Conn     *websocket.Conn // WebSocket 連接
	UserID   uint            // 使用者 ID
	EventID  uint            // 訂閱的活動 ID
	Role     string          // 使用者在活動中的角色 (organizer/participant/admin)
	SendChan chan *Message   // 消息發送通道，用於異步傳送消息

	mu     sync.Mutex // 保護 closed 與對 SendChan 的寫入端
	closed bool
}

// trySend 把訊息投入發送佇列
// 已關閉的客戶端直接當作投遞完成；回傳 false 表示佇列已滿，對端停止消費
func (c *Client) trySend(message *Message) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return true
	}
	select {
	case c.SendChan <- message:
		return true
	default:
		return false
	}
}

// shutdown 關閉發送通道與底層連接
// 連接的讀取端與廣播端都可能先到，重複呼叫必須安全
func (c *Client) shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.SendChan)
	if c.Conn != nil {
		c.Conn.Close()
	}
}

// WebSocketService 管理所有的 WebSocket 連接和消息傳遞
// 活動相關的寫入（報名、評價、活動更新）發生後由各服務呼叫廣播
type WebSocketService struct {
	clients    map[uint]map[*Client]bool // 兩層 map: eventID -> client -> bool
	clientsMux sync.RWMutex              // 用於保護 clients map 的讀寫鎖
}

// NewWebSocketService 創建並初始化新的 WebSocket 服務
func NewWebSocketService() *WebSocketService {
	return &WebSocketService{
		clients: make(map[uint]map[*Client]bool),
	}
}

// HandleConnection 處理新的 WebSocket 連接請求，阻塞到連接關閉為止
func (s *WebSocketService) HandleConnection(conn *websocket.Conn, eventID, userID uint, role string) {
	client := &Client{
		Conn:     conn,
		UserID:   userID,
		EventID:  eventID,
		Role:     role,
		SendChan: make(chan *Message, 256), // 設置緩衝大小為 256 的消息通道
	}

	s.addClient(client)

	// 確保連接關閉時清理資源
	defer func() {
		s.removeClient(client)
		client.shutdown()
	}()

	// 啟動讀寫處理
	go s.writePump(client)
	s.readPump(client)
}

// readPump 持續讀取客戶端的訊息
// 通知是單向推播，收到的內容一律丟棄，讀取只是為了處理關閉與心跳
func (s *WebSocketService) readPump(client *Client) {
	client.Conn.SetReadLimit(4096) // 設置最大消息大小為 4KB
	client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket unexpected close error: %v", err)
			}
			break
		}
	}
}

// writePump 處理向客戶端發送消息的邏輯
func (s *WebSocketService) writePump(client *Client) {
	// 設置心跳檢查計時器
	ticker := time.NewTicker(54 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-client.SendChan:
			// 設置寫入超時
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			messageBytes, err := json.Marshal(message)
			if err != nil {
				log.Printf("message encoding error: %v", err)
				continue
			}
			if err := client.Conn.WriteMessage(websocket.TextMessage, messageBytes); err != nil {
				return
			}

		case <-ticker.C:
			// 發送心跳包
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// BroadcastToEvent 向訂閱該活動的所有客戶端廣播消息
// 在持鎖期間先把訂閱者複製成快照，迭代時不能碰還在被增刪的 map
func (s *WebSocketService) BroadcastToEvent(eventID uint, message *Message) {
	s.clientsMux.RLock()
	targets := make([]*Client, 0, len(s.clients[eventID]))
	for client := range s.clients[eventID] {
		targets = append(targets, client)
	}
	s.clientsMux.RUnlock()

	for _, client := range targets {
		if !client.trySend(message) {
			// 客戶端消息隊列已滿，關閉連接
			s.removeClient(client)
			client.shutdown()
		}
	}
}

// BroadcastSystemMessage 發送系統通知到指定活動
func (s *WebSocketService) BroadcastSystemMessage(eventID uint, content string) {
	s.BroadcastToEvent(eventID, &Message{
		Type:      "system",
		Content:   content,
		EventID:   eventID,
		Timestamp: time.Now(),
	})
}

// addClient 安全地添加新的客戶端連接
func (s *WebSocketService) addClient(client *Client) {
	s.clientsMux.Lock()
	defer s.clientsMux.Unlock()

	if s.clients[client.EventID] == nil {
		s.clients[client.EventID] = make(map[*Client]bool)
	}
	s.clients[client.EventID][client] = true
}

// removeClient 安全地移除客戶端連接
func (s *WebSocketService) removeClient(client *Client) {
	s.clientsMux.Lock()
	defer s.clientsMux.Unlock()

	if clients, ok := s.clients[client.EventID]; ok {
		delete(clients, client)
		// 如果活動已經沒有訂閱者，刪除整個項目
		if len(clients) == 0 {
			delete(s.clients, client.EventID)
		}
	}
}

// GetEventClients 獲取指定活動目前的在線訂閱數
func (s *WebSocketService) GetEventClients(eventID uint) int {
	s.clientsMux.RLock()
	defer s.clientsMux.RUnlock()

	return len(s.clients[eventID])
}
