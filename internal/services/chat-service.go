package services

import (
	"strings"
	"time"
)

// ChatService answers free-text customer questions with keyword-matched
// replies over a static knowledge base, keeping a per-session transcript in
// an injected SessionStore.
type ChatService interface {
	// GenerateResponse replies to the message and records both sides of the
	// exchange in the session's transcript
	GenerateResponse(message, sessionID string) string
	// History returns the session's transcript, oldest first
	History(sessionID string) []ChatMessage
	// ClearHistory removes the session's transcript
	ClearHistory(sessionID string)
	// Stats returns usage counters
	Stats() SessionStats
}

// chatService is the implementation of the ChatService interface
type chatService struct {
	store SessionStore
}

// NewChatService creates a new ChatService backed by the given session store
func NewChatService(store SessionStore) ChatService {
	return &chatService{store: store}
}

func (s *chatService) GenerateResponse(message, sessionID string) string {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	s.store.Append(sessionID, ChatMessage{Role: "user", Content: message, Timestamp: timestamp})

	response := replyFor(message)

	s.store.Append(sessionID, ChatMessage{Role: "assistant", Content: response, Timestamp: time.Now().UTC().Format(time.RFC3339)})
	return response
}

func (s *chatService) History(sessionID string) []ChatMessage {
	return s.store.History(sessionID)
}

func (s *chatService) ClearHistory(sessionID string) {
	s.store.Clear(sessionID)
}

func (s *chatService) Stats() SessionStats {
	return s.store.Stats()
}

// containsAny reports whether msg contains at least one of the keywords
func containsAny(msg string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}

// replyFor picks a reply by keyword tiers; the first matching tier wins
func replyFor(message string) string {
	msg := strings.ToLower(message)

	switch {
	case containsAny(msg, "hello", "hi ", "hey") || msg == "hi":
		return "Hello! Welcome to our pizza delivery service. I can help you with our menu, prices, delivery options and placing an order. What would you like to know?"

	case containsAny(msg, "menu", "available", "what do you have", "pizza"):
		switch {
		case strings.Contains(msg, "pepperoni"):
			return "Our Pepperoni Pizza is a customer favorite! Spicy pepperoni slices with melted mozzarella cheese on our signature crust, at $15.99. Would you like to know about delivery options or place an order?"
		case strings.Contains(msg, "margherita"):
			return "Our Margherita Pizza is a classic choice! Fresh mozzarella, tomato sauce and basil on traditional crust, at $12.99."
		case strings.Contains(msg, "vegetarian"):
			return "Our Vegetarian Pizza is loaded with bell peppers, mushrooms, onions and olives with mozzarella, at $14.99. A healthy and delicious choice!"
		default:
			return "Here's our menu: Margherita ($12.99), Pepperoni ($15.99), Vegetarian ($14.99), Hawaiian ($16.99), BBQ Chicken ($18.99) and Supreme ($20.99). Which pizza interests you most?"
		}

	case containsAny(msg, "price", "cost", "how much", "expensive"):
		return "Our pizzas range from $12.99 (Margherita) to $20.99 (Supreme). Every price includes fresh ingredients and our signature crust. Free delivery on orders over $25!"

	case containsAny(msg, "delivery", "deliver", "how long", "shipping"):
		return "Standard delivery takes 30-45 minutes. Express delivery is 20-30 minutes for an additional $3. Delivery is free on orders over $25."

	case containsAny(msg, "pay", "payment", "cash", "card"):
		return "We accept cash on delivery, credit cards and digital wallets. You can choose your payment method when your order arrives."

	case containsAny(msg, "order", "buy"):
		return "To place an order, pick your pizzas from the menu and tell us your name and phone number. You can order up to 20 items at a time."

	case containsAny(msg, "thank", "thanks"):
		return "You're welcome! Enjoy your pizza, and come back any time."

	default:
		return "I can help you with our menu, prices, delivery options, payment methods and placing an order. What would you like to know?"
	}
}
