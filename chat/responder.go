package chat

import (
	"context"
	"math/rand"
	"time"
)

// ResponseGenerator produces one assistant reply for a conversation. The
// orchestrator invokes it off the main flow and merges the result back in
// once it resolves.
type ResponseGenerator interface {
	Generate(ctx context.Context, conv *Conversation, botContext string) (string, error)
}

// Canned reply pools. Which pool is drawn from depends on whether bot
// context text accompanies the request.
var genericResponses = []string{
	"I understand your query. Let me provide some insights on this topic.",
	"That's an interesting question. Here's what I know about it.",
	"Thanks for asking. Based on my knowledge, I can tell you the following.",
	"I'd be happy to help with that. Here's some information that might be useful.",
	"Great question! Let me share some relevant information with you.",
}

var botResponses = []string{
	"Based on the information in my files and instructions, I can provide the following insights...",
	"I've analyzed the data you've uploaded and can tell you that...",
	"According to the files I have access to, here's what I know about your question...",
	"Let me analyze this based on my specialized knowledge and the files you've provided...",
	"Using the context from my configuration and uploaded files, I can answer this as follows...",
}

// SimulatedResponder selects canned replies after a typing delay. The delay
// is longer when bot context is present.
type SimulatedResponder struct {
	Delay    time.Duration
	BotDelay time.Duration
}

// NewSimulatedResponder creates a responder with the given typing delays
func NewSimulatedResponder(delay, botDelay time.Duration) *SimulatedResponder {
	return &SimulatedResponder{Delay: delay, BotDelay: botDelay}
}

// Generate waits out the typing delay and returns one canned reply
func (r *SimulatedResponder) Generate(ctx context.Context, conv *Conversation, botContext string) (string, error) {
	delay := r.Delay
	pool := genericResponses
	if botContext != "" {
		delay = r.BotDelay
		pool = botResponses
	}

	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	// Safe from concurrent in-flight generations; the global source locks.
	return pool[rand.Intn(len(pool))], nil
}
