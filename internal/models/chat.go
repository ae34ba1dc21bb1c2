package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatRequest is the body of POST /api/assistant/chat
type ChatRequest struct {
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// ChatReply is the assistant's answer for a single turn
type ChatReply struct {
	Text            string   `json:"text"`
	Intent          string   `json:"intent"`
	Citations       []string `json:"citations"`
	FunctionsCalled []string `json:"functionsCalled"`
	Timestamp       string   `json:"timestamp"`
	ResponseTimeMs  int64    `json:"responseTime"`
}

// ChatLog is the persisted record of one assistant turn
type ChatLog struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Message         string             `bson:"message" json:"message"`
	Intent          string             `bson:"intent" json:"intent"`
	Citations       []string           `bson:"citations,omitempty" json:"citations,omitempty"`
	FunctionsCalled []string           `bson:"functionsCalled,omitempty" json:"functionsCalled,omitempty"`
	ResponseTimeMs  int64              `bson:"responseTimeMs" json:"responseTimeMs"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}
