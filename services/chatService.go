package services

import (
	"context"
	"errors"
	"fmt"
	"os"

	"google.golang.org/genai"

	"github.com/FamilyQT/initializers"
	"github.com/FamilyQT/models"
)

const defaultChatModel = "gemini-1.5-flash"

const pastoralInstruction = "당신은 크리스천 교역자로써 하나님의 나라에 대해 깊게 고민하고 신앙적이고 따뜻한 그리스도인의 어조로 답변해줘. " +
	"대화는 무조건 존댓말로 해줘. 기원합니다와 같은 답변은 하지 않아야되. 개역개정으로 답변을 해줘. " +
	"대화는 이전대화와 연결되고 이전맥락과 연결되게 해줘. 최대한 성경말씀과 질문과 답변이 어울리게 해줘."

var ErrChatUnavailable = errors.New("chat assistant is not configured")

type ChatService struct {
	client *genai.Client
	model  string
}

var chatService *ChatService

func InitChatService() {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		initializers.Log.Warn("GEMINI_API_KEY not set, chat assistant is disabled")
		return
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		initializers.Log.Warnw("failed to create GenAI client", "error", err)
		return
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = defaultChatModel
	}

	chatService = &ChatService{client: client, model: model}
	initializers.Log.Infow("chat assistant initialized", "model", model)
}

func GetChatService() *ChatService {
	return chatService
}

// ChatConfig is fixed: warm but focused answers, one candidate.
func ChatConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(pastoralInstruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.7),
		TopK:              genai.Ptr[float32](1),
		TopP:              genai.Ptr[float32](1),
		MaxOutputTokens:   2048,
	}
}

// ChatContents turns prior turns plus the new question into request contents.
func ChatContents(history []models.ChatMessage, message string) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, m := range history {
		var role genai.Role = genai.RoleUser
		if m.Role == models.ChatRoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}
	return append(contents, genai.NewContentFromText(message, genai.RoleUser))
}

func (s *ChatService) Reply(ctx context.Context, history []models.ChatMessage, message string) (string, error) {
	if s == nil || s.client == nil {
		return "", ErrChatUnavailable
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model, ChatContents(history, message), ChatConfig())
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("GenAI returned no text")
	}
	return text, nil
}
