package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"dinereserve-server/models"
	"dinereserve-server/services"
	"dinereserve-server/storage"
	"dinereserve-server/utils"

	"github.com/kataras/iris/v12"
)

const (
	geminiBaseURL      = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel = "gemini-1.5-flash"
)

var chatHTTPClient = &http.Client{Timeout: 30 * time.Second}

type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

type ChatInput struct {
	Messages []ChatMessage `json:"messages" validate:"required,min=1"`
}

// Gemini generateContent wire format.
type GeminiPart struct {
	Text string `json:"text"`
}

type GeminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []GeminiPart `json:"parts"`
}

type GeminiGenerationConfig struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"topP"`
	TopK        int     `json:"topK"`
}

type GeminiRequest struct {
	Contents         []GeminiContent         `json:"contents"`
	GenerationConfig *GeminiGenerationConfig `json:"generationConfig,omitempty"`
}

// Chat answers the reservation assistant widget. Messages that name a known
// restaurant get a booking acknowledgement, messages with extractable search
// intent get a catalog listing, everything else is forwarded to Gemini. All
// three paths answer in the Gemini candidates shape so the widget renders
// them identically.
func Chat(ctx iris.Context) {
	var input ChatInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	message := lastUserMessage(input.Messages)
	if message == "" {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "no user message found", ctx)
		return
	}

	var restaurants []models.Restaurant
	if err := storage.DB.Where("is_approved = ? AND suspended = ?", true, false).
		Order("id ASC").Find(&restaurants).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if match := services.MatchRestaurantByName(message, restaurants); match != nil {
		filters := services.ExtractFilters(message)
		res := candidateResponse(bookingAck(match, filters))
		res["restaurant"] = iris.Map{"id": match.ID, "name": match.Name}
		ctx.JSON(res)
		return
	}

	if filters := services.ExtractFilters(message); filters.Any() {
		matched := services.FilterByIntent(filters, restaurants)
		ctx.JSON(candidateResponse(services.RenderListing(filters, matched)))
		return
	}

	forwardToGemini(ctx, input.Messages)
}

func lastUserMessage(messages []ChatMessage) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role != "assistant" && messages[i].Content != "" {
			return messages[i].Content
		}
	}
	return ""
}

func bookingAck(restaurant *models.Restaurant, filters services.ChatFilters) string {
	date := filters.Date
	if date == "" {
		date = "your chosen date"
	}
	slot := filters.Time
	if slot == "" {
		slot = "your chosen time"
	}
	party := "your party"
	if filters.PartySize > 0 {
		party = fmt.Sprintf("a party of %d", filters.PartySize)
	}
	return fmt.Sprintf(
		"Great choice! I can help you book a table at %s for %s on %s at %s. Please confirm to proceed with the reservation.",
		restaurant.Name, party, date, slot)
}

// candidateResponse wraps locally generated text in the Gemini response
// shape the widget already parses.
func candidateResponse(text string) iris.Map {
	return iris.Map{
		"candidates": []iris.Map{
			{
				"content": iris.Map{
					"role":  "model",
					"parts": []iris.Map{{"text": text}},
				},
				"finishReason": "STOP",
			},
		},
	}
}

// toGeminiContents maps widget messages onto the Gemini turn format; the
// system prompt rides as the first user turn.
func toGeminiContents(messages []ChatMessage) []GeminiContent {
	contents := make([]GeminiContent, 0, len(messages)+1)
	if prompt := os.Getenv("SYSTEM_PROMPT"); prompt != "" {
		contents = append(contents, GeminiContent{
			Role:  "user",
			Parts: []GeminiPart{{Text: prompt}},
		})
	}
	for _, m := range messages {
		role := "user"
		if m.Role == "assistant" {
			role = "model"
		}
		contents = append(contents, GeminiContent{
			Role:  role,
			Parts: []GeminiPart{{Text: m.Content}},
		})
	}
	return contents
}

func forwardToGemini(ctx iris.Context, messages []ChatMessage) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		utils.JSONError(ctx, iris.StatusInternalServerError, "upstream_error", "assistant is not configured")
		return
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = defaultGeminiModel
	}

	payload := GeminiRequest{
		Contents: toGeminiContents(messages),
		GenerationConfig: &GeminiGenerationConfig{
			Temperature: 0.7,
			TopP:        0.95,
			TopK:        64,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", geminiBaseURL, model, apiKey)
	res, err := chatHTTPClient.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, "upstream_error", "assistant could not be reached")
		return
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, "upstream_error", "assistant response could not be read")
		return
	}

	ctx.StatusCode(res.StatusCode)
	ctx.ContentType("application/json")
	ctx.Write(resBody)
}

// GetGeminiModels proxies the model catalog so the widget never sees the
// API key.
func GetGeminiModels(ctx iris.Context) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		utils.JSONError(ctx, iris.StatusInternalServerError, "upstream_error", "assistant is not configured")
		return
	}

	res, err := chatHTTPClient.Get(fmt.Sprintf("%s/models?key=%s", geminiBaseURL, apiKey))
	if err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, "upstream_error", "assistant could not be reached")
		return
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, "upstream_error", "assistant response could not be read")
		return
	}

	ctx.StatusCode(res.StatusCode)
	ctx.ContentType("application/json")
	ctx.Write(resBody)
}
