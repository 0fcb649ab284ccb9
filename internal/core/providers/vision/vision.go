package vision

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"trading-analyzer-go/internal/platform/config"
	"trading-analyzer-go/internal/platform/errors"
	"trading-analyzer-go/internal/platform/logging"
)

// tradingAnalysisPrompt is the fixed instruction block sent with every chart.
const tradingAnalysisPrompt = `You are an expert trading analyst. Analyze this trading chart image and provide a comprehensive trading analysis including:

1. **Chart Pattern Recognition**: Identify any technical patterns (head and shoulders, triangles, flags, etc.)
2. **Trend Analysis**: Determine the current trend (uptrend, downtrend, sideways)
3. **Support & Resistance Levels**: Identify key support and resistance levels
4. **Technical Indicators**: Analyze any visible indicators (RSI, MACD, Moving Averages, etc.)
5. **Volume Analysis**: Comment on volume patterns if visible
6. **Trading Strategy**: Provide specific trading recommendations:
   - Entry points
   - Stop loss levels
   - Take profit targets
   - Risk/reward ratio
7. **Market Sentiment**: Overall market sentiment and confidence level
8. **Risk Assessment**: Potential risks and warnings

Please provide a detailed, actionable analysis that a trader can use to make informed decisions.`

// Provider submits chart images to an OpenAI-compatible vision model.
// Exactly one completion request is issued per call; failures surface
// immediately with the provider's message attached.
type Provider struct {
	config config.VisionConfig
	logger *logging.Logger
	client *openai.Client
}

// NewProvider creates a vision provider from the runtime configuration.
func NewProvider(cfg config.VisionConfig, logger *logging.Logger) (*Provider, error) {
	if !strings.EqualFold(cfg.Type, "openai") && cfg.Type != "" {
		return nil, errors.New(errors.KindConfig, "vision.new",
			fmt.Sprintf("unsupported vision provider type: %s", cfg.Type))
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	clientConfig.HTTPClient = &http.Client{Timeout: timeout}

	return &Provider{
		config: cfg,
		logger: logger,
		client: openai.NewClientWithConfig(clientConfig),
	}, nil
}

// Analyze encodes the image as a data URI, sends the fixed analysis prompt
// alongside it, and returns the single text completion.
func (p *Provider) Analyze(ctx context.Context, data []byte, format string) (string, error) {
	base64Image := base64.StdEncoding.EncodeToString(data)

	p.logger.DebugTag("Vision", "invoke vision API: model=%s format=%s image_bytes=%d",
		p.config.ModelName, format, len(data))

	visionMessage := openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleUser,
		MultiContent: []openai.ChatMessagePart{
			{
				Type: openai.ChatMessagePartTypeText,
				Text: tradingAnalysisPrompt,
			},
			{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL:    fmt.Sprintf("data:image/%s;base64,%s", format, base64Image),
					Detail: openai.ImageURLDetailHigh,
				},
			},
		},
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.config.ModelName,
		Messages:    []openai.ChatCompletionMessage{visionMessage},
		MaxTokens:   p.config.MaxTokens,
		Temperature: float32(p.config.Temperature),
	})
	if err != nil {
		p.logger.ErrorTag("Vision", "vision API call failed: %v", err)
		return "", errors.Wrap(errors.KindUpstream, "vision.analyze",
			"Error analyzing image with OpenAI", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New(errors.KindUpstream, "vision.analyze",
			"Error analyzing image with OpenAI: provider returned no completion")
	}

	analysis := resp.Choices[0].Message.Content
	p.logger.InfoTag("Vision", "analysis complete: model=%s response_chars=%d",
		p.config.ModelName, len(analysis))

	return analysis, nil
}
