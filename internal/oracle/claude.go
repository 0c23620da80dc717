package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/ohmyshower/order-cli/internal/model"
	"github.com/ohmyshower/order-cli/internal/resilience"
	"github.com/ohmyshower/order-cli/internal/sku"
	"github.com/ohmyshower/order-cli/pkg/anthropic"
)

// Claude implements Oracle against the Anthropic API. All calls go through
// the shared rate limiter and retry policy; malformed JSON responses are
// treated as transient and retried like any other flaky upstream answer.
type Claude struct {
	client       anthropic.Client
	defaultModel string
	complexModel string
	maxTokens    int64
	retry        resilience.Policy
	limiter      *rate.Limiter
}

// Config tunes the Claude oracle.
type Config struct {
	// DefaultModel handles the structured extractions.
	DefaultModel string
	// ComplexModel handles customer identification and addresses, where
	// the thread context matters more.
	ComplexModel string
	MaxTokens    int64
	Retry        resilience.Policy
	// RequestsPerSecond bounds outbound API calls. <= 0 disables limiting.
	RequestsPerSecond float64
}

// NewClaude builds a Claude oracle.
func NewClaude(client anthropic.Client, cfg Config) *Claude {
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = "claude-sonnet-4-5-20250929"
	}
	if cfg.ComplexModel == "" {
		cfg.ComplexModel = cfg.DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 4096
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return &Claude{
		client:       client,
		defaultModel: cfg.DefaultModel,
		complexModel: cfg.ComplexModel,
		maxTokens:    cfg.MaxTokens,
		retry:        cfg.Retry,
		limiter:      limiter,
	}
}

func (c *Claude) Customer(ctx context.Context, emailText string) (CustomerResult, error) {
	var out CustomerResult
	err := c.call(ctx, c.complexModel, "customer_id", nil, fmt.Sprintf(customerPrompt, emailText), &out)
	return out, err
}

func (c *Claude) OrderLines(ctx context.Context, emailText string, families []sku.Family, colors []sku.Color) ([]sku.RawLine, error) {
	system := anthropic.CachedSystemBlocks(
		fmt.Sprintf(orderLinesSystem, familiesListing(families), colorsListing(colors)))

	var out struct {
		OrderLines []sku.RawLine `json:"order_lines"`
	}
	err := c.call(ctx, c.defaultModel, "order_lines", system, fmt.Sprintf(orderLinesPrompt, emailText), &out)
	return out.OrderLines, err
}

func (c *Claude) References(ctx context.Context, emailText string, customerID int) ([]string, error) {
	var out struct {
		ReferenceNos []string `json:"reference_nos"`
	}
	err := c.call(ctx, c.defaultModel, "reference_no", nil, fmt.Sprintf(referencesPrompt, customerID, emailText), &out)
	return out.ReferenceNos, err
}

func (c *Claude) Valves(ctx context.Context, emailText string, lineCount int) ([]model.Valve, error) {
	var out struct {
		Valves []string `json:"valves"`
	}
	if err := c.call(ctx, c.defaultModel, "valve", nil, fmt.Sprintf(valvesPrompt, lineCount, emailText), &out); err != nil {
		return nil, err
	}

	valves := make([]model.Valve, len(out.Valves))
	for i, v := range out.Valves {
		valves[i] = model.Valve(v)
	}
	return valves, nil
}

func (c *Claude) Address(ctx context.Context, emailText string, customerID *int, customerName *string) (AddressResult, error) {
	var out AddressResult
	err := c.call(ctx, c.complexModel, "delivery_address", nil, formatAddressPrompt(emailText, customerID, customerName), &out)
	return out, err
}

func (c *Claude) ShipDates(ctx context.Context, emailText string) (DatesResult, error) {
	var out DatesResult
	err := c.call(ctx, c.defaultModel, "cpsd", nil, fmt.Sprintf(shipDatesPrompt, emailText), &out)
	return out, err
}

func (c *Claude) Options(ctx context.Context, emailText string, colors []sku.Color) (OptionsResult, error) {
	var out OptionsResult
	err := c.call(ctx, c.defaultModel, "options", nil, fmt.Sprintf(optionsPrompt, colorsListing(colors), emailText), &out)
	if err == nil && out.HasOptions && out.Quantity <= 0 {
		out.Quantity = 1
	}
	return out, err
}

// call sends one prompt under the retry policy and unmarshals the JSON
// response into out.
func (c *Claude) call(ctx context.Context, mdl, phase string, system []anthropic.SystemBlock, prompt string, out any) error {
	resp, err := resilience.DoVal(ctx, c.retry, func(ctx context.Context) (*anthropic.MessageResponse, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		resp, err := c.client.CreateMessage(ctx, anthropic.MessageRequest{
			Model:     mdl,
			MaxTokens: c.maxTokens,
			System:    system,
			Messages:  []anthropic.Message{{Role: "user", Content: prompt}},
		})
		if err != nil {
			return nil, err
		}

		text := resp.Text()
		if text == "" {
			return nil, resilience.MarkTransient(eris.Errorf("oracle: empty response for %s", phase), 0)
		}
		if err := json.Unmarshal([]byte(cleanJSON(text)), out); err != nil {
			return nil, resilience.MarkTransient(eris.Wrapf(err, "oracle: parse %s response", phase), 0)
		}
		return resp, nil
	})
	if err != nil {
		return eris.Wrapf(err, "oracle: %s extraction", phase)
	}

	resp.Usage.LogCost(mdl, phase)
	return nil
}

// cleanJSON strips markdown code fences and any prose around the outermost
// JSON object.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}
	return strings.TrimSpace(text)
}
