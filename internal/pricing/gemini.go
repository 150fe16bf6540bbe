package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Supported advisory languages (explanation and recommendation are written in
// the requested one).
const (
	LangEnglish = "en"
	LangHindi   = "hi"
	LangKannada = "kn"
)

// CropInput is the structured cost/quantity/market-rate input for one advisory.
type CropInput struct {
	CropName        string  `json:"cropName"`
	Quantity        float64 `json:"quantity"`
	Unit            string  `json:"unit"`
	Quality         string  `json:"quality"`
	Region          string  `json:"region"`
	SeedCost        float64 `json:"seedCost"`
	FertilizerCost  float64 `json:"fertilizerCost"`
	LabourCost      float64 `json:"labourCost"`
	MaintenanceCost float64 `json:"maintenanceCost"`
	OtherCost       float64 `json:"otherCost"`
	MarketRate      float64 `json:"marketRate"`
}

// TotalCost is the cultivation cost computed on our side; it is embedded in
// the outbound request regardless of what the model ultimately returns.
func (in CropInput) TotalCost() float64 {
	return in.SeedCost + in.FertilizerCost + in.LabourCost + in.MaintenanceCost + in.OtherCost
}

// PriceResult is the schema-constrained advisory returned by the model.
type PriceResult struct {
	FairPrice        float64 `json:"fairPrice"`
	MarketComparison float64 `json:"marketComparison"`
	Explanation      string  `json:"explanation"`
	Breakdown        struct {
		BaseCost     float64 `json:"baseCost"`
		ProfitMargin float64 `json:"profitMargin"`
		RiskPremium  float64 `json:"riskPremium"`
	} `json:"breakdown"`
	Recommendation string `json:"recommendation"`
}

// Client calls the Gemini API for fair-price advisories. There is no retry,
// cache or local computation fallback: every failure surfaces as one
// descriptive error and the caller keeps whatever it was showing before.
type Client struct {
	apiKey string
	model  string
}

// NewClient constructs a pricing client. An empty apiKey is allowed; calls
// will fail with a configuration error until one is provided.
func NewClient(apiKey, model string) *Client {
	return &Client{apiKey: apiKey, model: model}
}

// Enabled reports whether a credential is configured.
func (c *Client) Enabled() bool { return c.apiKey != "" }

// ValidLanguage reports whether lang is one of the supported advisory languages.
func ValidLanguage(lang string) bool {
	switch lang {
	case LangEnglish, LangHindi, LangKannada:
		return true
	}
	return false
}

// CalculateFairPrice builds the advisory prompt, calls the model with a
// JSON response schema and parses the result.
func (c *Client) CalculateFairPrice(ctx context.Context, input CropInput, lang string) (*PriceResult, error) {
	if !c.Enabled() {
		return nil, errors.New("pricing service is not configured: GEMINI_API_KEY is missing")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: c.apiKey})
	if err != nil {
		return nil, fmt.Errorf("create pricing client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, c.model,
		genai.Text(buildPrompt(input, lang)),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   priceSchema(),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("pricing request failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, errors.New("the pricing model returned an empty response")
	}

	var result PriceResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("malformed pricing response: %w", err)
	}

	return &result, nil
}

// buildPrompt embeds every input field plus the locally computed total cost.
func buildPrompt(input CropInput, lang string) string {
	var b strings.Builder
	b.WriteString("You are an expert agricultural economist devoted to fair trade for farmers.\n")
	b.WriteString("Calculate a fair price for the following crop, ensuring the farmer gets a significant benefit.\n")
	b.WriteString("Consider hidden costs, inflation, and a living wage margin.\n\n")
	fmt.Fprintf(&b, "Input Data:\n- Crop: %s\n- Quantity: %g %s\n- Quality: %s\n- Region: %s\n\n",
		input.CropName, input.Quantity, input.Unit, input.Quality, input.Region)
	fmt.Fprintf(&b, "Cost Breakdown:\n- Seed Cost: %g\n- Fertilizer/Pesticide Cost: %g\n- Labour Cost: %g\n- Maintenance Cost: %g\n- Other (Transport/Storage): %g\n",
		input.SeedCost, input.FertilizerCost, input.LabourCost, input.MaintenanceCost, input.OtherCost)
	fmt.Fprintf(&b, "---------------------------\n- Total Cultivation Cost: %g\n\n- Current Market Offer: %g\n\n",
		input.TotalCost(), input.MarketRate)
	b.WriteString("Your goal is to justify a higher price if the market rate is unfair.\n")
	fmt.Fprintf(&b, "Write the explanation and recommendation in language: %s\n", lang)
	return b.String()
}

func priceSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"fairPrice":        {Type: genai.TypeNumber},
			"marketComparison": {Type: genai.TypeNumber},
			"explanation":      {Type: genai.TypeString},
			"breakdown": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"baseCost":     {Type: genai.TypeNumber},
					"profitMargin": {Type: genai.TypeNumber},
					"riskPremium":  {Type: genai.TypeNumber},
				},
				Required: []string{"baseCost", "profitMargin", "riskPremium"},
			},
			"recommendation": {Type: genai.TypeString},
		},
		Required: []string{"fairPrice", "marketComparison", "explanation", "breakdown", "recommendation"},
	}
}
