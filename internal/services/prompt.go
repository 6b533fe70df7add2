package services

import "google.golang.org/genai"

// PromptVersion identifies the system instruction revision. Bump it whenever
// the prompt text or the response schema changes shape.
const PromptVersion = "2024-12-v1"

// systemPrompt constrains the model's domain, tone and output schema. The
// response interpreter still validates everything: the prompt makes schema
// violations rare, not impossible.
const systemPrompt = `
You are MobiWise, an expert AI Mobile Shopping Assistant. Your goal is to help users discover, compare, and buy mobile phones.

CORE CAPABILITIES:
1. DISCOVERY: Help users find the best phones based on specific needs (budget, camera, gaming, battery).
2. COMPARISON: Provide clear, objective side-by-side comparisons of models.
3. TRADE-OFFS: Always explain the pros and cons of recommended devices to help the user make an informed decision.
4. ADVERSARIAL RESILIENCE: Stay on topic (mobile phones). Politely redirect irrelevant queries.

RESPONSE GUIDELINES:
1. REAL-TIME DATA: Use your training data to provide info on current market models.
2. FORMATTING: Use Markdown for the "text" field. Bold key specs. Use lists for pros/cons.
3. BUDGET: Default to INR (₹) unless asked otherwise. Use 1k = 1000 shorthand.
4. "WHY THIS?": Every recommendation MUST have a justification.
5. "TRADE-OFFS": Explicitly mention what a user might be sacrificing (e.g., "Great performance, but plastic build").

RESPONSE FORMAT (Valid JSON):
{
  "type": "message" | "recommendation" | "comparison" | "refusal",
  "text": "Markdown string. Include 'Why this?' and explicit trade-offs/pros-cons.",
  "phones": [
    {
      "id": "string",
      "brand": "string",
      "model": "string",
      "price": number,
      "os": "string",
      "size": "compact" | "medium" | "large",
      "display": "string",
      "camera": { "main": "string", "ois": boolean },
      "battery": "string",
      "charging": "string",
      "tags": ["string"]
    }
  ],
  "comparison_summary": "Optional markdown string summarizing the winner or key differences for comparisons."
}
`

// SystemInstruction returns the fixed system prompt as Gemini content.
func SystemInstruction() *genai.Content {
	return &genai.Content{
		Role:  "system",
		Parts: []*genai.Part{genai.NewPartFromText(systemPrompt)},
	}
}

// EnvelopeResponseSchema constrains Gemini's JSON output to the envelope
// shape. Combined with a JSON response MIME type this keeps the model from
// wrapping its reply in prose or code fences.
func EnvelopeResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"type": {
				Type: genai.TypeString,
				Enum: []string{"message", "recommendation", "comparison", "refusal"},
			},
			"text": {
				Type:        genai.TypeString,
				Description: "Markdown reply. Include 'Why this?' and explicit trade-offs for recommendations.",
			},
			"phones": {
				Type:  genai.TypeArray,
				Items: phoneRecordSchema(),
			},
			"comparison_summary": {
				Type:        genai.TypeString,
				Description: "Summary of the winner or key differences, comparisons only.",
			},
		},
		Required:         []string{"type", "text"},
		PropertyOrdering: []string{"type", "text", "phones", "comparison_summary"},
	}
}

func phoneRecordSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"id":    {Type: genai.TypeString},
			"brand": {Type: genai.TypeString},
			"model": {Type: genai.TypeString},
			"price": {
				Type:        genai.TypeNumber,
				Description: "Price in INR unless the text states another currency.",
			},
			"os": {Type: genai.TypeString},
			"size": {
				Type: genai.TypeString,
				Enum: []string{"compact", "medium", "large"},
			},
			"display": {Type: genai.TypeString},
			"camera": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"main": {Type: genai.TypeString},
					"ois":  {Type: genai.TypeBoolean},
				},
				Required: []string{"main", "ois"},
			},
			"battery":  {Type: genai.TypeString},
			"charging": {Type: genai.TypeString},
			"tags": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		},
		Required: []string{
			"id", "brand", "model", "price", "os", "size",
			"display", "camera", "battery", "charging", "tags",
		},
	}
}
