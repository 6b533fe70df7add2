package services

import (
	"encoding/json"
	"log"
	"strings"

	"mobiwise/internal/models"
)

// InterpretResponse turns raw model output into a ResponseEnvelope. It is
// total: any input, including garbage, yields an envelope with a valid type
// and non-empty text, so the rendering side never has to handle a parse
// failure itself.
//
// Policy for structured content:
//   - Non-JSON output degrades to a plain message envelope carrying the raw
//     text. Structure is lost (no phone cards) but the user still sees the
//     reply.
//   - An unrecognized or missing "type" is demoted to "message".
//   - Phone records failing validation are dropped individually; the
//     surviving text is always kept. A logger may be nil.
func InterpretResponse(raw string, logger *log.Logger) models.ResponseEnvelope {
	text := stripCodeFence(raw)

	var envelope models.ResponseEnvelope
	if err := json.Unmarshal([]byte(text), &envelope); err != nil {
		if logger != nil {
			logger.Printf("Model output was not valid JSON, returning as plain text: %v", err)
		}
		return models.ResponseEnvelope{
			Type: models.TypeMessage,
			Text: raw,
		}
	}

	if !models.IsValidType(envelope.Type) {
		if logger != nil {
			logger.Printf("Model returned unknown envelope type %q, demoting to message", envelope.Type)
		}
		envelope.Type = models.TypeMessage
	}

	if envelope.Text == "" {
		// A structured reply with no prose is unrenderable; fall back to the
		// raw payload so the user sees something.
		envelope.Text = raw
	}

	envelope.Phones = validPhones(envelope.Phones, logger)

	return envelope
}

// validPhones filters out records the rendering contract cannot honor.
func validPhones(phones []models.PhoneRecord, logger *log.Logger) []models.PhoneRecord {
	if len(phones) == 0 {
		return nil
	}

	kept := phones[:0]
	for i := range phones {
		if err := phones[i].Validate(); err != nil {
			if logger != nil {
				logger.Printf("Dropping malformed phone record: %v", err)
			}
			continue
		}
		kept = append(kept, phones[i])
	}

	if len(kept) == 0 {
		return nil
	}
	return kept
}

// stripCodeFence removes a markdown code fence the model occasionally wraps
// its JSON in despite the response MIME type.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
