package chat

import (
	"fmt"
	"strings"

	"astra/internal/domain/car"
)

const baseSystemMessage = `You are an expert automotive assistant with specialized knowledge of cars, engines,
features, and automotive technology. Your responses should be helpful, accurate, conversational, and confident.

INSTRUCTIONS:
1. Provide detailed, accurate information about vehicles when available.
2. When specific data isn't available, provide general information about similar vehicles in that class.
3. Balance technical accuracy with conversational tone, speaking naturally as an automotive expert would.
4. Use automotive terminology appropriately but explain technical terms when they might not be familiar.
5. If you're unsure about specific details, be honest but still provide helpful general information.
6. Respond to casual language and slang in a friendly manner.
7. When appropriate, suggest related aspects the user might be interested in.
8. Recognize sentiment in user messages and respond appropriately.

RESPONSE GUIDELINES:
- For technical specifications: Balance accuracy with practical implications.
- For comparisons: Highlight key differentiating factors objectively.
- For recommendations: Consider user context and needs.
- For problems/issues: Be honest about known issues while maintaining balance.`

// SystemMessage builds the assistant system prompt, folding in the car under
// discussion when the session has one.
func SystemMessage(c *car.Car) string {
	if c == nil {
		return baseSystemMessage
	}

	var b strings.Builder
	b.WriteString(baseSystemMessage)
	fmt.Fprintf(&b, "\n\nCURRENT VEHICLE CONTEXT:\nThe user is inquiring about a %d %s %s.\n",
		c.Year, c.Manufacturer, c.Model)

	specs := make([]string, 0, 5)
	if c.BodyType != nil && *c.BodyType != "" {
		specs = append(specs, "Body Type: "+*c.BodyType)
	}
	if c.EngineInfo != nil && *c.EngineInfo != "" {
		specs = append(specs, "Engine: "+*c.EngineInfo)
	}
	if c.Transmission != nil && *c.Transmission != "" {
		specs = append(specs, "Transmission: "+*c.Transmission)
	}
	if c.FuelType != nil && *c.FuelType != "" {
		specs = append(specs, "Fuel Type: "+*c.FuelType)
	}
	if c.MPG != nil && *c.MPG > 0 {
		specs = append(specs, fmt.Sprintf("Fuel Economy: %.0f MPG", *c.MPG))
	}
	if len(specs) > 0 {
		b.WriteString("Known specifications:\n- ")
		b.WriteString(strings.Join(specs, "\n- "))
		b.WriteString("\n")
	}
	return b.String()
}

// userPrompt anchors short follow-up questions to the car in context so the
// model does not drift to a generic answer.
func userPrompt(query string, c *car.Car) string {
	if c == nil {
		return query
	}
	return fmt.Sprintf("About the %d %s %s: %s", c.Year, c.Manufacturer, c.Model, query)
}
