package llm

import (
	"context"
	"fmt"
	"strings"
)

const explainPrompt = `Please provide a brief, accessible introduction to %s for someone who has never watched this sport before.
Include:
1. What the basic goal of the sport is
2. How scoring or competition works
3. Key things to listen for during commentary
4. What makes a performance impressive

Keep it concise and conversational - this will be read aloud.`

// ExplainSport asks the engine for a beginner-friendly introduction to
// a sport. It always returns something readable aloud, even when the
// engine is down.
func ExplainSport(ctx context.Context, e Engine, sportName string) string {
	text, err := e.Generate(ctx, fmt.Sprintf(explainPrompt, sportName))
	if err != nil || strings.TrimSpace(text) == "" {
		return fmt.Sprintf("I'd love to tell you about %s, but I'm having some technical difficulties.", sportName)
	}
	return strings.TrimSpace(text)
}
