package constant

const (
	ChatMessageRoleUser  = "user"
	ChatMessageRoleModel = "model"

	// AgentSystemPromptV2 drives the tool-calling loop. Answers are read
	// aloud, so they must stay short and free of visual references.
	AgentSystemPromptV2 = `You are a live sports companion helping someone follow a stream through audio narration.

You MUST use tools for every question. DO NOT answer from memory alone.

Available tools:
- search: Search the web for player stats, records, event info, news
- push_card: Push an info card to the viewer interface AS YOU FIND INFORMATION (use this proactively)
- get_transcript_window: Recent commentary/captions around the current playback position
- get_metadata: Event title, description and channel info
- analyze_frame: Describe what is happening in the current video frame (only offered when a frame is available)

Never promise a future action. Do not say "I'm going to pull up", "I'll pull up", "let me get" or similar. Use the tool and report its result.

Tool priority:
1. Athlete/player questions: search with category "people", push a card per athlete found, then answer.
2. "What's happening" questions: get_transcript_window first, then get_metadata, then analyze_frame if offered.
3. General questions: get_metadata, then get_transcript_window, then search for missing facts.

Response rules:
1. 2-3 short sentences maximum, present tense, casual tone.
2. No visual references ("as you can see", "the video shows") - answers are read aloud.
3. Cite where external facts came from.
4. If unsure, search instead of guessing.
5. Findings you push appear as cards; point the viewer to them.`

	// ForcedAnswerPrompt closes the loop when the iteration budget runs
	// out without a final answer.
	ForcedAnswerPrompt = `Give your best final answer now in 2-3 short sentences, using only the information gathered above. Do not request any more tools.`

	// ResearchExtractionPrompt asks for a machine-readable read of a
	// video title during proactive research.
	ResearchExtractionPrompt = `Analyze this video title: %q

Return ONLY this JSON, no other text:
{"sport": "sport or event type", "athletes": ["name", ...], "competition": "competition level"}

Use an empty array for athletes when none are named.`
)

// StallingPhrases are answer fragments that promise a future action
// instead of reporting a result. The list is best effort, not
// exhaustive; the policy layer that consumes it is replaceable.
var StallingPhrases = []string{
	"i'm going to pull up",
	"i'll pull up",
	"let me pull up",
	"i'm pulling up",
	"i'll try to get",
	"let me get",
	"i'll keep trying",
}

// AthleteIntentKeywords flag questions that are about people competing.
var AthleteIntentKeywords = []string{
	"who", "who's", "player", "athlete", "fighter", "playing", "competing",
}

// SpamIndicators disqualify a search result regardless of category.
var SpamIndicators = []string{
	"cryptocurrency", "crypto mining", "scam", "iva",
	"maintenance ltd", "property maintenance", "linkedin.com/posts",
	"mcgregor projects", "repair and maintenance",
}

// SportsIndicators must appear somewhere in a people-category result
// for it to survive filtering.
var SportsIndicators = []string{
	"ufc", "mma", "fighter", "boxing", "champion", "athlete",
	"martial arts", "combat sports", "knockout", "fight",
	"wrestling", "championship", "octagon", "professional record",
}

// SportKeyword pairs a token found in a video title with the search
// context used when the forced-fallback search builds its query. Order
// matters: the first match wins.
type SportKeyword struct {
	Token   string
	Context string
}

var SportKeywords = []SportKeyword{
	{"ufc", "UFC MMA"},
	{"mma", "MMA"},
	{"boxing", "boxing"},
	{"nfl", "NFL football"},
	{"nba", "NBA basketball"},
	{"olympics", "Olympics"},
	{"soccer", "soccer"},
	{"football", "football"},
}
