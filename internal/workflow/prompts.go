package workflow

import (
	"fmt"
	"strings"

	"github.com/fyrsmithlabs/draftd/internal/llm"
)

// editorPersona is the system instruction for the edit stage: an aggressive
// engagement editor producing the baseline text all writers work from.
const editorPersona = `Rewrite for maximum social media engagement:

- Use attention-grabbing, concise language
- Inject personality and humor
- Optimize formatting (short paragraphs)
- Encourage interaction (questions, calls-to-action)
- Ensure perfect grammar and spelling
- Rewrite from first person perspective, when talking to an audience

Use only the information provided in the text. Think carefully.`

const twitterWriterPersona = `Generate a high-engagement tweet from the given text (at least 300 words):
1. What problem does this solve?
2. Focus on the main technical points/features
3. Write a short, coherent paragraph (2-3 sentences max)
4. Use natural, conversational language
5. Optimize for virality: make it intriguing, relatable, or controversial
6. Exclude emojis and hashtags`

const twitterCritiquePersona = `You are a Tweet Critique Agent. Your task is to analyze tweets and provide actionable feedback to make them more engaging. Focus on:

1. Clarity: Is the message clear and easy to understand?
2. Hook: Does it grab attention in the first few words?
3. Brevity: Is it concise while maintaining impact?
4. Call-to-action: Does it encourage interaction or sharing?
5. Tone: Is it appropriate for the intended audience?
6. Storytelling: Does it evoke curiosity?
7. Remove hype: Does it promise more than it delivers?

Provide 2-3 specific suggestions to improve the tweet's engagement potential.
Do not suggest hashtags. Keep your feedback concise and actionable.`

const linkedinWriterPersona = `Write a compelling LinkedIn post from the given text. Structure it as follows:

1. Eye-catching headline (5-7 words)
2. Identify a key problem or challenge
3. Provide a bullet list of key benefits/features
4. Highlight a clear benefit or solution
5. Conclude with a thought-provoking question

Maintain a professional, informative tone. Avoid emojis and hashtags.
Keep the post concise (50-80 words) and relevant to the industry.`

const linkedinCritiquePersona = `Your role is to analyze LinkedIn posts and provide actionable feedback to make them more engaging.
Focus on the following aspects:

1. Hook: Evaluate the opening line's ability to grab attention.
2. Structure: Assess the post's flow and readability.
3. Content value: Determine if the post provides useful information or insights.
4. Call-to-action: Check if there's a clear next step for readers.
5. Language: Suggest improvements in tone, style, and word choice.
6. Visual elements: Recommend additions or changes to images, videos, or formatting.

For each aspect, provide:
- A brief assessment (1-2 sentences)
- A specific suggestion for improvement
- A concise example of the suggested change`

// PlatformSpec carries the persona configuration for one platform's
// write/critique pipeline. Both platforms share the same pipeline code;
// only this data differs.
type PlatformSpec struct {
	Platform        Platform
	Label           string
	WriterPersona   string
	CritiquePersona string
}

var platformSpecs = map[Platform]PlatformSpec{
	PlatformTwitter: {
		Platform:        PlatformTwitter,
		Label:           "Tweet",
		WriterPersona:   twitterWriterPersona,
		CritiquePersona: twitterCritiquePersona,
	},
	PlatformLinkedIn: {
		Platform:        PlatformLinkedIn,
		Label:           "LinkedIn post",
		WriterPersona:   linkedinWriterPersona,
		CritiquePersona: linkedinCritiquePersona,
	},
}

// SpecFor returns the persona configuration for a platform.
func SpecFor(p Platform) (PlatformSpec, bool) {
	spec, ok := platformSpecs[p]
	return spec, ok
}

// editorPrompt embeds the raw user text verbatim for the edit stage.
func editorPrompt(userText string) llm.Request {
	user := fmt.Sprintf("text:\n```\n%s\n```", userText)
	return llm.Request{System: editorPersona, User: user}
}

// writerPrompt builds the writer instruction: the edited text, the target
// audience, and a revision block with the latest draft and feedback when a
// critique has run.
func writerPrompt(spec PlatformSpec, s *State, ws *Workspace) llm.Request {
	var b strings.Builder
	fmt.Fprintf(&b, "text:\n```\n%s\n```\n", s.EditText)

	if ws.HasFeedback() {
		latest, _ := ws.LatestDraft()
		fmt.Fprintf(&b, "\n%s:\n```\n%s\n```\n", spec.Label, latest)
		fmt.Fprintf(&b, "\nUse the feedback to improve it:\n```\n%s\n```\n", ws.Feedback)
	}

	fmt.Fprintf(&b, "\nTarget audience: %s\n", s.TargetAudience)
	b.WriteString("\nWrite only the text for the post")

	return llm.Request{System: spec.WriterPersona, User: b.String()}
}

// critiquePrompt builds the critique instruction with the latest draft as
// the subject and the edited text as context.
func critiquePrompt(spec PlatformSpec, s *State, ws *Workspace) llm.Request {
	latest, _ := ws.LatestDraft()

	var b strings.Builder
	fmt.Fprintf(&b, "Full post:\n```\n%s\n```\n", s.EditText)
	fmt.Fprintf(&b, "\nSuggested %s (critique this):\n```\n%s\n```\n", spec.Label, latest)
	fmt.Fprintf(&b, "\nTarget audience: %s", s.TargetAudience)

	return llm.Request{System: spec.CritiquePersona, User: b.String()}
}
