package summarizer

import (
	"fmt"
	"strings"
	"text/template"

	"reelatlas/pkg/model"
)

const systemInstruction = `You are a helpful assistant that summarizes social media video content (Instagram Reels, TikToks, etc.).
Your summaries should be:
- Concise and easy to read on mobile
- Informative and capture the key points
- Written in a friendly, engaging tone
- Formatted with clear structure`

// videoSummaryPrompt asks for the exact section layout the extraction
// pipeline parses. The "None mentioned" sentinel and the one-location-per-line
// format are what pkg/summary keys on.
const videoSummaryPrompt = `
Please analyze the provided video and generate a report using the following defined sections. Ensure the formatting is optimized for mobile (short paragraphs and bullet points).

### 🏷️ Title:
Create a catchy, descriptive title (5-10 words) that captures the essence of this content. Make it engaging and informative. Just the title text, no quotes.

### 📝 Executive Summary
Provide a 2-3 sentence overview of the video's core purpose and narrative.

### 🔍 Key Topics & Themes
List the primary subjects or themes discussed using bullet points.

### 💡 Highlights & Takeaways
- **Products/Tools:** [Mention specific products and their key features]
- **Key Insights:** [List the most important takeaways or spoken points]
- **Notable Moments:** [Describe any specific scenes or events of interest]

### 📍 Locations:
List specific geographical locations, venues, cities, countries, or landmarks mentioned or shown in the video.
Format: One location per line, just the name (e.g., "Paris, France" or "Central Park, New York").
If no specific locations are identifiable, write exactly: "None mentioned"

---
**Constraint:** If the content is educational, focus on the "how-to." If it is entertainment, focus on the plot/action.
`

const metadataSummaryPrompt = `
Please provide:
1. A brief 2-3 sentence summary of what this content is about
2. Key topics or themes covered
3. Any notable highlights or takeaways

Keep the summary concise but informative. Format it nicely for mobile display.`

const searchSystemInstruction = `You are a helpful assistant that analyzes travel content and finds relevant locations. Always respond with valid JSON arrays only, no additional text.`

var searchPromptTmpl = template.Must(template.New("search").Parse(`You are helping a user search through their saved travel reels to find locations that match their query.

USER'S SEARCH QUERY: "{{.Query}}"

Here are the saved reels with their summaries and locations:

{{.ReelsContext}}

Your task:
1. Analyze each reel's summary and locations
2. Determine which locations are relevant to the user's query "{{.Query}}"
3. A location is relevant if:
   - The summary mentions themes/activities related to the query
   - The location name suggests relevance (e.g., "Swiss Alps" for "winter destinations")
   - The content of the reel matches what the user is looking for

Return ONLY a JSON array of matching locations. For each match, include:
- reel_id: the ID of the reel
- location_name: the name of the matching location
- relevance_reason: a brief explanation (10-20 words) of why this matches the query

Example output format:
[
  {"reel_id": "123", "location_name": "Swiss Alps", "relevance_reason": "Snow-covered mountains perfect for winter skiing and snowboarding adventures"},
  {"reel_id": "456", "location_name": "Aspen, Colorado", "relevance_reason": "Famous winter resort with excellent skiing conditions"}
]

If no locations match the query, return an empty array: []

Important: Only include locations that genuinely match the search intent. Don't force matches.`))

// metadataPrompt builds the text-only prompt from whatever fields the
// platform returned. Missing fields are simply left out.
func metadataPrompt(info *model.MediaInfo) string {
	var parts []string

	if info.Title != "" {
		parts = append(parts, fmt.Sprintf("Title: %s", info.Title))
	}
	if info.Description != "" {
		parts = append(parts, fmt.Sprintf("Description: %s", info.Description))
	}
	if info.Uploader != "" {
		parts = append(parts, fmt.Sprintf("Creator: %s", info.Uploader))
	}
	if info.Duration > 0 {
		minutes := int(info.Duration) / 60
		seconds := int(info.Duration) % 60
		parts = append(parts, fmt.Sprintf("Duration: %dm %ds", minutes, seconds))
	}

	parts = append(parts, metadataSummaryPrompt)
	return strings.Join(parts, "\n")
}

// videoPrompt appends known metadata as extra context for the video analysis.
func videoPrompt(info *model.MediaInfo) string {
	prompt := videoSummaryPrompt
	if info == nil {
		return prompt
	}

	var ctx []string
	if info.Title != "" {
		ctx = append(ctx, fmt.Sprintf("Title: %s", info.Title))
	}
	if info.Uploader != "" {
		ctx = append(ctx, fmt.Sprintf("Creator: %s", info.Uploader))
	}
	if len(ctx) > 0 {
		prompt += "\n\nAdditional context:\n" + strings.Join(ctx, "\n")
	}
	return prompt
}
