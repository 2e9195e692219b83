package recognition

import "strings"

// transcriptionPrompt asks vision models for a verbatim transcription
const transcriptionPrompt = `Transcribe all of the text visible in this image.

Rules:
- Reproduce the text exactly as it appears, preserving line breaks
- The text is written in the language with ISO 639-2 code "%s"
- Do not translate, summarize, correct or explain anything
- Do not describe the image
- Do not use markdown code blocks
- If the image contains no text, reply with nothing`

// cleanTranscript strips the wrapping that chat models add around a reply
func cleanTranscript(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	// Drop the opening fence together with any info string such as ```text
	if i := strings.Index(text, "\n"); i >= 0 {
		text = text[i+1:]
	} else {
		text = strings.TrimPrefix(text, "```")
	}
	text = strings.TrimSuffix(strings.TrimRight(text, " \t\r\n"), "```")
	return strings.Trim(text, "\r\n")
}
