package parser

import "strings"

// BuildPrompt assembles the extraction prompt. The resume text sits between
// triple-quote delimiters so the model cannot mistake instructions embedded
// in the resume for instructions from us. The output is deterministic for
// identical inputs.
func BuildPrompt(schemaBlock, fieldsNote, resumeText string) string {
	var b strings.Builder
	b.WriteString("You are a professional AI resume parser.\n\n")
	b.WriteString("Extract structured information from the resume text below and return a **clean, valid JSON object only** — no extra text, markdown, or formatting. or \"JsonData\":{}\n\n")
	b.WriteString("Required fields (extract if available, otherwise use null for missing fields):\n\n")
	b.WriteString("Use this format:\n")
	b.WriteString(schemaBlock)
	b.WriteString("\n\n")
	b.WriteString(fieldsNote)
	b.WriteString("\n\nResume:\n\"\"\"\n")
	b.WriteString(resumeText)
	b.WriteString("\n\"\"\"\n  Return just the json with no extra commentaries and no backticks.")
	return strings.TrimSpace(b.String())
}
