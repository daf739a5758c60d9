// Package prompt models LLM prompts as ordered role-tagged messages and
// provides the prompt-file format used by the instruction templates.
//
// A prompt file is line oriented:
//
//	# comment lines and blank lines are ignored
//	model: gemini-2.0-flash
//	sys: You are a patient tutor.
//	usr: Hello!
//
// Template placeholders like {{.LANGNAME}} are substituted with
// Prompt.Substitute before the prompt is sent.
package prompt
