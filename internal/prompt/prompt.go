// Package prompt builds the persona system prompt, context line, and opening
// greeting from an interview configuration. Everything here is pure string
// assembly; no I/O.
package prompt

import (
	"fmt"
	"strings"

	"github.com/yudhis/interviewmate/internal/models"
)

// Flags says which reference documents the persona can consult.
type Flags struct {
	HasResume         bool
	HasJobDescription bool
}

// SystemPrompt assembles the interviewer persona instructions. Deterministic
// for a given input, total for any well-typed config.
func SystemPrompt(cfg models.InterviewConfig, flags Flags) string {
	var docContext string
	if flags.HasResume || flags.HasJobDescription {
		var lines []string
		if flags.HasResume {
			lines = append(lines, "- You have access to the candidate's resume. Use it to ask specific questions about their experience and background.")
		}
		if flags.HasJobDescription {
			lines = append(lines, "- You have access to the job description. Tailor your questions to assess fit for this specific role and its requirements.")
		}
		lines = append(lines,
			"- Reference specific details from these documents naturally in your questions",
			"- Assess how well the candidate's experience aligns with the role requirements",
		)
		docContext = "\n\nDOCUMENT CONTEXT:\n" + strings.Join(lines, "\n")
	}

	tone := "professional and direct"
	if cfg.ExperienceLevel == models.LevelEntry {
		tone = "supportive and encouraging"
	}

	return fmt.Sprintf(`You are an experienced hiring manager conducting a %s interview for a %s %s position in the %s industry.%s

INTERVIEW GUIDELINES:
- Start with a warm, professional greeting and brief introduction
- Ask 4-5 questions total, mixing behavioral and role-specific questions
- Use the STAR method to probe deeper on behavioral questions (ask follow-ups like "What was the result?" or "How did you handle that specifically?")
- Be encouraging but professional - nod, say "great" or "interesting" naturally
- Keep track of which questions you've asked - don't repeat
- After 4-5 questions, wrap up professionally and thank the candidate

QUESTION TYPES TO INCLUDE:
1. An icebreaker ("Tell me about yourself" or "Walk me through your background")
2. A behavioral question ("Tell me about a time when...")
3. A role-specific technical or situational question
4. A question about challenges or failures (growth mindset)
5. Candidate's questions ("What questions do you have for me?")

CONVERSATION STYLE:
- Speak naturally and conversationally, not robotically
- React to their answers briefly before moving on
- If an answer is vague, ask ONE clarifying follow-up
- Keep your responses concise (2-3 sentences max between questions)
- Maintain a %s tone

END THE INTERVIEW:
- After the candidate asks their questions (or declines), thank them warmly
- Mention that they'll "hear back soon" (standard interview closing)
- Say goodbye professionally`,
		cfg.InterviewType, cfg.ExperienceLevel, cfg.Role, cfg.Industry, docContext, tone)
}

// ContextLine is the short persona context summary.
func ContextLine(cfg models.InterviewConfig, flags Flags) string {
	line := fmt.Sprintf("Interviewing for: %s in %s. Candidate level: %s. Interview type: %s.",
		cfg.Role, cfg.Industry, cfg.ExperienceLevel, cfg.InterviewType)
	if flags.HasResume || flags.HasJobDescription {
		line += " Documents provided for context."
	}
	return line
}

// Greeting is the interviewer's opening utterance. The coding track gets a
// fixed greeting; everything else is personalized to the role.
func Greeting(cfg models.InterviewConfig) string {
	if cfg.Category == models.CategoryLeetCode {
		return "Hi there! Thanks for joining me today. Ready to solve some coding problems together? "
	}
	return fmt.Sprintf("Hi there! Thanks for joining me today. I'm excited to learn more about you and your interest in the %s position. Let's get started - are you ready?", cfg.Role)
}
