package services

import (
	"fmt"
	"strings"
)

// System instructions for each model call. They are paired with the user
// prompts built below and sent as one combined prompt.
const (
	JDParsingSystemPrompt = `You're a precise Job Description Extractor. Generate a markdown summary from the JD using exact terms and bullet points. Avoid assumptions.`

	ResumeParsingSystemPrompt = `You're a precise Resume Extractor. Generate a markdown summary from the resume using bullet points. No assumptions or inferred data.`

	EvaluationSystemPrompt = `You're a Hiring Officer. Compare the Job Description and Candidate Resume using explicit data. Assign scores with penalties for over-qualification and gaps.`

	EvaluationJSONSystemPrompt = `You're a Hiring Officer. Compare the Job Description and Candidate Resume using explicit data. Assign scores with penalties for over-qualification and gaps.
### OUTPUT FORMAT
Your response should be a valid JSON object that includes the following keys, respond only with a valid JSON do not add any extra information :
- candidate_name
- job_title
- overall_score
- experience_penalty
- critical_penalties
- positives
- gaps
- recommendation`

	SuggestionsSystemPrompt = `You are a career coach specializing in resume optimization. Your task is to provide direct, actionable suggestions for improving a candidate's CV based on identified gaps compared to a job description. Follow these rules:
1. Each suggestion must directly address one of the provided gaps.
2. Do NOT include any suggestions beyond the identified gaps.
3. Use clear, concise language for immediate implementation.
4. Prioritize the most critical gaps first.
5. Format output as a bulleted list using markdown.`

	RewriteSystemPrompt = `You are an expert CV writer tasked with optimizing a candidate's resume for ATS compatibility and alignment with job requirements. Follow these rules:
1. Use markdown for formatting.
2. Include all sections (Summary, Experience, Skills, Education, Projects).
3. Prioritize keywords from the job description.
4. Add or rephrase content to address the provided suggestions.
5. No additional information beyond the original and suggested content.

Output Instructions: Return the rewritten CV in markdown format with the same structure as the original. Include only the provided improvements and ensure ATS-compliance.`
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildJDParsingPrompt creates the prompt that condenses a raw job
// description into a structured markdown summary.
func (pb *PromptBuilder) BuildJDParsingPrompt(jdContent string) string {
	return fmt.Sprintf(`### INPUT ----
%s
### OUTPUT STRUCTURE (Markdown)
## Job Requirements Summary
**Job Title:** [e.g., Senior Backend Engineer]
**Industry:** [e.g., FinTech]
**Skills Required:**
- Python
- AWS
**Experience:**
- 5+ years
**Education:**
- Bachelor's in Computer Science`, jdContent)
}

// BuildResumeParsingPrompt creates the prompt that condenses a raw CV into a
// structured markdown summary.
func (pb *PromptBuilder) BuildResumeParsingPrompt(cvContent string) string {
	return fmt.Sprintf(`### INPUT ----
%s
### OUTPUT STRUCTURE (Markdown)
## Candidate Summary
**Name:** John Doe
**Industry:** Cybersecurity
**Skills:**
- Python
- Certified Ethical Hacker
**Experience:** 7+ years in ethical hacking
**Projects:**
- Red Team Operations`, cvContent)
}

// BuildEvaluationPrompt creates the free-text fit evaluation prompt used in
// hiring mode.
func (pb *PromptBuilder) BuildEvaluationPrompt(jdSummary, cvSummary string) string {
	return fmt.Sprintf(`### INPUT DATA
JD Summary: %s
Resume Summary: %s

Compare the candidate against the job requirements and provide a narrative fit evaluation covering matches, gaps, penalties and a final recommendation.`, jdSummary, cvSummary)
}

// BuildEvaluationJSONPrompt creates the structured evaluation prompt used in
// candidate mode. The template pins the exact JSON shape the evaluator parses.
func (pb *PromptBuilder) BuildEvaluationJSONPrompt(jdSummary, cvSummary string) string {
	return fmt.Sprintf(`### INPUT DATA
JD Summary: %s
Resume Summary: %s

respond only with a valid JSON do not add any extra information like here is the json or json
### OUTPUT TEMPLATE (JSON)
{ "candidate_name": "[Name from Resume]",
  "job_title": "[Title from JD]",
  "overall_score": "[X]",
  "experience_penalty": "[Y/N]",
  "critical_penalties": ["List of penalized items"],
  "positives": ["Explicit matches"],
  "gaps": ["Missing or mismatched requirements"],
  "recommendation": "Proceed or Reject" }`, jdSummary, cvSummary)
}

// BuildSuggestionsPrompt creates the gap-improvement prompt. Gaps arrive as
// one comma-delimited string, critical gaps first.
func (pb *PromptBuilder) BuildSuggestionsPrompt(gaps []string) string {
	return fmt.Sprintf(`Based on the following gaps between the candidate's CV and job requirements: %s
Provide targeted suggestions for CV improvement. Each suggestion should directly address one of the listed gaps. Use bullet points and avoid any additional information beyond the required improvements.`, strings.Join(gaps, ","))
}

// BuildRewritePrompt creates the full CV rewrite prompt.
func (pb *PromptBuilder) BuildRewritePrompt(originalCV, suggestions, jobRequirements string) string {
	return fmt.Sprintf(`Rewrite the candidate's CV to address the following improvements and ensure ATS compliance:
### Original CV
%s
### Improvement Suggestions
%s
### Job Description Requirements
%s`, originalCV, suggestions, jobRequirements)
}
