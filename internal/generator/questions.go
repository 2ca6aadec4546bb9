package generator

import (
	"fmt"
	"math/rand"
	"strings"
)

var interviewCovers = []string{
	"/adobe.png", "/amazon.png", "/facebook.png", "/hostinger.png",
	"/pinterest.png", "/quora.png", "/reddit.png", "/skype.png",
	"/spotify.png", "/telegram.png", "/tiktok.png", "/yahoo.png",
}

// RandomInterviewCover picks a cover image path for a new interview.
func RandomInterviewCover() string {
	return "/covers" + interviewCovers[rand.Intn(len(interviewCovers))]
}

// BuildQuestions produces the prepared question list for an interview from
// its parameters. Technical interviews anchor on the role and tech stack,
// everything else gets behavioral questions. The list is trimmed to amount.
func BuildQuestions(interviewType, role string, techstack []string, amount int) []string {
	var questions []string

	if strings.Contains(strings.ToLower(interviewType), "technical") {
		first := "JavaScript"
		if len(techstack) > 0 && techstack[0] != "" {
			first = techstack[0]
		}
		second := "your tech stack"
		if len(techstack) > 1 && techstack[1] != "" {
			second = techstack[1]
		} else if len(techstack) > 0 && techstack[0] != "" {
			second = techstack[0]
		}
		stack := "your projects"
		if len(techstack) > 0 {
			stack = strings.Join(techstack, ", ")
		}

		questions = append(questions,
			fmt.Sprintf("Can you explain your experience with %s and how you've applied it in previous projects?", role),
			fmt.Sprintf("What are the key differences between %s and other similar technologies you've worked with?", first),
			fmt.Sprintf("Describe a challenging technical problem you solved using %s.", second),
		)
		if amount >= 4 {
			questions = append(questions,
				fmt.Sprintf("How do you approach code reviews and ensuring code quality in %s?", first))
		}
		if amount >= 5 {
			questions = append(questions,
				fmt.Sprintf("What best practices do you follow when working with %s?", stack))
		}
	} else {
		questions = append(questions,
			"Tell me about a time when you had to work with a difficult team member. How did you handle it?",
			"Describe a situation where you had to meet a tight deadline. What was your approach?",
			"How do you prioritize tasks when working on multiple projects?",
		)
		if amount >= 4 {
			questions = append(questions,
				"Give an example of when you had to adapt to a significant change at work.")
		}
		if amount >= 5 {
			questions = append(questions,
				"Describe a time when you took initiative to improve a process or solve a problem.")
		}
	}

	if amount < len(questions) {
		questions = questions[:amount]
	}
	return questions
}

// SplitTechstack normalizes a comma-separated tech stack string.
func SplitTechstack(techstack string) []string {
	parts := strings.Split(techstack, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
