package models

// Message roles as delivered by the voice transport.
const (
	RoleUser      = "user"
	RoleSystem    = "system"
	RoleAssistant = "assistant"
)

// FeedbackCategories are the five fixed scoring categories, in the order
// they appear in every feedback record.
var FeedbackCategories = []string{
	"Communication Skills",
	"Technical Knowledge",
	"Problem Solving",
	"Cultural Fit",
	"Confidence and Clarity",
}

// contains all valid interview types (in lowercase)
var ValidInterviewTypes = map[string]bool{
	"technical":  true,
	"behavioral": true,
	"mixed":      true,
}

func ValidInterviewTypesList() []string {
	return []string{"technical", "behavioral", "mixed"}
}

// Defaults used when interview parameters cannot be extracted from a
// generation conversation.
const (
	DefaultRole      = "Software Engineer"
	DefaultLevel     = "Mid-level"
	DefaultTechstack = "JavaScript,React,Node.js"
	DefaultType      = "technical"
	DefaultAmount    = 5
)
