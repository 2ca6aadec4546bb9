package session

import "testing"

func TestMatchesPreparedQuestionExact(t *testing.T) {
	questions := []string{"Can you describe a challenging project you worked on?"}
	if !matchesPreparedQuestion("Can you describe a challenging project you worked on?", questions) {
		t.Fatalf("expected exact question to match")
	}
}

func TestMatchesPreparedQuestionCaseAndPunctuation(t *testing.T) {
	questions := []string{"What is your experience with React?"}
	fragment := "Great! So, WHAT IS your experience... with React?"
	if !matchesPreparedQuestion(fragment, questions) {
		t.Fatalf("expected case and punctuation differences to be ignored")
	}
}

func TestMatchesPreparedQuestionRequiresQuestionMark(t *testing.T) {
	questions := []string{"What is your experience with React?"}
	fragment := "What is your experience with React"
	if matchesPreparedQuestion(fragment, questions) {
		t.Fatalf("expected fragment without a question mark to be rejected")
	}
}

func TestMatchesPreparedQuestionParaphrasedTail(t *testing.T) {
	questions := []string{"Can you walk me through how you would design a rate limiter for an API gateway?"}
	fragment := "Can you walk me through how you would design a rate limiter, say for a busy service?"
	if !matchesPreparedQuestion(fragment, questions) {
		t.Fatalf("expected prefix match to tolerate a paraphrased tail")
	}
}

func TestMatchesPreparedQuestionShortQuestion(t *testing.T) {
	questions := []string{"Why Go?"}
	if !matchesPreparedQuestion("So tell me, why Go?", questions) {
		t.Fatalf("expected short question to match on its full normalized form")
	}
}

func TestMatchesPreparedQuestionUnrelated(t *testing.T) {
	questions := []string{"What is your experience with React?"}
	if matchesPreparedQuestion("How is the weather today?", questions) {
		t.Fatalf("expected unrelated question not to match")
	}
}

func TestMatchesPreparedQuestionEmptyList(t *testing.T) {
	if matchesPreparedQuestion("Anything at all?", nil) {
		t.Fatalf("expected no match against an empty question list")
	}
}
