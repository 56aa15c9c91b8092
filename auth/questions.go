package auth

import (
	"math/rand"

	"github.com/gin-gonic/gin"
)

// Campus verification gate: registration requires knowing which building
// houses a faculty. Answers are validated by question id, so the check
// stays stateless.

type verificationQuestion struct {
	ID       int
	Question string
	Answer   string
}

type QuestionResponse struct {
	ID     int    `json:"id"`
	Answer string `json:"answer"`
}

var questionOptions = []string{"1", "2", "3", "main"}

var verificationQuestions = []verificationQuestion{
	{0, "Which building houses the Faculty of Mechanics and Mathematics?", "3"},
	{1, "Which building houses the Faculty of Applied Mathematics and Cybernetics?", "3"},
	{2, "Which building houses the Faculty of Physics?", "main"},
	{3, "Which building houses the Faculty of Chemistry?", "main"},
	{4, "Which building houses the Faculty of Biology?", "main"},
	{5, "Which building houses the Faculty of Ecology and Soil Science?", "main"},
	{6, "Which building houses the Faculty of Geography?", "main"},
	{7, "Which building houses the Faculty of Geology?", "main"},
	{8, "Which building houses the Faculty of Philology?", "1"},
	{9, "Which building houses the Faculty of History?", "3"},
	{10, "Which building houses the Faculty of International Relations and Economics?", "1"},
	{11, "Which building houses the Faculty of Law?", "1"},
	{12, "Which building houses the Faculty of Journalism?", "2"},
	{13, "Which building houses the Faculty of Information and Document Management?", "2"},
	{14, "Which building houses the Faculty of Oriental Studies?", "2"},
	{15, "Which building houses the Faculty of Social Sciences and Psychology?", "2"},
}

// HandleVerificationQuestions returns three random questions with their
// stable ids and the fixed option set.
func HandleVerificationQuestions(c *gin.Context) {
	picked := rand.Perm(len(verificationQuestions))[:3]

	questions := make([]gin.H, 0, 3)
	for _, idx := range picked {
		q := verificationQuestions[idx]
		questions = append(questions, gin.H{
			"id":       q.ID,
			"question": q.Question,
			"options":  questionOptions,
		})
	}
	c.JSON(200, gin.H{"questions": questions})
}

// verifyAnswers requires three answers with at least two correct.
func verifyAnswers(answers []QuestionResponse) bool {
	if len(answers) != 3 {
		return false
	}
	correct := 0
	for _, answer := range answers {
		if answer.ID < 0 || answer.ID >= len(verificationQuestions) {
			continue
		}
		if verificationQuestions[answer.ID].Answer == answer.Answer {
			correct++
		}
	}
	return correct >= 2
}
