package cmd

import (
	"fmt"
	"io"

	"github.com/spigell/ats-screener/internal/types"
)

// writeReport prints the recruiter view of result. Unlike the candidate
// email it includes the correct answers and explanations.
func writeReport(w io.Writer, result *types.AnalysisResult) {
	fmt.Fprintf(w, "Analysis %s (%s)\n", result.ID, result.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Candidate: %s\n", result.CandidateName)
	fmt.Fprintf(w, "Position: %s at %s\n", result.JobTitle, result.CompanyName)
	fmt.Fprintf(w, "Experience Match Score: %d%%\n", result.Score)
	if !result.ScoreParsed {
		fmt.Fprintln(w, "  (the model gave no percentage, score defaulted to 0)")
	}
	fmt.Fprintf(w, "Qualification Status: %s\n", result.Status)

	if result.Qualified() {
		fmt.Fprintln(w, "\nMCQs (with Correct Answer and Explanation):")
		if !result.QuestionsParsed {
			fmt.Fprintln(w, "  (the assessment could not be read from the model response)")
		}
		for i, q := range result.MCQs {
			fmt.Fprintf(w, "Q%d. %s\n", i+1, q.Question)
			for _, opt := range q.Options {
				fmt.Fprintf(w, "  - %s\n", opt)
			}
			fmt.Fprintf(w, "  Correct Answer: %s\n", q.CorrectAnswer)
			fmt.Fprintf(w, "  Explanation: %s\n", q.Explanation)
		}
		return
	}

	fmt.Fprintln(w, "\nImprovement Suggestions:")
	for i, suggestion := range result.Improvements {
		fmt.Fprintf(w, "%d. %s\n", i+1, suggestion)
	}
}
